package service

import (
	"context"

	"go.uber.org/zap"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// CartService manages per-user carts and the wardrobe wishlist.
type CartService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCartService creates a new cart service
func NewCartService(store *store.Store) *CartService {
	return &CartService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// Add puts one unit of a product into the user's cart, incrementing the
// quantity on repeat adds.
func (s *CartService) Add(ctx context.Context, userID, productID int64) error {
	p, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}

	if err := s.store.AddToCart(ctx, userID, productID); err != nil {
		return err
	}
	util.CartAddsTotal.Inc()
	s.logger.Debug("Added to cart",
		zap.Int64("user_id", userID),
		zap.Int64("product_id", productID))
	return nil
}

// Snapshot returns the cart joined against current catalog prices,
// together with the running total.
func (s *CartService) Snapshot(ctx context.Context, userID int64) ([]models.CartLine, int64, error) {
	lines, err := s.store.CartSnapshot(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	for _, line := range lines {
		total += line.UnitPrice * int64(line.Qty)
	}
	return lines, total, nil
}

// Clear empties the user's cart.
func (s *CartService) Clear(ctx context.Context, userID int64) error {
	return s.store.ClearCart(ctx, userID)
}

// SaveToWardrobe adds a product to the user's wishlist. Idempotent.
func (s *CartService) SaveToWardrobe(ctx context.Context, userID, productID int64) error {
	p, err := s.store.GetProductByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrProductNotFound
	}
	return s.store.AddToWardrobe(ctx, userID, productID)
}

// Wardrobe lists the user's saved items.
func (s *CartService) Wardrobe(ctx context.Context, userID int64) ([]models.WardrobeLine, error) {
	return s.store.Wardrobe(ctx, userID)
}
