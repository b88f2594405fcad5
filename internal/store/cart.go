package store

import (
	"context"

	"storefront-service/internal/models"
)

// AddToCart increments the cart quantity for a product, creating the
// entry at quantity 1 on first add.
func (s *Store) AddToCart(ctx context.Context, userID, productID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO cart (user_id, product_id, qty)
		VALUES ($1, $2, 1)
		ON CONFLICT (user_id, product_id) DO UPDATE SET qty = cart.qty + 1`,
		userID, productID)
	return err
}

// CartSnapshot returns the user's cart joined against the catalog.
// Prices are the current catalog prices; they are only frozen at
// checkout.
func (s *Store) CartSnapshot(ctx context.Context, userID int64) ([]models.CartLine, error) {
	lines := []models.CartLine{}
	err := s.db.SelectContext(ctx, &lines, `
		SELECT p.id AS product_id, p.title, p.price, c.qty
		FROM cart c JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY p.id`, userID)
	return lines, err
}

// ClearCart deletes all cart entries for the user.
func (s *Store) ClearCart(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM cart WHERE user_id = $1", userID)
	return err
}

// AddToWardrobe saves a product to the user's wishlist. Idempotent:
// repeated saves are no-ops.
func (s *Store) AddToWardrobe(ctx context.Context, userID, productID int64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wardrobe (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID)
	return err
}

// Wardrobe lists the user's saved items joined against the catalog.
func (s *Store) Wardrobe(ctx context.Context, userID int64) ([]models.WardrobeLine, error) {
	lines := []models.WardrobeLine{}
	err := s.db.SelectContext(ctx, &lines, `
		SELECT p.id AS product_id, p.title, p.price
		FROM wardrobe w JOIN products p ON p.id = w.product_id
		WHERE w.user_id = $1
		ORDER BY p.id`, userID)
	return lines, err
}
