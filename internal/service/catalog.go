package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront-service/internal/models"
	"storefront-service/internal/session"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// ErrProductNotFound is returned when a referenced product is absent.
var ErrProductNotFound = errors.New("product not found")

// CatalogService answers browse queries. Navigation state (selected
// category, brand, filters) lives in the per-user session so concurrent
// handlers stay stateless.
type CatalogService struct {
	store    *store.Store
	sessions *session.Manager
	pageSize int
	logger   *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(st *store.Store, sessions *session.Manager, pageSize int) *CatalogService {
	if pageSize <= 0 {
		pageSize = store.DefaultPageSize
	}
	return &CatalogService{
		store:    st,
		sessions: sessions,
		pageSize: pageSize,
		logger:   util.GetLogger(),
	}
}

// Categories lists distinct catalog categories.
func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.store.ListCategories(ctx)
}

// Brands lists distinct brands within a category.
func (s *CatalogService) Brands(ctx context.Context, category string) ([]string, error) {
	return s.store.ListBrands(ctx, category)
}

// GetProduct retrieves a single product.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	p, err := s.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// List returns a filtered catalog page with an explicit filter.
func (s *CatalogService) List(ctx context.Context, f models.ProductFilter, offset, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = s.pageSize
	}
	return s.store.ListProducts(ctx, f, offset, limit)
}

// Browse returns a catalog page driven by the user's session: selected
// category and brand plus any price/size filters set earlier.
func (s *CatalogService) Browse(ctx context.Context, userID int64, offset int) ([]models.Product, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	filter := models.ProductFilter{
		Category:  sess.Category,
		Brand:     sess.Brand,
		PriceMin:  sess.PriceMin,
		PriceMax:  sess.PriceMax,
		SizeQuery: sess.SizeQuery,
	}
	return s.store.ListProducts(ctx, filter, offset, s.pageSize)
}

// SelectCategory records the user's category choice and returns the
// brands available under it.
func (s *CatalogService) SelectCategory(ctx context.Context, userID int64, category string) ([]string, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	sess.Category = category
	sess.Brand = ""
	if err := s.sessions.Save(ctx, userID, sess); err != nil {
		return nil, err
	}
	return s.store.ListBrands(ctx, category)
}

// SelectBrand records the user's brand choice within the selected
// category.
func (s *CatalogService) SelectBrand(ctx context.Context, userID int64, brand string) error {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return err
	}
	sess.Brand = brand
	return s.sessions.Save(ctx, userID, sess)
}

// SetFilters stores price bounds (minor units) and a size substring in
// the session.
func (s *CatalogService) SetFilters(ctx context.Context, userID int64, priceMin, priceMax *int64, sizeQuery string) error {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return err
	}
	sess.PriceMin = priceMin
	sess.PriceMax = priceMax
	sess.SizeQuery = sizeQuery
	return s.sessions.Save(ctx, userID, sess)
}

// ClearFilters drops price/size filters but keeps navigation.
func (s *CatalogService) ClearFilters(ctx context.Context, userID int64) error {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return err
	}
	sess.ClearFilters()
	return s.sessions.Save(ctx, userID, sess)
}

// ResetSession forgets the whole browse context, the back-to-categories
// navigation.
func (s *CatalogService) ResetSession(ctx context.Context, userID int64) error {
	return s.sessions.Reset(ctx, userID)
}
