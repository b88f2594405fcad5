package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"storefront-service/internal/models"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schemaSQL string

// Store is the persistence layer for the catalog, carts, wardrobes and
// orders. It exclusively owns all row writes; services never touch the
// database directly.
type Store struct {
	db *sqlx.DB
}

// NewStore connects to Postgres and returns a ready store.
func NewStore(databaseURL string) (*Store, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an existing connection; used by tests.
func NewWithDB(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// InitSchema applies the embedded schema. Statements are idempotent.
func (s *Store) InitSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

const insertProductSQL = `
	INSERT INTO products (title, price, photo_file_id, descr, category, brand, sizes, source_chat_id, source_msg_id)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (source_chat_id, source_msg_id) DO NOTHING
	RETURNING id`

// UpsertProduct inserts a product and returns its id together with a
// created flag. When a row with the same (source_chat_id, source_msg_id)
// pair already exists the insert is a no-op and the existing id is
// returned with created=false. Rows without a source identity never
// conflict (Postgres treats NULLs as distinct) and always insert.
//
// This is the sole deduplication mechanism for posts delivered more than
// once: retries, manual forwards racing the channel auto-import, and so
// on all funnel through the uniqueness constraint.
func (s *Store) UpsertProduct(ctx context.Context, p *models.Product) (int64, bool, error) {
	var id int64
	err := s.db.GetContext(ctx, &id, insertProductSQL,
		p.Title, p.Price, p.PhotoFileID, p.Description,
		p.Category, p.Brand, p.Sizes, p.SourceChatID, p.SourceMsgID)
	if err == nil {
		return id, true, nil
	}
	if err != sql.ErrNoRows {
		return 0, false, fmt.Errorf("failed to insert product: %w", err)
	}

	// ON CONFLICT DO NOTHING returns no row for duplicates; resolve to
	// the existing product id.
	err = s.db.GetContext(ctx, &id,
		"SELECT id FROM products WHERE source_chat_id = $1 AND source_msg_id = $2",
		p.SourceChatID, p.SourceMsgID)
	if err != nil {
		return 0, false, fmt.Errorf("failed to resolve duplicate product: %w", err)
	}
	return id, false, nil
}

// GetProductByID retrieves a product by id, nil when absent.
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var p models.Product
	err := s.db.GetContext(ctx, &p, "SELECT * FROM products WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListCategories returns distinct non-empty categories in lexicographic
// order.
func (s *Store) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.SelectContext(ctx, &categories,
		"SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category")
	return categories, err
}

// ListBrands returns distinct non-empty brands within a category in
// lexicographic order.
func (s *Store) ListBrands(ctx context.Context, category string) ([]string, error) {
	var brands []string
	err := s.db.SelectContext(ctx, &brands,
		"SELECT DISTINCT brand FROM products WHERE category = $1 AND brand <> '' ORDER BY brand",
		category)
	return brands, err
}

// DefaultPageSize is the catalog page length when the caller does not
// ask for one.
const DefaultPageSize = 6

// ListProducts returns a filtered catalog page, newest first. Filter
// fields are AND-combined when present. Offset pagination is stable only
// while no concurrent inserts land between pages; a known weak
// guarantee.
func (s *Store) ListProducts(ctx context.Context, f models.ProductFilter, offset, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultPageSize
	}

	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Category != "" {
		add("category = $%d", f.Category)
	}
	if f.Brand != "" {
		add("brand = $%d", f.Brand)
	}
	if f.PriceMin != nil {
		add("price >= $%d", *f.PriceMin)
	}
	if f.PriceMax != nil {
		add("price <= $%d", *f.PriceMax)
	}
	if f.SizeQuery != "" {
		add("sizes ILIKE $%d", "%"+f.SizeQuery+"%")
	}

	query := "SELECT * FROM products"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit, offset)
	query += fmt.Sprintf(" ORDER BY id DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, query, args...)
	return products, err
}

// AllProducts returns the full catalog, newest first. Used by the bulk
// CSV export.
func (s *Store) AllProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products, "SELECT * FROM products ORDER BY id DESC")
	return products, err
}
