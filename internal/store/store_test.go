package store

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

var productColumns = []string{
	"id", "title", "price", "photo_file_id", "descr",
	"category", "brand", "sizes", "source_chat_id", "source_msg_id", "created_at",
}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewWithDB(sqlx.NewDb(mockDB, "sqlmock")), mock, mockDB
}

func int64p(v int64) *int64 { return &v }

func TestUpsertProductCreated(t *testing.T) {
	s, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	p := &models.Product{
		Title:        "Winter Jacket",
		Price:        499000,
		Category:     "Jackets",
		Brand:        "Nike",
		SourceChatID: int64p(7),
		SourceMsgID:  int64p(42),
	}

	id, created, err := s.UpsertProduct(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.True(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertProductDuplicateSource(t *testing.T) {
	s, mock, db := newMockStore(t)
	defer db.Close()

	// ON CONFLICT DO NOTHING yields no row; the existing id is then
	// resolved by source identity.
	mock.ExpectQuery("INSERT INTO products").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id FROM products WHERE source_chat_id = $1 AND source_msg_id = $2")).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	p := &models.Product{
		Title:        "Winter Jacket",
		Price:        499000,
		Category:     "Jackets",
		Brand:        "Nike",
		SourceChatID: int64p(7),
		SourceMsgID:  int64p(42),
	}

	id, created, err := s.UpsertProduct(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.False(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProductByIDAbsent(t *testing.T) {
	s, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM products WHERE id = $1")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows(productColumns))

	p, err := s.GetProductByID(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsFilterCombination(t *testing.T) {
	s, mock, db := newMockStore(t)
	defer db.Close()

	min := int64(100000)
	max := int64(600000)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT * FROM products WHERE category = $1 AND brand = $2 AND price >= $3 AND price <= $4 AND sizes ILIKE $5 ORDER BY id DESC LIMIT $6 OFFSET $7")).
		WithArgs("Jackets", "Nike", min, max, "%L%", 6, 0).
		WillReturnRows(sqlmock.NewRows(productColumns).
			AddRow(int64(3), "Winter Jacket", int64(499000), nil, nil, "Jackets", "Nike", "S, M, L", nil, nil, time.Now()))

	products, err := s.ListProducts(context.Background(), models.ProductFilter{
		Category:  "Jackets",
		Brand:     "Nike",
		PriceMin:  &min,
		PriceMax:  &max,
		SizeQuery: "L",
	}, 0, 6)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Winter Jacket", products[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsPagination(t *testing.T) {
	s, mock, db := newMockStore(t)
	defer db.Close()

	page := func(ids ...int64) *sqlmock.Rows {
		rows := sqlmock.NewRows(productColumns)
		for _, id := range ids {
			rows.AddRow(id, "Item", int64(1000), nil, nil, "General", "NoBrand", nil, nil, nil, time.Now())
		}
		return rows
	}

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM products ORDER BY id DESC LIMIT $1 OFFSET $2")).
		WithArgs(6, 0).
		WillReturnRows(page(12, 11, 10, 9, 8, 7))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM products ORDER BY id DESC LIMIT $1 OFFSET $2")).
		WithArgs(6, 6).
		WillReturnRows(page(6, 5, 4, 3, 2, 1))

	first, err := s.ListProducts(context.Background(), models.ProductFilter{}, 0, 6)
	require.NoError(t, err)
	second, err := s.ListProducts(context.Background(), models.ProductFilter{}, 6, 6)
	require.NoError(t, err)

	seen := map[int64]bool{}
	for _, p := range first {
		seen[p.ID] = true
	}
	for _, p := range second {
		assert.False(t, seen[p.ID], "page two repeated product %d", p.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProductsDefaultLimit(t *testing.T) {
	s, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM products ORDER BY id DESC LIMIT $1 OFFSET $2")).
		WithArgs(DefaultPageSize, 0).
		WillReturnRows(sqlmock.NewRows(productColumns))

	_, err := s.ListProducts(context.Background(), models.ProductFilter{}, 0, 0)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListCategories(t *testing.T) {
	s, mock, db := newMockStore(t)
	defer db.Close()

	mock.ExpectQuery("SELECT DISTINCT category FROM products").
		WillReturnRows(sqlmock.NewRows([]string{"category"}).
			AddRow("Jackets").AddRow("Shoes"))

	categories, err := s.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Jackets", "Shoes"}, categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}
