package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

// stubPublisher captures published events for assertions.
type stubPublisher struct {
	ingested []*models.ProductIngestedEvent
	orders   []*models.OrderCreatedEvent
	admin    []*models.AdminNotifyEvent
}

func (p *stubPublisher) PublishProductIngested(_ context.Context, e *models.ProductIngestedEvent) error {
	p.ingested = append(p.ingested, e)
	return nil
}

func (p *stubPublisher) PublishOrderCreated(_ context.Context, e *models.OrderCreatedEvent) error {
	p.orders = append(p.orders, e)
	return nil
}

func (p *stubPublisher) PublishAdminNotify(_ context.Context, e *models.AdminNotifyEvent) error {
	p.admin = append(p.admin, e)
	return nil
}

func newMockStore(t *testing.T) (*store.Store, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	return store.NewWithDB(sqlx.NewDb(mockDB, "sqlmock")), mock, mockDB
}

func int64p(v int64) *int64 { return &v }
