package service

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
	"storefront-service/internal/store"
)

func TestCheckoutPublishesOrderCreated(t *testing.T) {
	st, mock, mockDB := newMockStore(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT p.id AS product_id").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "title", "price", "qty"}).
			AddRow(int64(1), "Winter Jacket", int64(499000), 2).
			AddRow(int64(2), "Running shoes", int64(250000), 1))
	mock.ExpectQuery("INSERT INTO orders").
		WithArgs(int64(77), int64(1248000), models.OrderStatusNew).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(5), int64(1), 2, int64(499000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WithArgs(int64(5), int64(2), 1, int64(250000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM cart").
		WithArgs(int64(77)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	pub := &stubPublisher{}
	svc := NewOrderService(st, pub, NewNotifier(pub, 900))

	resp, err := svc.Checkout(context.Background(), 77)
	require.NoError(t, err)

	assert.Equal(t, int64(5), resp.OrderID)
	assert.Equal(t, int64(1248000), resp.TotalPrice)
	assert.Equal(t, models.OrderStatusNew, resp.Status)

	require.Len(t, pub.orders, 1)
	assert.Equal(t, models.EventTypeOrderCreated, pub.orders[0].EventType)
	assert.Equal(t, int64(5), pub.orders[0].OrderID)
	assert.Equal(t, int64(77), pub.orders[0].UserID)
	require.Len(t, pub.orders[0].Items, 2)
	assert.Equal(t, int64(499000), pub.orders[0].Items[0].UnitPrice)

	require.Len(t, pub.admin, 1)
	assert.Equal(t, models.NotifyKindNewOrder, pub.admin[0].Kind)
	assert.Equal(t, int64(900), pub.admin[0].AdminChatID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckoutEmptyCart(t *testing.T) {
	st, mock, mockDB := newMockStore(t)
	defer mockDB.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT p.id AS product_id").
		WithArgs(int64(77)).
		WillReturnRows(sqlmock.NewRows([]string{"product_id", "title", "price", "qty"}))
	mock.ExpectRollback()

	pub := &stubPublisher{}
	svc := NewOrderService(st, pub, NewNotifier(pub, 900))

	resp, err := svc.Checkout(context.Background(), 77)
	assert.ErrorIs(t, err, store.ErrEmptyCart)
	assert.Nil(t, resp)

	// nothing was placed, so nothing is announced
	assert.Empty(t, pub.orders)
	assert.Empty(t, pub.admin)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "4990.00 ₽", FormatPrice(499000))
	assert.Equal(t, "0.50 ₽", FormatPrice(50))
	assert.Equal(t, "0.00 ₽", FormatPrice(0))
}
