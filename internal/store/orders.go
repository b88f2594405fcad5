package store

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/models"
)

// ErrEmptyCart signals a checkout against an empty cart. Not a failure:
// callers surface it as an informational message and create nothing.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutResult reports a completed cart to order conversion.
type CheckoutResult struct {
	OrderID int64
	Total   int64
	Items   []models.OrderItem
}

// CreateOrderFromCart atomically converts the user's cart into an order
// with snapshot pricing: read the cart under a row lock, freeze the
// current unit prices into order_items, and clear the cart, all within
// one transaction. The FOR UPDATE lock on the user's cart rows
// serializes concurrent checkouts for the same user, so at most one
// order can be produced per cart snapshot.
func (s *Store) CreateOrderFromCart(ctx context.Context, userID int64) (*CheckoutResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var lines []models.CartLine
	err = tx.SelectContext(ctx, &lines, `
		SELECT p.id AS product_id, p.title, p.price, c.qty
		FROM cart c JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY p.id
		FOR UPDATE OF c`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to lock cart: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	var total int64
	for _, line := range lines {
		total += line.UnitPrice * int64(line.Qty)
	}

	var orderID int64
	err = tx.GetContext(ctx, &orderID,
		"INSERT INTO orders (user_id, total_price, status) VALUES ($1, $2, $3) RETURNING id",
		userID, total, models.OrderStatusNew)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(lines))
	for _, line := range lines {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, product_id, qty, price) VALUES ($1, $2, $3, $4)",
			orderID, line.ProductID, line.Qty, line.UnitPrice)
		if err != nil {
			return nil, fmt.Errorf("failed to create order item: %w", err)
		}
		items = append(items, models.OrderItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			Qty:       line.Qty,
			Price:     line.UnitPrice,
		})
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM cart WHERE user_id = $1", userID); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return &CheckoutResult{OrderID: orderID, Total: total, Items: items}, nil
}

// ListOrders retrieves the user's orders, newest first.
func (s *Store) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	orders := []models.Order{}
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY id DESC", userID)
	return orders, err
}

// GetOrderItems retrieves all items for an order.
func (s *Store) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	items := []models.OrderItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1", orderID)
	return items, err
}
