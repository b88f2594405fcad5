package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// OrderService is the only writer of orders. It converts carts to
// orders atomically with snapshot pricing and is the sole caller that
// reads-then-clears the cart.
type OrderService struct {
	store     *store.Store
	publisher Publisher
	notifier  *Notifier
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(store *store.Store, publisher Publisher, notifier *Notifier) *OrderService {
	return &OrderService{
		store:     store,
		publisher: publisher,
		notifier:  notifier,
		logger:    util.GetLogger(),
	}
}

// CheckoutResponse reports a placed order to the caller.
type CheckoutResponse struct {
	OrderID    int64  `json:"order_id"`
	TotalPrice int64  `json:"total_price"`
	Status     string `json:"status"`
}

// Checkout converts the user's cart into an order. Returns
// store.ErrEmptyCart when there is nothing to order; that is an
// informational outcome, not a failure, and no order row is created.
// Failed checkouts are never retried automatically: a silent retry
// could double-charge.
func (s *OrderService) Checkout(ctx context.Context, userID int64) (*CheckoutResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.Checkout")
	defer span.End()

	start := time.Now()
	defer func() {
		util.CheckoutLatency.Observe(time.Since(start).Seconds())
	}()

	result, err := s.store.CreateOrderFromCart(ctx, userID)
	if errors.Is(err, store.ErrEmptyCart) {
		util.CheckoutEmptyTotal.Inc()
		return nil, err
	}
	if err != nil {
		util.CheckoutFailedTotal.WithLabelValues("store_error").Inc()
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", result.OrderID),
		zap.Int64("user_id", userID),
		zap.Int64("total", result.Total))

	items := make([]models.OrderItemData, 0, len(result.Items))
	for _, it := range result.Items {
		items = append(items, models.OrderItemData{
			ProductID: it.ProductID,
			Qty:       it.Qty,
			UnitPrice: it.Price,
		})
	}

	event := &models.OrderCreatedEvent{
		BaseEvent:  broker.NewBase(models.EventTypeOrderCreated),
		OrderID:    result.OrderID,
		UserID:     userID,
		TotalPrice: result.Total,
		Items:      items,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event", zap.Error(err))
	}

	s.notifier.NewOrder(ctx, result.OrderID, userID, result.Total)

	return &CheckoutResponse{
		OrderID:    result.OrderID,
		TotalPrice: result.Total,
		Status:     models.OrderStatusNew,
	}, nil
}

// ListOrders retrieves the user's purchase history, newest first.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]models.Order, error) {
	return s.store.ListOrders(ctx, userID)
}

// GetOrderItems retrieves the frozen lines of one order.
func (s *OrderService) GetOrderItems(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	return s.store.GetOrderItems(ctx, orderID)
}
