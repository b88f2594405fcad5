package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"storefront-service/internal/models"
	"storefront-service/internal/util"
)

// EventPublisher handles publishing domain events to their topics.
type EventPublisher struct {
	orders *Producer
	notify *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(orders, notify *Producer) *EventPublisher {
	return &EventPublisher{orders: orders, notify: notify}
}

// NewBase stamps a fresh event envelope.
func NewBase(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// PublishProductIngested publishes ProductIngested to the order-events
// topic.
func (ep *EventPublisher) PublishProductIngested(ctx context.Context, event *models.ProductIngestedEvent) error {
	key := fmt.Sprintf("product-%d", event.ProductID)
	return ep.orders.PublishEvent(ctx, key, event)
}

// PublishOrderCreated publishes OrderCreated to the order-events topic.
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error {
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.orders.PublishEvent(ctx, key, event)
}

// PublishAdminNotify sends a notification to the administrator identity
// via the chat transport.
func (ep *EventPublisher) PublishAdminNotify(ctx context.Context, event *models.AdminNotifyEvent) error {
	key := fmt.Sprintf("admin-%d", event.AdminChatID)
	return ep.notify.PublishEvent(ctx, key, event)
}

// EventHandler routes inbound transport events to registered callbacks.
type EventHandler struct {
	onChannelPost      func(context.Context, *models.ChannelPostEvent) error
	onPaymentConfirmed func(context.Context, *models.PaymentConfirmedEvent) error
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// OnChannelPost registers a handler for ChannelPost events
func (eh *EventHandler) OnChannelPost(handler func(context.Context, *models.ChannelPostEvent) error) {
	eh.onChannelPost = handler
}

// OnPaymentConfirmed registers a handler for PaymentConfirmed events
func (eh *EventHandler) OnPaymentConfirmed(handler func(context.Context, *models.PaymentConfirmedEvent) error) {
	eh.onPaymentConfirmed = handler
}

// HandleMessage routes messages to appropriate handlers
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	switch baseEvent.EventType {
	case models.EventTypeChannelPost:
		if eh.onChannelPost != nil {
			var event models.ChannelPostEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal ChannelPost event: %w", err)
			}
			return eh.onChannelPost(ctx, &event)
		}

	case models.EventTypePaymentConfirmed:
		if eh.onPaymentConfirmed != nil {
			var event models.PaymentConfirmedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal PaymentConfirmed event: %w", err)
			}
			return eh.onPaymentConfirmed(ctx, &event)
		}

	default:
		util.GetLogger().Warn("Unhandled event type", zap.String("type", baseEvent.EventType))
	}

	return nil
}
