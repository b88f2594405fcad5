package service

import (
	"context"

	"storefront-service/internal/models"
)

// Publisher is the outbound event surface the services need. Satisfied
// by broker.EventPublisher; tests substitute a capture stub.
type Publisher interface {
	PublishProductIngested(ctx context.Context, event *models.ProductIngestedEvent) error
	PublishOrderCreated(ctx context.Context, event *models.OrderCreatedEvent) error
	PublishAdminNotify(ctx context.Context, event *models.AdminNotifyEvent) error
}
