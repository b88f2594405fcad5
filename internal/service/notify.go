package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/util"
)

// Notifier delivers alerts to the configured administrator identity
// through the chat transport. Delivery is best-effort: a lost
// notification is logged, never bubbled up to the user's unit of work.
type Notifier struct {
	publisher   Publisher
	adminChatID int64
	logger      *zap.Logger
}

// NewNotifier creates a new admin notifier. With adminChatID unset all
// notifications are dropped with a warning.
func NewNotifier(publisher Publisher, adminChatID int64) *Notifier {
	return &Notifier{
		publisher:   publisher,
		adminChatID: adminChatID,
		logger:      util.GetLogger(),
	}
}

// NewOrder alerts the admin about a freshly placed order.
func (n *Notifier) NewOrder(ctx context.Context, orderID, userID, total int64) {
	n.send(ctx, models.NotifyKindNewOrder,
		fmt.Sprintf("New order #%d from user %d, total %s", orderID, userID, FormatPrice(total)))
}

// Feedback forwards a user's free-text feedback to the admin.
func (n *Notifier) Feedback(ctx context.Context, userID int64, text string) {
	n.send(ctx, models.NotifyKindFeedback,
		fmt.Sprintf("Feedback from user %d:\n\n%s", userID, text))
}

// ChannelImport confirms that a channel post was ingested.
func (n *Notifier) ChannelImport(ctx context.Context, productID int64, category, brand string) {
	n.send(ctx, models.NotifyKindChannelImport,
		fmt.Sprintf("Imported channel post as product id=%d (%s/%s)", productID, category, brand))
}

func (n *Notifier) send(ctx context.Context, kind, text string) {
	if n.adminChatID == 0 {
		n.logger.Warn("Admin chat id not configured, dropping notification",
			zap.String("kind", kind))
		return
	}

	event := &models.AdminNotifyEvent{
		BaseEvent:   broker.NewBase(models.EventTypeAdminNotify),
		AdminChatID: n.adminChatID,
		Kind:        kind,
		Text:        text,
	}
	if err := n.publisher.PublishAdminNotify(ctx, event); err != nil {
		n.logger.Error("Failed to publish admin notification",
			zap.String("kind", kind), zap.Error(err))
		return
	}
	util.AdminNotifyTotal.WithLabelValues(kind).Inc()
}

// FormatPrice renders minor units as a human amount, e.g. 499000 ->
// "4990.00 ₽".
func FormatPrice(minor int64) string {
	return fmt.Sprintf("%d.%02d ₽", minor/100, minor%100)
}
