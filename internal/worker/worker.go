package worker

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/service"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// IngestWorker consumes channel posts and feeds them to the ingestion
// pipeline. Runs concurrently with manual forward-import over HTTP; the
// store's source-identity constraint resolves the race.
type IngestWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewIngestWorker creates a new channel-post ingest worker
func NewIngestWorker(
	consumer *broker.Consumer,
	pipeline *service.IngestionPipeline,
	notifier *service.Notifier,
) *IngestWorker {
	eventHandler := broker.NewEventHandler()

	eventHandler.OnChannelPost(func(ctx context.Context, event *models.ChannelPostEvent) error {
		if event.Text == "" && event.PhotoFileID == "" {
			return nil // nothing to parse
		}

		post := models.RawPost{
			Text:         event.Text,
			PhotoFileID:  event.PhotoFileID,
			SourceChatID: &event.ChatID,
			SourceMsgID:  &event.MessageID,
		}
		res, err := pipeline.Ingest(ctx, post)
		if err != nil {
			return err
		}
		notifier.ChannelImport(ctx, res.ProductID, res.Category, res.Brand)
		return nil
	})

	return &IngestWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the worker
func (w *IngestWorker) Start(ctx context.Context) error {
	util.GetLogger().Info("Starting ingest worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *IngestWorker) Stop() error {
	util.GetLogger().Info("Stopping ingest worker")
	return w.consumer.Close()
}

// PaymentWorker consumes payment confirmations from the payment
// collaborator and converts the payer's cart into an order.
type PaymentWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
}

// NewPaymentWorker creates a new payment confirmation worker
func NewPaymentWorker(
	consumer *broker.Consumer,
	orders *service.OrderService,
) *PaymentWorker {
	eventHandler := broker.NewEventHandler()
	logger := util.GetLogger()

	eventHandler.OnPaymentConfirmed(func(ctx context.Context, event *models.PaymentConfirmedEvent) error {
		resp, err := orders.Checkout(ctx, event.UserID)
		if errors.Is(err, store.ErrEmptyCart) {
			// The cart may already be checked out; nothing to convert.
			logger.Info("Payment confirmed for empty cart",
				zap.Int64("user_id", event.UserID))
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("Order created from payment confirmation",
			zap.Int64("order_id", resp.OrderID),
			zap.Int64("user_id", event.UserID),
			zap.String("tx_id", event.ProviderTxID))
		return nil
	})

	return &PaymentWorker{
		consumer:     consumer,
		eventHandler: eventHandler,
	}
}

// Start starts the payment worker
func (pw *PaymentWorker) Start(ctx context.Context) error {
	util.GetLogger().Info("Starting payment worker")
	return pw.consumer.StartConsuming(ctx, pw.eventHandler.HandleMessage)
}

// Stop stops the payment worker
func (pw *PaymentWorker) Stop() error {
	util.GetLogger().Info("Stopping payment worker")
	return pw.consumer.Close()
}
