package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront-service/internal/broker"
	"storefront-service/internal/models"
	"storefront-service/internal/store"
	"storefront-service/internal/util"
)

// IngestionPipeline converts raw posts into catalog rows: normalize,
// upsert, report. Two inbound paths feed it concurrently, the channel
// auto-import worker and manual forward-import over HTTP; the store's
// uniqueness constraint on source identity is the only deduplication,
// so no extra locking is needed here.
type IngestionPipeline struct {
	store     *store.Store
	publisher Publisher
	logger    *zap.Logger
}

// NewIngestionPipeline creates a new ingestion pipeline
func NewIngestionPipeline(store *store.Store, publisher Publisher) *IngestionPipeline {
	return &IngestionPipeline{
		store:     store,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// IngestResult reports where a post landed in the catalog.
type IngestResult struct {
	ProductID int64 `json:"product_id"`
	Created   bool  `json:"created"`

	Category string `json:"category"`
	Brand    string `json:"brand"`
	Price    int64  `json:"price"`
	Sizes    string `json:"sizes,omitempty"`
}

// Ingest normalizes a raw post and upserts it into the catalog. Created
// is false when the post's source identity already resolved to an
// existing product, which callers report as "already existed" rather
// than an error.
func (ip *IngestionPipeline) Ingest(ctx context.Context, post models.RawPost) (*IngestResult, error) {
	ctx, span := util.StartSpan(ctx, "IngestionPipeline.Ingest")
	defer span.End()

	product := NormalizeProduct(post)
	if product.Price == 0 {
		util.PriceParseMissTotal.Inc()
	}

	id, created, err := ip.store.UpsertProduct(ctx, &product)
	if err != nil {
		util.IngestFailuresTotal.Inc()
		return nil, fmt.Errorf("failed to ingest post: %w", err)
	}

	result := "duplicate"
	if created {
		result = "created"
	}
	util.PostsIngestedTotal.WithLabelValues(result).Inc()

	ip.logger.Info("Post ingested",
		zap.Int64("product_id", id),
		zap.Bool("created", created),
		zap.String("category", product.Category),
		zap.String("brand", product.Brand))

	event := &models.ProductIngestedEvent{
		BaseEvent: broker.NewBase(models.EventTypeProductIngested),
		ProductID: id,
		Created:   created,
		Category:  product.Category,
		Brand:     product.Brand,
		Price:     product.Price,
	}
	if err := ip.publisher.PublishProductIngested(ctx, event); err != nil {
		ip.logger.Error("Failed to publish ProductIngested event", zap.Error(err))
	}

	res := &IngestResult{
		ProductID: id,
		Created:   created,
		Category:  product.Category,
		Brand:     product.Brand,
		Price:     product.Price,
	}
	if product.Sizes != nil {
		res.Sizes = *product.Sizes
	}
	return res, nil
}
