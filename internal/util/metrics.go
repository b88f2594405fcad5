package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsIngestedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "posts_ingested_total",
		Help: "Total number of posts ingested into the catalog",
	}, []string{"result"}) // created | duplicate

	IngestFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ingest_failures_total",
		Help: "Total number of post ingestions that failed at the store",
	})

	PriceParseMissTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "price_parse_miss_total",
		Help: "Total number of ingested posts with no extractable price",
	})

	CartAddsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cart_adds_total",
		Help: "Total number of add-to-cart operations",
	})

	OrdersCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Total number of orders created",
	})

	CheckoutEmptyTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checkout_empty_total",
		Help: "Total number of checkouts against an empty cart",
	})

	CheckoutFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_failed_total",
		Help: "Total number of failed checkouts",
	}, []string{"reason"})

	CheckoutLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "checkout_latency_seconds",
		Help:    "Latency of cart to order conversion",
		Buckets: prometheus.DefBuckets,
	})

	ImportRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "import_rows_total",
		Help: "Total number of CSV import rows processed",
	}, []string{"result"}) // imported | skipped

	AdminNotifyTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_notifications_total",
		Help: "Total number of notifications sent to the administrator",
	}, []string{"kind"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
