package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WebhooksCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_mock_captured_total",
		Help: "Total number of webhooks captured into the store.",
	})

	WebhooksRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_mock_rejected_total",
		Help: "Total number of webhook requests not captured, labelled by reason.",
	}, []string{"reason"})

	StoredWebhooks = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "webhook_mock_stored",
		Help: "Number of webhooks currently held in memory.",
	})

	StreamDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "webhook_mock_stream_dropped_total",
		Help: "Total number of captures not forwarded to stream watchers because the hub was full.",
	})

	QueuePublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "webhook_mock_queue_published_total",
		Help: "Total number of queue mirror publishes, labelled by status.",
	}, []string{"status"})
)

const (
	ReasonInvalidJSON = "invalid_json"
	ReasonContentType = "content_type"
	ReasonTooLarge    = "too_large"
	ReasonStoreError  = "store_error"
)
