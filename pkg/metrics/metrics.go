package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReadingsIngested = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dash_readings_ingested_total",
			Help: "Total number of sensor readings persisted",
		},
	)

	ReadingsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dash_readings_rejected_total",
			Help: "Total number of readings not persisted",
		},
		[]string{"reason"}, // reason: unknown_sensor, invalid_value, error
	)

	AlertsOpened = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dash_alerts_opened_total",
			Help: "Total number of alert episodes opened (pulses included)",
		},
	)

	AlertsClosed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dash_alerts_closed_total",
			Help: "Total number of alert episodes closed (pulses included)",
		},
	)

	IngestConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dash_ingest_conflicts_total",
			Help: "Total number of open-alert uniqueness conflicts hit during ingestion",
		},
	)

	WebhookBatches = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dash_webhook_batches_total",
			Help: "Total number of webhook payloads processed",
		},
	)

	WebhookBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dash_webhook_batch_size",
			Help:    "Number of sensor entries per webhook payload",
			Buckets: []float64{1, 2, 5, 10, 25, 50},
		},
	)

	NotificationsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dash_notifications_dropped_total",
			Help: "Total number of push notifications dropped on slow or gone clients",
		},
	)
)
