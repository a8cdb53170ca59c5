/*
Package metrics exposes Prometheus collectors for the webhook layer.
*/
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fact_search_duration_seconds",
			Help:    "Knowledge search duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"confidence"},
	)

	SearchTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fact_search_total",
			Help: "Total number of knowledge searches",
		},
		[]string{"status"},
	)

	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fact_feedback_total",
			Help: "Total number of feedback submissions",
		},
		[]string{"kind", "status"},
	)

	TrainingAccuracy = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fact_training_accuracy",
			Help: "Rolling accuracy estimate from the training engine",
		},
	)

	KnowledgeEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fact_knowledge_entries",
			Help: "Number of entries in the knowledge store",
		},
	)
)

// Register registers all collectors with the default registry.
func Register() {
	prometheus.MustRegister(
		SearchDuration,
		SearchTotal,
		FeedbackTotal,
		TrainingAccuracy,
		KnowledgeEntries,
	)
}

// Handler returns a fiber handler serving the /metrics endpoint.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
