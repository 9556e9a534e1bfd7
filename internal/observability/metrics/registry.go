// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics track the generation workflow stages: fetch, transcribe,
// generate, persist. HTTP-level metrics live in the handler package.
var (
	// PipelineStageTotal counts pipeline stage executions by stage and outcome
	PipelineStageTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_stage_total",
			Help: "Total number of pipeline stage executions",
		},
		[]string{"stage", "status"},
	)

	// PipelineStageDuration measures per-stage duration in seconds.
	// External calls dominate, so buckets extend into minutes.
	PipelineStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Pipeline stage duration in seconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"stage"},
	)

	// ArticlesGeneratedTotal counts successfully persisted articles
	ArticlesGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_generated_total",
			Help: "Total number of articles generated and persisted",
		},
	)
)

// Persistence metrics
var (
	// DBQueryDuration measures database query duration by operation
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)
)

// RecordDBQuery records the duration of a database query operation.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordStage records one pipeline stage execution with its outcome and duration.
func RecordStage(stage, status string, duration time.Duration) {
	PipelineStageTotal.WithLabelValues(stage, status).Inc()
	PipelineStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}
