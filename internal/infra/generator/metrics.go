package generator

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ArticleMetricsRecorder defines the interface for recording generation metrics.
// This interface abstracts the metrics recording implementation, enabling:
//   - Mocking in unit tests (inject mock recorder instead of Prometheus)
//   - Swapping metrics systems (DataDog, New Relic, OpenTelemetry, etc.)
//   - Reusability across different AI providers (OpenAI, Claude)
type ArticleMetricsRecorder interface {
	// RecordLength records the length of a generated article in characters.
	RecordLength(length int)

	// RecordTruncation increments the counter when a transcript is truncated
	// before being sent to the AI API.
	RecordTruncation()

	// RecordDuration records the time taken to generate an article.
	RecordDuration(duration time.Duration)
}

// PrometheusArticleMetrics implements ArticleMetricsRecorder using Prometheus.
// This is the production implementation that records metrics to Prometheus.
type PrometheusArticleMetrics struct {
	lengthHistogram   prometheus.Histogram
	truncationCounter prometheus.Counter
	durationHistogram prometheus.Histogram
}

var (
	prometheusMetricsInstance *PrometheusArticleMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogram gets an existing histogram or creates a new one if it doesn't exist
func getOrCreateHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	h := prometheus.NewHistogram(opts)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Histogram)
		}
		// If it's not an AlreadyRegisteredError, use promauto which handles this gracefully
		return promauto.NewHistogram(opts)
	}
	return h
}

// getOrCreateCounter gets an existing counter or creates a new one if it doesn't exist
func getOrCreateCounter(opts prometheus.CounterOpts) prometheus.Counter {
	c := prometheus.NewCounter(opts)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(prometheus.Counter)
		}
		return promauto.NewCounter(opts)
	}
	return c
}

// NewPrometheusArticleMetrics creates a new Prometheus-based metrics recorder.
// It initializes and registers all required Prometheus metrics.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusArticleMetrics() *PrometheusArticleMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusArticleMetrics{
			lengthHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "article_generated_length_characters",
				Help:    "Distribution of generated article lengths in characters (Unicode runes)",
				Buckets: []float64{500, 1000, 2000, 3000, 4000, 6000, 8000, 12000},
			}),
			truncationCounter: getOrCreateCounter(prometheus.CounterOpts{
				Name: "article_transcript_truncated_total",
				Help: "Total number of transcripts truncated before AI generation",
			}),
			durationHistogram: getOrCreateHistogram(prometheus.HistogramOpts{
				Name:    "article_generation_duration_seconds",
				Help:    "Time taken to generate an article via AI API",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements ArticleMetricsRecorder.RecordLength
func (p *PrometheusArticleMetrics) RecordLength(length int) {
	p.lengthHistogram.Observe(float64(length))
}

// RecordTruncation implements ArticleMetricsRecorder.RecordTruncation
func (p *PrometheusArticleMetrics) RecordTruncation() {
	p.truncationCounter.Inc()
}

// RecordDuration implements ArticleMetricsRecorder.RecordDuration
func (p *PrometheusArticleMetrics) RecordDuration(duration time.Duration) {
	p.durationHistogram.Observe(duration.Seconds())
}
