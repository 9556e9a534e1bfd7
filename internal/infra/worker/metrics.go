package worker

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SweeperMetrics provides Prometheus metrics for the retention sweeper.
//
// Metrics:
//   - worker_sweep_runs_total: sweep runs by status (success/failure)
//   - worker_sweep_duration_seconds: duration histogram of sweep runs
//   - worker_sweep_files_removed_total: files removed across all runs
//   - worker_sweep_bytes_reclaimed_total: bytes reclaimed across all runs
//   - worker_sweep_last_success_timestamp: Unix time of the last successful run
type SweeperMetrics struct {
	SweepRunsTotal            *prometheus.CounterVec
	SweepDurationSeconds      prometheus.Histogram
	SweepFilesRemovedTotal    prometheus.Counter
	SweepBytesReclaimedTotal  prometheus.Counter
	SweepLastSuccessTimestamp prometheus.Gauge
}

// NewSweeperMetrics creates and registers the sweeper metrics.
func NewSweeperMetrics() *SweeperMetrics {
	return &SweeperMetrics{
		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_sweep_runs_total",
			Help: "Total number of media sweep runs by status (success/failure)",
		}, []string{"status"}),

		SweepDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_sweep_duration_seconds",
			Help:    "Duration of media sweep runs in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 30, 60, 300},
		}),

		SweepFilesRemovedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sweep_files_removed_total",
			Help: "Total number of expired media files removed",
		}),

		SweepBytesReclaimedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worker_sweep_bytes_reclaimed_total",
			Help: "Total bytes reclaimed by removing expired media files",
		}),

		SweepLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_sweep_last_success_timestamp",
			Help: "Unix timestamp of the last successful sweep run",
		}),
	}
}

// RecordRun increments the run counter with the given status.
func (m *SweeperMetrics) RecordRun(status string, duration time.Duration) {
	m.SweepRunsTotal.WithLabelValues(status).Inc()
	m.SweepDurationSeconds.Observe(duration.Seconds())
}

// RecordSweep records the outcome of one successful sweep.
func (m *SweeperMetrics) RecordSweep(stats *SweepStats) {
	m.SweepFilesRemovedTotal.Add(float64(stats.Removed))
	m.SweepBytesReclaimedTotal.Add(float64(stats.BytesReclaimed))
	m.SweepLastSuccessTimestamp.SetToCurrentTime()
}
