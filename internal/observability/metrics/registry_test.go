package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"tubescribe/internal/observability/metrics"
)

// counterValue reads the current value of a labeled counter.
func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	var m dto.Metric
	c, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("GetMetricWithLabelValues: %v", err)
	}
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestRecordStage_IncrementsCounter(t *testing.T) {
	before := counterValue(t, metrics.PipelineStageTotal, "fetch", "success")

	metrics.RecordStage("fetch", "success", 150*time.Millisecond)

	after := counterValue(t, metrics.PipelineStageTotal, "fetch", "success")
	if after != before+1 {
		t.Errorf("expected counter to increase by 1, before=%v after=%v", before, after)
	}
}

func TestRecordStage_SeparatesOutcomes(t *testing.T) {
	beforeErr := counterValue(t, metrics.PipelineStageTotal, "transcribe", "error")

	metrics.RecordStage("transcribe", "error", 2*time.Second)
	metrics.RecordStage("transcribe", "success", 2*time.Second)

	afterErr := counterValue(t, metrics.PipelineStageTotal, "transcribe", "error")
	if afterErr != beforeErr+1 {
		t.Errorf("expected error counter to increase by exactly 1, before=%v after=%v", beforeErr, afterErr)
	}
}
