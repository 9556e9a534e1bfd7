package circuitbreaker

import (
	"errors"
	"testing"

	"github.com/sony/gobreaker"
)

func TestExecute_Success(t *testing.T) {
	cb := New(DefaultConfig("test"))

	result, err := cb.Execute(func() (interface{}, error) {
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("Execute err=%v", err)
	}
	if result.(string) != "ok" {
		t.Errorf("expected ok, got %v", result)
	}
}

func TestExecute_TripsAfterFailures(t *testing.T) {
	cfg := DefaultConfig("trip-test")
	cfg.MinRequests = 2
	cfg.FailureThreshold = 0.5
	cb := New(cfg)

	boom := errors.New("boom")
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, boom
		})
	}

	if !cb.IsOpen() {
		t.Fatalf("expected breaker to be open, state=%v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) {
		return "should not run", nil
	})
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("expected ErrOpenState, got %v", err)
	}
}

func TestConfigs_Named(t *testing.T) {
	tests := []struct {
		cfg  Config
		name string
	}{
		{OpenAIAPIConfig(), "openai-api"},
		{ClaudeAPIConfig(), "claude-api"},
		{TranscriptionAPIConfig(), "assemblyai-api"},
		{MediaDownloadConfig(), "media-download"},
	}
	for _, tt := range tests {
		if tt.cfg.Name != tt.name {
			t.Errorf("expected name %q, got %q", tt.name, tt.cfg.Name)
		}
		if New(tt.cfg).Name() != tt.name {
			t.Errorf("breaker name mismatch for %q", tt.name)
		}
	}
}
