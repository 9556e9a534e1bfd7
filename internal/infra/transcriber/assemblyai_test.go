package transcriber_test

import (
	"testing"
	"time"

	"tubescribe/internal/infra/transcriber"
	"tubescribe/internal/usecase/pipeline"
)

func TestAssemblyAI_ImplementsTranscriber(t *testing.T) {
	var _ pipeline.Transcriber = (*transcriber.AssemblyAI)(nil)
}

func TestNewAssemblyAI(t *testing.T) {
	a := transcriber.NewAssemblyAI("test-key", transcriber.Config{Timeout: 15 * time.Minute})
	if a == nil {
		t.Fatal("expected non-nil transcriber")
	}
}
