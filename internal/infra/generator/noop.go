package generator

import (
	"context"
)

// NoOp is a generator that echoes the transcript back without calling any AI
// API. This is useful for testing and development when generation is not
// needed or no API key is configured.
type NoOp struct{}

// NewNoOp creates a new NoOp generator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Generate returns the transcript truncated to a reasonable length so the
// output resembles an article body in size.
func (n *NoOp) Generate(_ context.Context, transcript string) (string, error) {
	const maxLength = 4000
	if len(transcript) <= maxLength {
		return transcript, nil
	}
	return transcript[:maxLength] + "...", nil
}
