package generator

import "fmt"

// GeneratorConfig is a common interface for article generator configuration.
// Both OpenAI and Claude implementations should implement this interface
// to ensure consistent validation and configuration behavior.
type GeneratorConfig interface {
	// GetTranscriptCharLimit returns the maximum number of transcript characters
	// sent to the AI API in a single request. Longer transcripts are truncated.
	GetTranscriptCharLimit() int

	// Validate validates the configuration and returns an error if invalid.
	Validate() error
}

const (
	// minTranscriptCharLimit is the minimum allowed transcript character limit.
	minTranscriptCharLimit = 1000

	// maxTranscriptCharLimit is the maximum allowed transcript character limit.
	maxTranscriptCharLimit = 200000
)

// ValidateTranscriptCharLimit validates that the transcript character limit is
// within the valid range (1000-200000). Returns an error if the limit is out
// of range with a descriptive message.
func ValidateTranscriptCharLimit(limit int) error {
	if limit < minTranscriptCharLimit {
		return fmt.Errorf("transcript char limit %d is below minimum %d", limit, minTranscriptCharLimit)
	}
	if limit > maxTranscriptCharLimit {
		return fmt.Errorf("transcript char limit %d exceeds maximum %d", limit, maxTranscriptCharLimit)
	}
	return nil
}
