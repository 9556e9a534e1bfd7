// Package pipeline provides the use case for turning a video link into a
// persisted blog article. It orchestrates media download, transcription,
// AI article generation, and storage as a single fail-fast workflow.
package pipeline

import "errors"

// Sentinel errors for pipeline stages. Handlers map these to user-facing
// responses without exposing upstream provider errors.
var (
	// ErrFetchFailed indicates that downloading media for the video link failed.
	// This can occur due to network issues, an unavailable video, or an
	// unsupported link.
	ErrFetchFailed = errors.New("failed to fetch media for video link")

	// ErrTranscriptionFailed indicates that speech-to-text transcription of the
	// downloaded media failed.
	ErrTranscriptionFailed = errors.New("failed to transcribe media")

	// ErrEmptyTranscript indicates that transcription succeeded but produced no
	// usable text, so no article can be generated.
	ErrEmptyTranscript = errors.New("transcription produced empty text")

	// ErrGenerationFailed indicates that AI article generation from the
	// transcript failed.
	ErrGenerationFailed = errors.New("failed to generate article from transcript")

	// ErrPersistFailed indicates that storing the generated article failed.
	ErrPersistFailed = errors.New("failed to persist generated article")
)
