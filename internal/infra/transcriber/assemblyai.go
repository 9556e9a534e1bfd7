// Package transcriber provides speech-to-text implementations for downloaded
// media files. It uses the AssemblyAI API with reliability patterns.
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"
	"github.com/sony/gobreaker"

	"tubescribe/internal/resilience/circuitbreaker"
	"tubescribe/internal/resilience/retry"
	"tubescribe/internal/utils/text"
)

// AssemblyAI implements the pipeline.Transcriber interface using AssemblyAI's
// transcription API. It uploads the local media file and polls until the
// transcript completes. Circuit breaker and retry logic protect against
// transient API failures.
type AssemblyAI struct {
	client         *aai.Client
	config         Config
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewAssemblyAI creates a new AssemblyAI transcriber with the given API key.
// It automatically configures circuit breaker and retry logic.
func NewAssemblyAI(apiKey string, cfg Config) *AssemblyAI {
	slog.Info("Initialized AssemblyAI transcriber",
		slog.Duration("timeout", cfg.Timeout))

	return &AssemblyAI{
		client:         aai.NewClient(apiKey),
		config:         cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.TranscriptionAPIConfig()),
		retryConfig:    retry.TranscriptionConfig(),
	}
}

// Transcribe converts the media file at filePath to text.
// It uses circuit breaker and retry logic for improved reliability.
func (a *AssemblyAI) Transcribe(ctx context.Context, filePath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, a.retryConfig, func() error {
		cbResult, err := a.circuitBreaker.Execute(func() (interface{}, error) {
			return a.doTranscribe(ctx, filePath)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("transcription api circuit breaker open, request rejected",
					slog.String("service", "assemblyai-api"),
					slog.String("state", a.circuitBreaker.State().String()))
				return fmt.Errorf("transcription api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("assemblyai transcribe failed after retries: %w", retryErr)
	}

	return result, nil
}

// doTranscribe performs the actual upload and transcription without retry or
// circuit breaker.
func (a *AssemblyAI) doTranscribe(ctx context.Context, filePath string) (string, error) {
	// #nosec G304 -- path comes from the media fetcher, not user input
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open media file: %w", err)
	}
	defer func() { _ = f.Close() }()

	slog.InfoContext(ctx, "Starting transcription",
		slog.String("file_path", filePath))

	start := time.Now()

	transcript, err := a.client.Transcripts.TranscribeFromReader(ctx, f, nil)
	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Transcription failed",
			slog.String("file_path", filePath),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("assemblyai api error: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		apiErr := aai.ToString(transcript.Error)
		slog.ErrorContext(ctx, "Transcription rejected by API",
			slog.String("file_path", filePath),
			slog.Duration("duration", duration),
			slog.String("error", apiErr))
		return "", fmt.Errorf("assemblyai transcript error: %s", apiErr)
	}

	transcriptText := aai.ToString(transcript.Text)

	slog.InfoContext(ctx, "Transcription completed",
		slog.String("file_path", filePath),
		slog.Int("transcript_length", text.CountRunes(transcriptText)),
		slog.Duration("duration", duration))

	return transcriptText, nil
}
