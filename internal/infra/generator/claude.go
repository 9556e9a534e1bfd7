package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"

	"tubescribe/internal/resilience/circuitbreaker"
	"tubescribe/internal/resilience/retry"
	"tubescribe/internal/utils/text"
)

// ClaudeConfig holds configuration parameters for the Claude article generator.
// Configuration is loaded from environment variables with fallback to defaults.
type ClaudeConfig struct {
	// TranscriptCharLimit is the maximum number of transcript characters sent
	// to the API in one request. Loaded from GENERATOR_TRANSCRIPT_LIMIT.
	// Valid range: 1000-200000 characters. Default: 24000.
	TranscriptCharLimit int

	// Model is the Claude API model identifier to use for generation.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration
}

// GetTranscriptCharLimit implements GeneratorConfig interface.
func (c *ClaudeConfig) GetTranscriptCharLimit() int {
	return c.TranscriptCharLimit
}

// Validate implements GeneratorConfig interface.
func (c *ClaudeConfig) Validate() error {
	if err := ValidateTranscriptCharLimit(c.TranscriptCharLimit); err != nil {
		return fmt.Errorf("invalid transcript char limit: %w", err)
	}

	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	return nil
}

// LoadClaudeConfig loads configuration from environment variables.
// Invalid transcript limit values fall back to the default (24000) with a
// warning log.
//
// Environment variables:
//   - GENERATOR_TRANSCRIPT_LIMIT: Transcript character limit (default: 24000)
func LoadClaudeConfig() ClaudeConfig {
	const defaultTranscriptLimit = 24000

	limit := defaultTranscriptLimit

	if envLimit := os.Getenv("GENERATOR_TRANSCRIPT_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			slog.Warn("Invalid GENERATOR_TRANSCRIPT_LIMIT format, using default",
				slog.String("value", envLimit),
				slog.Int("default", defaultTranscriptLimit),
				slog.String("error", err.Error()))
		} else if validateErr := ValidateTranscriptCharLimit(parsed); validateErr != nil {
			slog.Warn("GENERATOR_TRANSCRIPT_LIMIT out of valid range, using default",
				slog.Int("value", parsed),
				slog.Int("default", defaultTranscriptLimit))
		} else {
			limit = parsed
		}
	}

	return ClaudeConfig{
		TranscriptCharLimit: limit,
		Model:               string(anthropic.Model("claude-sonnet-4-5-20250929")),
		MaxTokens:           1000,
		Timeout:             120 * time.Second,
	}
}

// Claude implements the ArticleGenerator interface using Anthropic's API.
// It includes circuit breaker and retry logic for improved reliability.
type Claude struct {
	client          anthropic.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          ClaudeConfig
	metricsRecorder ArticleMetricsRecorder
}

// NewClaude creates a new Claude article generator with the given API key.
// It automatically configures circuit breaker, retry logic, transcript limits,
// and metrics recording.
func NewClaude(apiKey string) *Claude {
	config := LoadClaudeConfig()

	slog.Info("Initialized Claude article generator",
		slog.String("model", config.Model),
		slog.Int("transcript_char_limit", config.TranscriptCharLimit))

	return &Claude{
		client:          anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.ClaudeAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          config,
		metricsRecorder: NewPrometheusArticleMetrics(),
	}
}

// Generate produces a blog article from the given transcript using Claude.
// It uses circuit breaker and retry logic for improved reliability.
// Markdown heading markers in the response are normalized before returning.
func (c *Claude) Generate(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doGenerate(ctx, transcript)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude api circuit breaker open, request rejected",
					slog.String("service", "claude-api"),
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("claude generate failed after retries: %w", retryErr)
	}

	return result, nil
}

// doGenerate performs the actual API call without retry or circuit breaker.
// It includes structured logging and metrics recording for observability.
func (c *Claude) doGenerate(ctx context.Context, transcript string) (string, error) {
	// Unique request ID for tracing
	requestID := uuid.New().String()

	truncated, wasTruncated := truncateTranscript(transcript, c.config.TranscriptCharLimit)
	if wasTruncated {
		slog.Warn("transcript truncated for claude api",
			slog.String("request_id", requestID),
			slog.Int("original_length", len(transcript)),
			slog.Int("truncated_length", len(truncated)))
		c.metricsRecorder.RecordTruncation()
	}

	inputLength := text.CountRunes(truncated)

	slog.InfoContext(ctx, "Starting article generation",
		slog.String("request_id", requestID),
		slog.Int("input_length", inputLength),
		slog.String("model", c.config.Model))

	start := time.Now()

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(buildUserPrompt(truncated)),
			),
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Article generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("claude api error: %w", err)
	}

	if len(message.Content) == 0 {
		slog.ErrorContext(ctx, "Claude API returned empty response",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned empty response")
	}

	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		slog.ErrorContext(ctx, "Claude API returned unexpected response type",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration))
		return "", fmt.Errorf("claude api returned unexpected response type")
	}

	article := normalizeHeadings(textBlock.Text)
	articleLength := text.CountRunes(article)

	slog.InfoContext(ctx, "Article generation completed",
		slog.String("request_id", requestID),
		slog.Int("article_length", articleLength),
		slog.Duration("duration", duration))

	c.metricsRecorder.RecordLength(articleLength)
	c.metricsRecorder.RecordDuration(duration)

	return article, nil
}
