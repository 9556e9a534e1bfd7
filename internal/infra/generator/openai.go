// Package generator provides AI-powered blog article generation implementations.
// It includes adapters for OpenAI and Claude (Anthropic) APIs with reliability patterns.
// This package turns video transcripts into blog-style articles with comprehensive
// observability through structured logging and Prometheus metrics.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"

	"tubescribe/internal/resilience/circuitbreaker"
	"tubescribe/internal/resilience/retry"
	"tubescribe/internal/utils/text"
)

// OpenAIConfig holds configuration parameters for the OpenAI article generator.
// Configuration is loaded from environment variables with fallback to defaults.
type OpenAIConfig struct {
	// TranscriptCharLimit is the maximum number of transcript characters sent
	// to the API in one request. Loaded from GENERATOR_TRANSCRIPT_LIMIT.
	// Valid range: 1000-200000 characters. Default: 24000.
	TranscriptCharLimit int

	// Model is the OpenAI API model identifier to use for generation.
	Model string

	// MaxTokens is the maximum number of tokens for the API response.
	MaxTokens int

	// Temperature controls the randomness of the generated article.
	Temperature float32

	// Timeout is the maximum duration for a single generation API call.
	Timeout time.Duration
}

// GetTranscriptCharLimit implements GeneratorConfig interface.
func (c *OpenAIConfig) GetTranscriptCharLimit() int {
	return c.TranscriptCharLimit
}

// Validate implements GeneratorConfig interface.
// Validates the configuration and returns an error if invalid.
func (c *OpenAIConfig) Validate() error {
	if err := ValidateTranscriptCharLimit(c.TranscriptCharLimit); err != nil {
		return fmt.Errorf("invalid transcript char limit: %w", err)
	}

	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}

	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}

	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("temperature must be in [0, 2], got %v", c.Temperature)
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}

	return nil
}

// LoadOpenAIConfig loads configuration from environment variables.
// It performs validation on the transcript limit to ensure it's within a
// valid range (1000-200000). Returns an error if the configuration is invalid.
//
// Environment variables:
//   - GENERATOR_TRANSCRIPT_LIMIT: Transcript character limit (default: 24000)
//   - GENERATOR_MODEL: OpenAI model identifier (default: gpt-3.5-turbo)
func LoadOpenAIConfig() (*OpenAIConfig, error) {
	const defaultTranscriptLimit = 24000

	limit := defaultTranscriptLimit

	if envLimit := os.Getenv("GENERATOR_TRANSCRIPT_LIMIT"); envLimit != "" {
		parsed, err := strconv.Atoi(envLimit)
		if err != nil {
			return nil, fmt.Errorf("invalid GENERATOR_TRANSCRIPT_LIMIT format: %s: %w", envLimit, err)
		}

		if err := ValidateTranscriptCharLimit(parsed); err != nil {
			return nil, fmt.Errorf("GENERATOR_TRANSCRIPT_LIMIT out of valid range: %w", err)
		}

		limit = parsed
	}

	model := os.Getenv("GENERATOR_MODEL")
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	config := &OpenAIConfig{
		TranscriptCharLimit: limit,
		Model:               model,
		MaxTokens:           1000,
		Temperature:         0.7,
		Timeout:             120 * time.Second,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid OpenAI configuration: %w", err)
	}

	return config, nil
}

// OpenAI implements the ArticleGenerator interface using OpenAI's chat API.
// It includes circuit breaker and retry logic for improved reliability.
type OpenAI struct {
	client          *openai.Client
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	config          GeneratorConfig
	maxTokens       int
	temperature     float32
	model           string
	timeout         time.Duration
	metricsRecorder ArticleMetricsRecorder
}

// NewOpenAI creates a new OpenAI article generator with the given API key.
// It automatically configures circuit breaker, retry logic, transcript limits,
// and metrics recording.
func NewOpenAI(apiKey string, config *OpenAIConfig) *OpenAI {
	slog.Info("Initialized OpenAI article generator",
		slog.String("model", config.Model),
		slog.Int("transcript_char_limit", config.TranscriptCharLimit))

	return &OpenAI{
		client:          openai.NewClient(apiKey),
		circuitBreaker:  circuitbreaker.New(circuitbreaker.OpenAIAPIConfig()),
		retryConfig:     retry.AIAPIConfig(),
		config:          config,
		maxTokens:       config.MaxTokens,
		temperature:     config.Temperature,
		model:           config.Model,
		timeout:         config.Timeout,
		metricsRecorder: NewPrometheusArticleMetrics(),
	}
}

// Generate produces a blog article from the given transcript using OpenAI's
// chat API. It uses circuit breaker and retry logic for improved reliability.
// Markdown heading markers in the response are normalized before returning.
func (o *OpenAI) Generate(ctx context.Context, transcript string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	var result string

	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doGenerate(ctx, transcript)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai api circuit breaker open, request rejected",
					slog.String("service", "openai-api"),
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai api unavailable: circuit breaker open")
			}
			return err
		}

		result = cbResult.(string)
		return nil
	})

	if retryErr != nil {
		return "", fmt.Errorf("openai generate failed after retries: %w", retryErr)
	}

	return result, nil
}

// doGenerate performs the actual API call without retry or circuit breaker.
// It includes structured logging and metrics recording for observability.
func (o *OpenAI) doGenerate(ctx context.Context, transcript string) (string, error) {
	truncated, wasTruncated := truncateTranscript(transcript, o.config.GetTranscriptCharLimit())
	if wasTruncated {
		slog.Warn("transcript truncated for openai api",
			slog.Int("original_length", len(transcript)),
			slog.Int("truncated_length", len(truncated)))
		o.metricsRecorder.RecordTruncation()
	}

	inputLength := text.CountRunes(truncated)

	slog.InfoContext(ctx, "Starting article generation",
		slog.Int("input_length", inputLength),
		slog.String("model", o.model))

	start := time.Now()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildUserPrompt(truncated),
			},
		},
	})

	duration := time.Since(start)

	if err != nil {
		slog.ErrorContext(ctx, "Article generation failed",
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("openai api error: %w", err)
	}

	// Safety check to prevent panic on array access
	if len(resp.Choices) == 0 {
		slog.ErrorContext(ctx, "OpenAI API returned empty response",
			slog.Duration("duration", duration))
		return "", fmt.Errorf("openai api returned empty response")
	}

	article := normalizeHeadings(resp.Choices[0].Message.Content)
	articleLength := text.CountRunes(article)

	slog.InfoContext(ctx, "Article generation completed",
		slog.Int("article_length", articleLength),
		slog.Duration("duration", duration))

	o.metricsRecorder.RecordLength(articleLength)
	o.metricsRecorder.RecordDuration(duration)

	return article, nil
}
