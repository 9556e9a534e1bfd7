package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tubescribe/internal/domain/entity"
	"tubescribe/internal/observability/metrics"
	"tubescribe/internal/repository"
)

// Media describes a downloaded media file on local disk.
type Media struct {
	// VideoID is the provider-assigned video identifier.
	VideoID string
	// Title is the video title as reported by the provider.
	Title string
	// FilePath is the absolute or working-directory-relative path of the
	// downloaded file. The file is named <VideoID>.<ext>.
	FilePath string
	// MimeType is the MIME type of the downloaded stream.
	MimeType string
}

// MediaFetcher downloads the audio stream of a video to local disk.
type MediaFetcher interface {
	Fetch(ctx context.Context, link string) (*Media, error)
}

// Transcriber converts a downloaded media file to text.
type Transcriber interface {
	Transcribe(ctx context.Context, filePath string) (string, error)
}

// ArticleGenerator produces a blog article from a transcript.
type ArticleGenerator interface {
	Generate(ctx context.Context, transcript string) (string, error)
}

// ArticleNotifier announces a persisted article to an external channel.
// Notification happens after the response is already decided, so failures
// are logged and never surfaced to the caller.
type ArticleNotifier interface {
	NotifyArticle(ctx context.Context, article *entity.Article) error
}

// Stage names used in logs and metrics.
const (
	stageFetch      = "fetch"
	stageTranscribe = "transcribe"
	stageGenerate   = "generate"
	stagePersist    = "persist"
)

// Service orchestrates the article generation pipeline.
// Stages run sequentially and fail fast: a failure in one stage aborts the
// run and no later stage executes. Each run that completes persists exactly
// one article; a failed run persists nothing.
type Service struct {
	ArticleRepo repository.ArticleRepository
	Fetcher     MediaFetcher
	Transcriber Transcriber
	Generator   ArticleGenerator

	// Notifier is optional; when set, every persisted article is announced
	// in the background without delaying the response.
	Notifier ArticleNotifier
}

// NewService creates a new pipeline Service with the provided dependencies.
func NewService(
	articleRepo repository.ArticleRepository,
	fetcher MediaFetcher,
	transcriber Transcriber,
	generator ArticleGenerator,
) Service {
	return Service{
		ArticleRepo: articleRepo,
		Fetcher:     fetcher,
		Transcriber: transcriber,
		Generator:   generator,
	}
}

// Run executes the full pipeline for one video link on behalf of the given
// owner. On success it returns the persisted article with its ID set.
//
// Submitting the same link twice produces two independent runs and two
// articles; the pipeline performs no deduplication.
func (s *Service) Run(ctx context.Context, ownerID int64, link string) (*entity.Article, error) {
	logger := slog.Default()
	runStart := time.Now()

	logger.InfoContext(ctx, "pipeline run started",
		slog.Int64("owner_id", ownerID),
		slog.String("link", link))

	media, err := s.fetchStage(ctx, link)
	if err != nil {
		return nil, err
	}

	transcript, err := s.transcribeStage(ctx, media)
	if err != nil {
		return nil, err
	}

	content, err := s.generateStage(ctx, media, transcript)
	if err != nil {
		return nil, err
	}

	article, err := s.persistStage(ctx, ownerID, link, media, content)
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		go s.notify(article)
	}

	logger.InfoContext(ctx, "pipeline run completed",
		slog.Int64("owner_id", ownerID),
		slog.Int64("article_id", article.ID),
		slog.String("video_id", media.VideoID),
		slog.Duration("duration", time.Since(runStart)))

	return article, nil
}

// notify announces the article on a detached context so a slow or failing
// webhook cannot block or fail the request that produced the article.
func (s *Service) notify(article *entity.Article) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.Notifier.NotifyArticle(ctx, article); err != nil {
		slog.Warn("article notification failed",
			slog.Int64("article_id", article.ID),
			slog.Any("error", err))
	}
}

// fetchStage downloads the media and records stage metrics.
func (s *Service) fetchStage(ctx context.Context, link string) (*Media, error) {
	start := time.Now()

	media, err := s.Fetcher.Fetch(ctx, link)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordStage(stageFetch, "error", duration)
		slog.WarnContext(ctx, "media fetch failed",
			slog.String("link", link),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return nil, errors.Join(ErrFetchFailed, err)
	}

	metrics.RecordStage(stageFetch, "success", duration)
	slog.InfoContext(ctx, "media fetch completed",
		slog.String("video_id", media.VideoID),
		slog.String("file_path", media.FilePath),
		slog.Duration("duration", duration))

	return media, nil
}

// transcribeStage converts the downloaded media to text.
func (s *Service) transcribeStage(ctx context.Context, media *Media) (string, error) {
	start := time.Now()

	transcript, err := s.Transcriber.Transcribe(ctx, media.FilePath)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordStage(stageTranscribe, "error", duration)
		slog.WarnContext(ctx, "transcription failed",
			slog.String("video_id", media.VideoID),
			slog.String("title", media.Title),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		// The title stays in the error so callers can report which video
		// failed even though the run produced no article.
		return "", errors.Join(ErrTranscriptionFailed, fmt.Errorf("transcribing %q: %w", media.Title, err))
	}

	if strings.TrimSpace(transcript) == "" {
		metrics.RecordStage(stageTranscribe, "empty", duration)
		slog.WarnContext(ctx, "transcription returned empty text",
			slog.String("video_id", media.VideoID),
			slog.String("title", media.Title),
			slog.Duration("duration", duration))
		return "", errors.Join(ErrEmptyTranscript, fmt.Errorf("video %q produced no speech", media.Title))
	}

	metrics.RecordStage(stageTranscribe, "success", duration)
	slog.InfoContext(ctx, "transcription completed",
		slog.String("video_id", media.VideoID),
		slog.Int("transcript_length", len(transcript)),
		slog.Duration("duration", duration))

	return transcript, nil
}

// generateStage produces the article body from the transcript.
func (s *Service) generateStage(ctx context.Context, media *Media, transcript string) (string, error) {
	start := time.Now()

	content, err := s.Generator.Generate(ctx, transcript)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordStage(stageGenerate, "error", duration)
		slog.WarnContext(ctx, "article generation failed",
			slog.String("video_id", media.VideoID),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", errors.Join(ErrGenerationFailed, err)
	}

	metrics.RecordStage(stageGenerate, "success", duration)
	return content, nil
}

// persistStage stores the finished article.
func (s *Service) persistStage(ctx context.Context, ownerID int64, link string, media *Media, content string) (*entity.Article, error) {
	start := time.Now()

	article := &entity.Article{
		OwnerID:     ownerID,
		SourceTitle: media.Title,
		SourceLink:  link,
		Content:     content,
		CreatedAt:   time.Now(),
	}

	err := s.ArticleRepo.Create(ctx, article)
	duration := time.Since(start)

	if err != nil {
		metrics.RecordStage(stagePersist, "error", duration)
		return nil, errors.Join(ErrPersistFailed, fmt.Errorf("create article in repository: %w", err))
	}

	metrics.RecordStage(stagePersist, "success", duration)
	metrics.ArticlesGeneratedTotal.Inc()

	return article, nil
}
