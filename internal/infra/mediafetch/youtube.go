// Package mediafetch provides implementations for downloading video audio
// streams to local disk. It uses the kkdai/youtube library for stream
// resolution with reliability patterns.
package mediafetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	youtube "github.com/kkdai/youtube/v2"
	"github.com/sony/gobreaker"

	"tubescribe/internal/resilience/circuitbreaker"
	"tubescribe/internal/resilience/retry"
	"tubescribe/internal/usecase/pipeline"
)

// YouTubeFetcher implements pipeline.MediaFetcher for YouTube links.
// It downloads the best available audio-only stream and stores it under the
// configured media directory, named <videoID>.<ext>. Re-downloading the same
// video overwrites the existing file.
type YouTubeFetcher struct {
	client         youtube.Client
	config         Config
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	titleScraper   *TitleScraper
}

// NewYouTubeFetcher creates a new YouTubeFetcher with the given configuration.
// It automatically configures circuit breaker and retry logic, and a
// watch-page title scraper used when the API reports no title.
func NewYouTubeFetcher(cfg Config, titleScraper *TitleScraper) *YouTubeFetcher {
	slog.Info("Initialized YouTube media fetcher",
		slog.String("media_dir", cfg.Dir),
		slog.Duration("timeout", cfg.Timeout))

	return &YouTubeFetcher{
		client:         youtube.Client{},
		config:         cfg,
		circuitBreaker: circuitbreaker.New(circuitbreaker.MediaDownloadConfig()),
		retryConfig:    retry.MediaDownloadConfig(),
		titleScraper:   titleScraper,
	}
}

// Fetch downloads the audio stream for the given video link.
// It uses circuit breaker and retry logic for improved reliability.
func (y *YouTubeFetcher) Fetch(ctx context.Context, link string) (*pipeline.Media, error) {
	ctx, cancel := context.WithTimeout(ctx, y.config.Timeout)
	defer cancel()

	var media *pipeline.Media

	retryErr := retry.WithBackoff(ctx, y.retryConfig, func() error {
		cbResult, err := y.circuitBreaker.Execute(func() (interface{}, error) {
			return y.doFetch(ctx, link)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("media download circuit breaker open, request rejected",
					slog.String("service", "media-download"),
					slog.String("link", link),
					slog.String("state", y.circuitBreaker.State().String()))
				return fmt.Errorf("media download unavailable: circuit breaker open")
			}
			return err
		}

		media = cbResult.(*pipeline.Media)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("youtube fetch failed after retries: %w", retryErr)
	}

	return media, nil
}

// doFetch performs the actual download without retry or circuit breaker.
func (y *YouTubeFetcher) doFetch(ctx context.Context, link string) (*pipeline.Media, error) {
	start := time.Now()

	video, err := y.client.GetVideoContext(ctx, link)
	if err != nil {
		return nil, fmt.Errorf("resolve video: %w", err)
	}

	format, err := selectAudioFormat(video.Formats)
	if err != nil {
		return nil, fmt.Errorf("select audio format: %w", err)
	}

	stream, _, err := y.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer func() { _ = stream.Close() }()

	filePath := filepath.Join(y.config.Dir, video.ID+"."+extensionForMime(format.MimeType))

	written, err := writeStream(filePath, stream)
	if err != nil {
		return nil, fmt.Errorf("write media file: %w", err)
	}

	title := video.Title
	if title == "" && y.titleScraper != nil {
		// Some videos come back without metadata; fall back to the watch page.
		if scraped, scrapeErr := y.titleScraper.Title(ctx, link); scrapeErr == nil {
			title = scraped
		} else {
			slog.Warn("watch page title fallback failed",
				slog.String("video_id", video.ID),
				slog.Any("error", scrapeErr))
		}
	}

	slog.InfoContext(ctx, "media download completed",
		slog.String("video_id", video.ID),
		slog.String("file_path", filePath),
		slog.Int64("bytes", written),
		slog.Duration("duration", time.Since(start)))

	return &pipeline.Media{
		VideoID:  video.ID,
		Title:    title,
		FilePath: filePath,
		MimeType: baseMimeType(format.MimeType),
	}, nil
}

// writeStream copies the stream to a file, replacing any previous download
// of the same video.
func writeStream(filePath string, stream io.Reader) (int64, error) {
	// #nosec G304 -- path is built from the configured media dir and the provider video ID
	f, err := os.Create(filePath)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(f, stream)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(filePath)
		return 0, fmt.Errorf("copy stream: %w", err)
	}

	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close file: %w", err)
	}

	return written, nil
}

// selectAudioFormat picks the highest-bitrate audio-only format.
// Falls back to the first available format when no audio-only stream exists.
func selectAudioFormat(formats youtube.FormatList) (*youtube.Format, error) {
	if len(formats) == 0 {
		return nil, fmt.Errorf("video has no downloadable formats")
	}

	var best *youtube.Format
	for i := range formats {
		f := &formats[i]
		if !strings.HasPrefix(f.MimeType, "audio/") {
			continue
		}
		if best == nil || f.Bitrate > best.Bitrate {
			best = f
		}
	}

	if best == nil {
		// Muxed streams still contain an audio track.
		best = &formats[0]
	}

	return best, nil
}

// extensionForMime maps a stream MIME type to a file extension.
func extensionForMime(mimeType string) string {
	switch baseMimeType(mimeType) {
	case "audio/mp4", "video/mp4":
		return "m4a"
	case "audio/webm", "video/webm":
		return "webm"
	case "audio/mpeg":
		return "mp3"
	default:
		return "bin"
	}
}

// baseMimeType strips codec parameters from a MIME type string.
// "audio/mp4; codecs=\"mp4a.40.2\"" becomes "audio/mp4".
func baseMimeType(mimeType string) string {
	if idx := strings.IndexByte(mimeType, ';'); idx >= 0 {
		return strings.TrimSpace(mimeType[:idx])
	}
	return strings.TrimSpace(mimeType)
}
