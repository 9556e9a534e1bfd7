package mediafetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"tubescribe/internal/resilience/retry"
)

const maxWatchPageSize = 10 * 1024 * 1024 // 10MB

// youtubeTitleSuffix is appended by YouTube to the document title.
const youtubeTitleSuffix = " - YouTube"

// TitleScraper extracts a video title from its watch page HTML.
// It is used as a fallback when the video metadata API returns no title.
type TitleScraper struct {
	client *http.Client
}

// NewTitleScraper creates a new TitleScraper with the given HTTP client.
func NewTitleScraper(client *http.Client) *TitleScraper {
	return &TitleScraper{client: client}
}

// Title fetches the watch page and extracts the video title.
// It prefers the og:title meta tag and falls back to the document title.
func (s *TitleScraper) Title(ctx context.Context, pageURL string) (string, error) {
	doc, err := s.fetchHTML(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch watch page: %w", err)
	}

	if content, exists := doc.Find(`meta[property="og:title"]`).Attr("content"); exists {
		if title := strings.TrimSpace(content); title != "" {
			return title, nil
		}
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	title = strings.TrimSuffix(title, youtubeTitleSuffix)
	if title == "" {
		return "", fmt.Errorf("no title found in watch page")
	}

	return title, nil
}

// fetchHTML fetches and parses HTML from the given URL.
func (s *TitleScraper) fetchHTML(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "TubeScribeBot/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &retry.HTTPError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("unexpected status: %s", resp.Status),
		}
	}

	// Limit body size to prevent memory exhaustion
	limitedReader := io.LimitReader(resp.Body, maxWatchPageSize)

	doc, err := goquery.NewDocumentFromReader(limitedReader)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}

	return doc, nil
}
