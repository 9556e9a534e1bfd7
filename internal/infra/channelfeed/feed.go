// Package channelfeed fetches a channel's public video feed.
// YouTube publishes a per-channel Atom feed that lists the most recent
// uploads; parsing it is far cheaper than calling the Data API and needs no
// API key.
package channelfeed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sony/gobreaker"

	"tubescribe/internal/resilience/circuitbreaker"
	"tubescribe/internal/resilience/retry"
)

// VideoEntry is one upload in a channel feed.
type VideoEntry struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// Preview is the parsed channel feed: the channel itself plus its most
// recent uploads.
type Preview struct {
	ChannelTitle string
	ChannelLink  string
	Videos       []VideoEntry
}

// Fetcher retrieves channel feeds with circuit breaker and retry logic.
type Fetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
}

// NewFetcher creates a new Fetcher with the given HTTP client.
func NewFetcher(client *http.Client) *Fetcher {
	return &Fetcher{
		client:         client,
		circuitBreaker: circuitbreaker.New(circuitbreaker.FeedFetchConfig()),
		retryConfig:    retry.FeedFetchConfig(),
	}
}

// FeedURL builds the Atom feed URL for a channel ID.
func FeedURL(channelID string) string {
	return "https://www.youtube.com/feeds/videos.xml?channel_id=" + url.QueryEscape(channelID)
}

// Fetch retrieves and parses the channel feed at the given URL.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) (*Preview, error) {
	var preview *Preview

	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		cbResult, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, feedURL)
		})

		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("channel feed circuit breaker open, request rejected",
					slog.String("service", "channel-feed"),
					slog.String("url", feedURL),
					slog.String("state", f.circuitBreaker.State().String()))
				return err
			}
			return err
		}

		preview = cbResult.(*Preview)
		return nil
	})

	if retryErr != nil {
		return nil, fmt.Errorf("Fetch: %w", retryErr)
	}

	return preview, nil
}

// doFetch performs the actual feed fetch without retry or circuit breaker.
func (f *Fetcher) doFetch(ctx context.Context, feedURL string) (*Preview, error) {
	fp := gofeed.NewParser()
	fp.UserAgent = "TubeScribeBot/1.0"
	fp.Client = f.client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	videos := make([]VideoEntry, 0, len(feed.Items))
	for _, it := range feed.Items {
		pubAt := time.Now()
		if it.PublishedParsed != nil {
			pubAt = *it.PublishedParsed
		}

		videos = append(videos, VideoEntry{
			Title:       it.Title,
			Link:        it.Link,
			PublishedAt: pubAt,
		})
	}

	return &Preview{
		ChannelTitle: feed.Title,
		ChannelLink:  feed.Link,
		Videos:       videos,
	}, nil
}
