package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"tubescribe/internal/domain/entity"
)

func testArticle() *entity.Article {
	return &entity.Article{
		ID:          42,
		OwnerID:     7,
		SourceTitle: "My Talk",
		SourceLink:  "https://youtu.be/abc123",
		Content:     "  Intro\nBody text that goes on for a while.",
		CreatedAt:   time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// newTestDiscordNotifier returns a notifier pointed at url with fast retries
// and a rate limiter that never blocks.
func newTestDiscordNotifier(url string) *DiscordNotifier {
	n := NewDiscordNotifier(DiscordConfig{
		WebhookURL: url,
		Timeout:    5 * time.Second,
	})
	n.rateLimiter = NewRateLimiter(1000, 1000)
	n.retryBaseDelay = time.Millisecond
	return n
}

func TestDiscordNotifier_Success(t *testing.T) {
	var got DiscordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Content-Type = %q", r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := newTestDiscordNotifier(srv.URL)
	if err := n.NotifyArticle(context.Background(), testArticle()); err != nil {
		t.Fatalf("NotifyArticle: %v", err)
	}

	if len(got.Embeds) != 1 {
		t.Fatalf("embeds = %d, want 1", len(got.Embeds))
	}
	embed := got.Embeds[0]
	if embed.Title != "My Talk" {
		t.Errorf("Title = %q", embed.Title)
	}
	if embed.URL != "https://youtu.be/abc123" {
		t.Errorf("URL = %q", embed.URL)
	}
	if !strings.Contains(embed.Description, "Body text") {
		t.Errorf("Description = %q, want content preview", embed.Description)
	}
	if embed.Footer.Text != "tubescribe" {
		t.Errorf("Footer = %q", embed.Footer.Text)
	}
	if embed.Timestamp != "2025-03-01T12:00:00Z" {
		t.Errorf("Timestamp = %q", embed.Timestamp)
	}
}

func TestDiscordNotifier_TruncatesLongContent(t *testing.T) {
	var got DiscordWebhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	article := testArticle()
	article.Content = strings.Repeat("x", maxDescriptionLength+500)

	n := newTestDiscordNotifier(srv.URL)
	if err := n.NotifyArticle(context.Background(), article); err != nil {
		t.Fatalf("NotifyArticle: %v", err)
	}

	desc := got.Embeds[0].Description
	if len(desc) != maxDescriptionLength {
		t.Errorf("description length = %d, want %d", len(desc), maxDescriptionLength)
	}
	if !strings.HasSuffix(desc, truncationSuffix) {
		t.Errorf("truncated description should end with %q", truncationSuffix)
	}
}

func TestDiscordNotifier_RetriesServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := newTestDiscordNotifier(srv.URL)
	if err := n.NotifyArticle(context.Background(), testArticle()); err != nil {
		t.Fatalf("NotifyArticle after retry: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestDiscordNotifier_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	n := newTestDiscordNotifier(srv.URL)
	err := n.NotifyArticle(context.Background(), testArticle())
	if err == nil {
		t.Fatal("expected error on 400")
	}
	var clientErr *ClientError
	if !errors.As(err, &clientErr) {
		t.Errorf("error = %v, want *ClientError", err)
	}
	if calls.Load() != 1 {
		t.Errorf("calls = %d, want 1 (no retry on 4xx)", calls.Load())
	}
}

func TestDiscordNotifier_RateLimitBackoff(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"slow down","retry_after":0.01}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := newTestDiscordNotifier(srv.URL)
	if err := n.NotifyArticle(context.Background(), testArticle()); err != nil {
		t.Fatalf("NotifyArticle after rate limit: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestDiscordNotifier_AllRetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	n := newTestDiscordNotifier(srv.URL)
	if err := n.NotifyArticle(context.Background(), testArticle()); err == nil {
		t.Fatal("expected error when all attempts fail")
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestExtractRetryAfter(t *testing.T) {
	t.Run("from json body", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		d := extractRetryAfter(resp, []byte(`{"retry_after":2.5}`))
		if d != 2500*time.Millisecond {
			t.Errorf("retry_after = %v, want 2.5s", d)
		}
	})

	t.Run("from header", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{"Retry-After": []string{"3"}}}
		d := extractRetryAfter(resp, nil)
		if d != 3*time.Second {
			t.Errorf("retry_after = %v, want 3s", d)
		}
	})

	t.Run("default", func(t *testing.T) {
		resp := &http.Response{Header: http.Header{}}
		d := extractRetryAfter(resp, []byte("not json"))
		if d != 5*time.Second {
			t.Errorf("retry_after = %v, want 5s default", d)
		}
	})
}
