// Package channel provides the HTTP handler for previewing a channel's
// recent uploads, so users can pick a video to turn into an article.
package channel

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"tubescribe/internal/handler/http/requestid"
	"tubescribe/internal/handler/http/respond"
	"tubescribe/internal/infra/channelfeed"
	"tubescribe/internal/observability/logging"
)

// PreviewFetcher retrieves a channel's feed preview.
type PreviewFetcher interface {
	Fetch(ctx context.Context, feedURL string) (*channelfeed.Preview, error)
}

// VideoDTO is one upload in the preview response.
type VideoDTO struct {
	Title       string    `json:"title" example:"Understanding the Scheduler"`
	Link        string    `json:"link" example:"https://www.youtube.com/watch?v=abc"`
	PublishedAt time.Time `json:"published_at" example:"2025-01-02T10:00:00Z"`
}

// PreviewDTO is the JSON structure of a channel preview.
type PreviewDTO struct {
	ChannelTitle string     `json:"channel_title" example:"Go Talks"`
	ChannelLink  string     `json:"channel_link" example:"https://www.youtube.com/channel/UC123"`
	Videos       []VideoDTO `json:"videos"`
}

// PreviewHandler serves a channel's recent uploads.
type PreviewHandler struct {
	Fetcher PreviewFetcher
	Logger  *slog.Logger
}

// ServeHTTP チャンネルプレビュー取得
// @Summary      チャンネルの最新動画一覧取得
// @Description  チャンネルIDを指定して、そのチャンネルの最新動画を取得します。記事にする動画を選ぶために使います。
// @Tags         channels
// @Security     BearerAuth
// @Produce      json
// @Param        channel_id query string true "チャンネルID"
// @Success      200 {object} PreviewDTO "チャンネルプレビュー"
// @Failure      400 {string} string "channel_id is required"
// @Failure      401 {string} string "Authentication required"
// @Failure      502 {string} string "Feed could not be fetched"
// @Router       /channels/preview [get]
func (h PreviewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)
	logger := logging.WithRequestID(ctx, h.Logger)

	channelID := strings.TrimSpace(r.URL.Query().Get("channel_id"))
	if channelID == "" {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "channel_id is required"})
		return
	}

	preview, err := h.Fetcher.Fetch(ctx, channelfeed.FeedURL(channelID))
	if err != nil {
		logger.Warn("Channel preview fetch failed",
			"channel_id", channelID,
			"error", err.Error(),
			"request_id", reqID)
		respond.JSON(w, http.StatusBadGateway, map[string]string{"error": "could not fetch channel feed"})
		return
	}

	videos := make([]VideoDTO, 0, len(preview.Videos))
	for _, v := range preview.Videos {
		videos = append(videos, VideoDTO{
			Title:       v.Title,
			Link:        v.Link,
			PublishedAt: v.PublishedAt,
		})
	}

	respond.JSON(w, http.StatusOK, PreviewDTO{
		ChannelTitle: preview.ChannelTitle,
		ChannelLink:  preview.ChannelLink,
		Videos:       videos,
	})
}
