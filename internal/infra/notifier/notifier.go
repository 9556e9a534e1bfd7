// Package notifier provides webhook notifications for generated articles.
// It defines the Notifier interface which allows different notification
// mechanisms (Discord, Slack, etc.) to be used interchangeably through
// dependency injection.
//
// The package includes implementations for Discord and Slack webhooks and a
// no-op notifier for when notifications are disabled.
package notifier

import (
	"context"

	"tubescribe/internal/domain/entity"
)

// Notifier is an interface for announcing newly generated articles.
// Implementations should handle rate limiting, retries, and error logging
// internally.
type Notifier interface {
	// NotifyArticle sends a notification about a freshly generated article.
	// The notification includes the source video title, the video link, and a
	// preview of the generated content.
	//
	// Implementations should:
	//   - Generate a unique request ID for tracing
	//   - Apply rate limiting to prevent webhook API abuse
	//   - Retry transient failures with backoff
	//   - Respect context cancellation
	NotifyArticle(ctx context.Context, article *entity.Article) error
}
