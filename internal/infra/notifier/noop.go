package notifier

import (
	"context"

	"tubescribe/internal/domain/entity"
)

// NoOpNotifier is a no-operation implementation of the Notifier interface.
// It is used when notifications are disabled to avoid nil checks in the code.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a new NoOpNotifier instance.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// NotifyArticle does nothing and returns nil immediately.
func (n *NoOpNotifier) NotifyArticle(ctx context.Context, article *entity.Article) error {
	return nil
}
