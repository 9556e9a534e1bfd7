package notifier

import (
	"context"
	"testing"
)

func TestNoOpNotifier(t *testing.T) {
	n := NewNoOpNotifier()
	if err := n.NotifyArticle(context.Background(), testArticle()); err != nil {
		t.Errorf("NotifyArticle: %v", err)
	}
	if err := n.NotifyArticle(context.Background(), nil); err != nil {
		t.Errorf("NotifyArticle with nil article: %v", err)
	}
}
