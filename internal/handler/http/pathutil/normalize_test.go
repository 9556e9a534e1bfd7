package pathutil

import "testing"

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/blog-details/123", "/blog-details/:id"},
		{"/blog-details/456", "/blog-details/:id"},
		{"/blog-details/123/", "/blog-details/:id"},
		{"/blog-details/123?format=json", "/blog-details/:id"},
		{"/blog-list", "/blog-list"},
		{"/blog-list?page=2&limit=10", "/blog-list"},
		{"/generate-blog", "/generate-blog"},
		{"/health", "/health"},
		{"/metrics", "/metrics"},
		{"/blog-details/abc", "/blog-details/abc"},
		{"/", "/"},
	}

	for _, tt := range tests {
		if got := NormalizePath(tt.path); got != tt.want {
			t.Errorf("NormalizePath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNormalizePath_BoundedCardinality(t *testing.T) {
	unique := make(map[string]bool)
	for _, id := range []string{"1", "42", "999", "12345"} {
		unique[NormalizePath("/blog-details/"+id)] = true
	}
	if len(unique) != 1 {
		t.Errorf("expected all detail paths to normalize to one label, got %d", len(unique))
	}
}
