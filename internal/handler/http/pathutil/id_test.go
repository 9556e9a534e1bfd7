package pathutil

import (
	"errors"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		prefix  string
		want    int64
		wantErr bool
	}{
		{"valid", "/blog-details/123", "/blog-details/", 123, false},
		{"large id", "/blog-details/9223372036854775807", "/blog-details/", 9223372036854775807, false},
		{"zero", "/blog-details/0", "/blog-details/", 0, true},
		{"negative", "/blog-details/-5", "/blog-details/", 0, true},
		{"not a number", "/blog-details/abc", "/blog-details/", 0, true},
		{"empty", "/blog-details/", "/blog-details/", 0, true},
		{"trailing segment", "/blog-details/12/extra", "/blog-details/", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractID(tt.path, tt.prefix)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidID) {
					t.Errorf("err = %v, want ErrInvalidID", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if got != tt.want {
				t.Errorf("id = %d, want %d", got, tt.want)
			}
		})
	}
}
