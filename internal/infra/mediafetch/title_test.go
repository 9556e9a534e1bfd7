package mediafetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTitleScraper_PrefersOGTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head>
			<meta property="og:title" content="My Great Video">
			<title>My Great Video - YouTube</title>
		</head><body></body></html>`))
	}))
	defer server.Close()

	s := NewTitleScraper(server.Client())

	title, err := s.Title(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Title err=%v", err)
	}
	if title != "My Great Video" {
		t.Errorf("title = %q, want My Great Video", title)
	}
}

func TestTitleScraper_FallsBackToDocumentTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>Plain Title - YouTube</title></head><body></body></html>`))
	}))
	defer server.Close()

	s := NewTitleScraper(server.Client())

	title, err := s.Title(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Title err=%v", err)
	}
	if title != "Plain Title" {
		t.Errorf("title = %q, want Plain Title", title)
	}
}

func TestTitleScraper_NoTitle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head></head><body>nothing here</body></html>`))
	}))
	defer server.Close()

	s := NewTitleScraper(server.Client())

	if _, err := s.Title(context.Background(), server.URL); err == nil {
		t.Error("expected error for page without title")
	}
}

func TestTitleScraper_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	s := NewTitleScraper(server.Client())

	if _, err := s.Title(context.Background(), server.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}
