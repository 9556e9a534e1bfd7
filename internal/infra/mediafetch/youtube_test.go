package mediafetch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	youtube "github.com/kkdai/youtube/v2"
)

func TestExtensionForMime(t *testing.T) {
	tests := []struct {
		mimeType string
		want     string
	}{
		{`audio/mp4; codecs="mp4a.40.2"`, "m4a"},
		{"audio/mp4", "m4a"},
		{`audio/webm; codecs="opus"`, "webm"},
		{"audio/mpeg", "mp3"},
		{"video/mp4", "m4a"},
		{"application/octet-stream", "bin"},
	}

	for _, tt := range tests {
		t.Run(tt.mimeType, func(t *testing.T) {
			if got := extensionForMime(tt.mimeType); got != tt.want {
				t.Errorf("extensionForMime(%q) = %q, want %q", tt.mimeType, got, tt.want)
			}
		})
	}
}

func TestBaseMimeType(t *testing.T) {
	if got := baseMimeType(`audio/mp4; codecs="mp4a.40.2"`); got != "audio/mp4" {
		t.Errorf("baseMimeType = %q, want audio/mp4", got)
	}
	if got := baseMimeType("audio/webm"); got != "audio/webm" {
		t.Errorf("baseMimeType = %q, want audio/webm", got)
	}
}

func TestSelectAudioFormat(t *testing.T) {
	t.Run("picks highest bitrate audio", func(t *testing.T) {
		formats := youtube.FormatList{
			{MimeType: `video/mp4; codecs="avc1"`, Bitrate: 2000000},
			{MimeType: `audio/webm; codecs="opus"`, Bitrate: 64000},
			{MimeType: `audio/mp4; codecs="mp4a.40.2"`, Bitrate: 128000},
		}

		got, err := selectAudioFormat(formats)
		if err != nil {
			t.Fatalf("selectAudioFormat err=%v", err)
		}
		if !strings.HasPrefix(got.MimeType, "audio/mp4") {
			t.Errorf("expected the 128k audio/mp4 format, got %q", got.MimeType)
		}
	})

	t.Run("falls back to first format without audio-only streams", func(t *testing.T) {
		formats := youtube.FormatList{
			{MimeType: `video/mp4; codecs="avc1, mp4a"`, Bitrate: 500000},
		}

		got, err := selectAudioFormat(formats)
		if err != nil {
			t.Fatalf("selectAudioFormat err=%v", err)
		}
		if got.MimeType != formats[0].MimeType {
			t.Errorf("expected fallback to first format, got %q", got.MimeType)
		}
	})

	t.Run("errors on empty format list", func(t *testing.T) {
		if _, err := selectAudioFormat(youtube.FormatList{}); err == nil {
			t.Error("expected error for empty format list")
		}
	})
}

func TestWriteStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "abc123.m4a")

	written, err := writeStream(path, strings.NewReader("fake audio bytes"))
	if err != nil {
		t.Fatalf("writeStream err=%v", err)
	}
	if written != int64(len("fake audio bytes")) {
		t.Errorf("written = %d, want %d", written, len("fake audio bytes"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile err=%v", err)
	}
	if string(data) != "fake audio bytes" {
		t.Errorf("file content = %q", data)
	}

	// Second write to the same path replaces the file.
	if _, err := writeStream(path, strings.NewReader("new")); err != nil {
		t.Fatalf("second writeStream err=%v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "new" {
		t.Errorf("file should be replaced, got %q", data)
	}
}
