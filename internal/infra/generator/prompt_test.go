package generator

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildUserPrompt(t *testing.T) {
	transcript := "hello everyone, welcome back to the channel"
	prompt := buildUserPrompt(transcript)

	if !strings.Contains(prompt, transcript) {
		t.Error("prompt should embed the transcript")
	}
	if !strings.Contains(prompt, "blog article") {
		t.Error("prompt should ask for a blog article")
	}
	if !strings.HasSuffix(prompt, "Article:") {
		t.Errorf("prompt should end with the article marker, got %q", prompt[len(prompt)-20:])
	}
}

func TestNormalizeHeadings(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single heading",
			input: "# Introduction\nbody text",
			want:  "  Introduction\nbody text",
		},
		{
			name:  "nested headings",
			input: "## Section\ntext\n### Subsection\nmore",
			want:  "  Section\ntext\n  Subsection\nmore",
		},
		{
			name:  "hash mid-line untouched",
			input: "issue #42 is fixed",
			want:  "issue #42 is fixed",
		},
		{
			name:  "no headings",
			input: "plain paragraph",
			want:  "plain paragraph",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeHeadings(tt.input); got != tt.want {
				t.Errorf("normalizeHeadings(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateTranscript(t *testing.T) {
	short := "short transcript"
	got, truncated := truncateTranscript(short, 1000)
	if truncated || got != short {
		t.Errorf("short transcript should pass through unchanged, got %q (truncated=%v)", got, truncated)
	}

	long := strings.Repeat("a", 2000)
	got, truncated = truncateTranscript(long, 1000)
	if !truncated {
		t.Error("long transcript should be truncated")
	}
	if !strings.HasPrefix(got, long[:1000]) {
		t.Error("truncated transcript should keep the leading content")
	}
	if !strings.Contains(got, "transcript truncated") {
		t.Error("truncated transcript should carry the truncation marker")
	}
}

func TestTruncateTranscript_RuneBoundary(t *testing.T) {
	// "こ" is 3 bytes; a limit of 4 lands mid-rune on the second character.
	long := strings.Repeat("こ", 10)
	got, truncated := truncateTranscript(long, 4)
	if !truncated {
		t.Fatal("expected truncation")
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated transcript must stay valid UTF-8, got %q", got)
	}
	if !strings.HasPrefix(got, "こ") {
		t.Errorf("expected cut at the previous rune boundary, got %q", got)
	}
}
