package generator

import (
	"fmt"
	"regexp"
	"unicode/utf8"
)

// systemPrompt is the system instruction shared by all AI providers.
const systemPrompt = "You are a helpful assistant that writes blog articles based on provided transcripts."

// headingMarker matches Markdown heading markers at the start of a line.
var headingMarker = regexp.MustCompile(`(?m)^#+\s+`)

// buildUserPrompt constructs the user message sent to the AI API. It embeds
// the transcript and instructs the model to produce a proper blog article
// rather than a transcript dump.
func buildUserPrompt(transcript string) string {
	return fmt.Sprintf(
		"Based on the following transcript from a YouTube video, write a blog article. "+
			"Write it in a way that is well structured for a blog post. "+
			"It should not make it look like a YouTube video transcript, but a proper blog article:\n\n%s\n\nArticle:",
		transcript)
}

// normalizeHeadings replaces Markdown heading markers in generated content
// with a two-space indent so the stored article renders as plain prose.
func normalizeHeadings(content string) string {
	return headingMarker.ReplaceAllString(content, "  ")
}

// truncateTranscript caps the transcript at limit bytes, appending an
// ellipsis marker when content is cut. The cut backs up to the nearest rune
// boundary so a multi-byte character at the limit never turns into invalid
// UTF-8 in the prompt.
func truncateTranscript(transcript string, limit int) (string, bool) {
	if len(transcript) <= limit {
		return transcript, false
	}

	cut := limit
	for cut > 0 && !utf8.RuneStart(transcript[cut]) {
		cut--
	}
	return transcript[:cut] + "...\n(transcript truncated due to length)", true
}
