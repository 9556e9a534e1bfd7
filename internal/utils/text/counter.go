// Package text provides utilities for text processing and analysis.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// It correctly handles multi-byte characters by counting runes instead of bytes,
// which keeps length reporting consistent across transcripts in any language.
func CountRunes(text string) int {
	return len([]rune(text))
}
