package provider

import (
	"strings"
	"unicode/utf8"
)

// sentence terminators considered when aligning a cut to a boundary.
var sentenceEnds = []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}

// TruncateAtSentence cuts text to at most maxChars characters, ending on the
// last complete sentence that fits. If no sentence boundary fits, it falls
// back to a hard cut at the last word break. The budget counts runes, not
// bytes, so multibyte text is never split inside a character. maxChars <= 0
// disables the cut.
func TruncateAtSentence(text string, maxChars int) string {
	text = strings.TrimSpace(text)
	if maxChars <= 0 || utf8.RuneCountInString(text) <= maxChars {
		return text
	}

	// Slicing the rune slice keeps the window valid UTF-8; the boundary
	// searches below only ever cut at ASCII terminators or spaces, which
	// cannot land inside a rune.
	window := string([]rune(text)[:maxChars])
	best := -1
	for _, end := range sentenceEnds {
		if i := strings.LastIndex(window, end); i > best {
			best = i
		}
	}
	if best >= 0 {
		return strings.TrimSpace(window[:best+1])
	}

	// A terminal period exactly at the cut still counts as a full sentence.
	if strings.HasSuffix(window, ".") {
		return window
	}

	if i := strings.LastIndex(window, " "); i > 0 {
		return strings.TrimSpace(window[:i])
	}
	return window
}
