package textutil

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRuns   = regexp.MustCompile(` +`)
	newlineRuns = regexp.MustCompile(`\n{3,}`)
)

// Preprocess normalizes raw input for logging and error reports: CRLF
// and CR become LF, runs of spaces collapse to one, three or more
// newlines collapse to a blank line, and the ends are trimmed.
func Preprocess(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = spaceRuns.ReplaceAllString(text, " ")
	text = newlineRuns.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Sentences splits text after a sentence terminator (. ! ?) followed by
// whitespace. Terminators stay attached to their sentence and blank
// pieces are dropped.
func Sentences(text string) []string {
	sentences := make([]string, 0, 4)
	flush := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}

	runes := []rune(text)
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
		default:
			continue
		}
		j := i + 1
		if j >= len(runes) || !unicode.IsSpace(runes[j]) {
			continue
		}
		flush(string(runes[start:j]))
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		flush(string(runes[start:]))
	}
	return sentences
}
