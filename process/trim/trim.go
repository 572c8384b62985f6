// Package trim strips trailing whitespace from clipboard text.
package trim

import (
	"strings"
	"unicode"
)

// Lines trims trailing whitespace of every line in text. A final newline is
// kept if text had one. ok reports whether anything was removed.
func Lines(text string) (trimmed string, ok bool) {
	if text == "" {
		return "", false
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}

	trimmed = strings.Join(lines, "\n")
	if len(trimmed) == len(text) {
		return text, false
	}
	return trimmed, true
}
