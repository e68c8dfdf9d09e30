package utils

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// SanitizeFilename strips characters that are illegal or awkward in
// filenames, collapsing them to underscores. Leading/trailing dots and
// spaces are trimmed so the result is safe on every mainstream filesystem.
func SanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case unicode.IsControl(r):
			b.WriteRune('_')
		case unicode.IsSpace(r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "._")
}

// TruncateMiddle shortens long values for list display, keeping both ends.
// It operates on runes so multi-byte names are never cut mid-character.
func TruncateMiddle(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max || max < 5 {
		return s
	}
	head := (max - 3) / 2
	tail := max - 3 - head
	return string(runes[:head]) + "..." + string(runes[len(runes)-tail:])
}

// FormatTimestamp renders a store timestamp for the detail pane.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// FormatBytes renders a byte count with its unit, e.g. "60 bytes".
func FormatBytes(n int) string {
	if n == 1 {
		return "1 byte"
	}
	return fmt.Sprintf("%d bytes", n)
}
