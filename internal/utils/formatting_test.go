package utils

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Anna", "Anna"},
		{"Anna Schmidt", "Anna_Schmidt"},
		{"a/b\\c:d", "a_b_c_d"},
		{"tag*?\"<>|end", "tag______end"},
		{"..hidden..", "hidden"},
		{"__trimmed__", "trimmed"},
		{"+49123456789", "+49123456789"},
		{"", ""},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, SanitizeFilename(tt.in), "input %q", tt.in)
	}
}

func TestTruncateMiddle(t *testing.T) {
	require.Equal(t, "short", TruncateMiddle("short", 10))
	require.Equal(t, "abc...mnop", TruncateMiddle("abcdefghijklmnop", 10))
	require.Len(t, TruncateMiddle("abcdefghijklmnop", 10), 10)
	require.Equal(t, "ab", TruncateMiddle("ab", 1))
}

func TestTruncateMiddle_MultiByteNames(t *testing.T) {
	got := TruncateMiddle("Müller-Lüdenscheidt", 10)
	require.True(t, utf8.ValidString(got))
	require.Equal(t, "Mül...eidt", got)
	require.Equal(t, 10, utf8.RuneCountInString(got))

	require.Equal(t, "Müller", TruncateMiddle("Müller", 6))
}

func TestFormatTimestamp(t *testing.T) {
	require.Equal(t, "unknown", FormatTimestamp(time.Time{}))
	require.NotEqual(t, "unknown", FormatTimestamp(time.Now()))
}

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "1 byte", FormatBytes(1))
	require.Equal(t, "60 bytes", FormatBytes(60))
	require.Equal(t, "504 bytes", FormatBytes(504))
}
