package common

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

// TruncateString is a convenient wrapper around truncate.TruncateString.
func TruncateString(s string, max int) string { //nolint:revive
	if max < 0 {
		max = 0 //nolint:revive
	}
	return truncate.StringWithTail(s, uint(max), "…") //nolint:gosec
}

// Pad truncates or right pads s to exactly w cells.
func Pad(s string, w int) string {
	s = TruncateString(s, w)
	if n := lipgloss.Width(s); n < w {
		s += strings.Repeat(" ", w-n)
	}
	return s
}

// FormatDate formats t as a calendar date.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}

// FormatCount formats n with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatSince describes how long ago t was.
func FormatSince(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
