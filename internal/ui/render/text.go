// Package render provides text rendering utilities for TUI components.
package render

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Sanitize makes catalog metadata safe to print: control characters and
// invalid UTF-8 are dropped and non-breaking spaces become plain spaces.
// Tabs are kept.
func Sanitize(s string) string {
	if utf8.ValidString(s) && strings.IndexFunc(s, unsafeRune) < 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		switch {
		case r == utf8.RuneError && size == 1:
		case r == '\u00a0':
			b.WriteByte(' ')
		case unsafeRune(r):
		default:
			b.WriteString(s[:size])
		}
		s = s[size:]
	}
	return b.String()
}

func unsafeRune(r rune) bool {
	return r == '\u00a0' || (r != '\t' && unicode.IsControl(r))
}

// TrackLine joins a track name and its artist as "Name · Artist".
func TrackLine(name, artist string) string {
	name, artist = Sanitize(name), Sanitize(artist)
	if artist == "" {
		return name
	}
	return name + " · " + artist
}

// TruncateEllipsis shortens s to maxWidth cells with a trailing "…".
// Styled input is supported: escape sequences do not count towards the width.
func TruncateEllipsis(s string, maxWidth int) string {
	return ansi.Truncate(s, maxWidth, ellipsis)
}

// Pad fills s with spaces up to width cells.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Fit sanitizes s, then truncates or pads it to exactly width cells.
func Fit(s string, width int) string {
	return Pad(TruncateEllipsis(Sanitize(s), width), width)
}

// Row places left and right at the edges of width, at least one space apart.
func Row(left, right string, width int) string {
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

// Columns is Row with left truncated so right always stays visible, as in
// "Night Drive · Lumen ... 3:20".
func Columns(left, right string, width int) string {
	if right == "" {
		return TruncateEllipsis(left, width)
	}
	room := max(width-lipgloss.Width(right)-1, 1)
	return Row(TruncateEllipsis(left, room), right, width)
}

// Separator draws a horizontal rule.
func Separator(width int) string {
	return strings.Repeat("─", max(width, 0))
}

// EmptyLine is width spaces.
func EmptyLine(width int) string {
	return strings.Repeat(" ", max(width, 0))
}

// Clock formats a duration as m:ss, or h:mm:ss past the hour.
// Negative durations render as 0:00.
func Clock(d time.Duration) string {
	d = max(d, 0).Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	sec := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%d:%02d", m, sec)
}
