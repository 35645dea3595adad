// Package styles holds the color theme and shared lipgloss styles.
package styles

import (
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Palette names the colors by the role they play on screen.
type Palette struct {
	Accent     lipgloss.Color // logo start, now playing, focused titles
	Heart      lipgloss.Color // favorites and logo end
	Keys       lipgloss.Color // key names in hints and help
	Text       lipgloss.Color
	Dim        lipgloss.Color // artist names, inactive tabs
	Faint      lipgloss.Color // separators, durations, hints
	Selection  lipgloss.Color // cursor row background
	Frame      lipgloss.Color
	FrameFocus lipgloss.Color
	OK         lipgloss.Color
	Fail       lipgloss.Color
}

// Styles are the pre-built styles derived from a Palette.
type Styles struct {
	Text        lipgloss.Style
	Dim         lipgloss.Style
	Faint       lipgloss.Style
	Heading     lipgloss.Style // track title in the detail view and player bar
	Accent      lipgloss.Style
	Selected    lipgloss.Style
	StatusOK    lipgloss.Style
	StatusErr   lipgloss.Style
	HeaderLine  lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	Heart       lipgloss.Style
	KeyHint     lipgloss.Style
}

// Theme pairs a palette with its lazily built styles.
type Theme struct {
	Palette

	once   sync.Once
	styles *Styles
}

// Jamendo is the default dark palette, a violet accent with pink hearts.
var Jamendo = Palette{
	Accent:     lipgloss.Color("#a78bfa"),
	Heart:      lipgloss.Color("#ff6b9d"),
	Keys:       lipgloss.Color("#f1a208"),
	Text:       lipgloss.Color("#c0c0c0"),
	Dim:        lipgloss.Color("#808080"),
	Faint:      lipgloss.Color("#585858"),
	Selection:  lipgloss.Color("#303030"),
	Frame:      lipgloss.Color("#585858"),
	FrameFocus: lipgloss.Color("#a78bfa"),
	OK:         lipgloss.Color("#42b883"),
	Fail:       lipgloss.Color("#ff5555"),
}

var current = &Theme{Palette: Jamendo}

// T returns the active theme.
func T() *Theme {
	return current
}

// S returns the styles for this theme, building them on first use.
func (t *Theme) S() *Styles {
	t.once.Do(func() { t.styles = t.build() })
	return t.styles
}

func (t *Theme) build() *Styles {
	text := lipgloss.NewStyle().Foreground(t.Text)
	accent := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	return &Styles{
		Text:        text,
		Dim:         lipgloss.NewStyle().Foreground(t.Dim),
		Faint:       lipgloss.NewStyle().Foreground(t.Faint),
		Heading:     text.Bold(true),
		Accent:      accent,
		Selected:    text.Background(t.Selection),
		StatusOK:    lipgloss.NewStyle().Foreground(t.OK),
		StatusErr:   lipgloss.NewStyle().Foreground(t.Fail),
		HeaderLine:  lipgloss.NewStyle().Padding(0, 1),
		TabActive:   accent.Underline(true),
		TabInactive: lipgloss.NewStyle().Foreground(t.Dim),
		Heart:       lipgloss.NewStyle().Foreground(t.Heart),
		KeyHint:     lipgloss.NewStyle().Foreground(t.Keys),
	}
}

// Status renders a status line message, red for failures.
func (s *Styles) Status(msg string, failed bool) string {
	if failed {
		return s.StatusErr.Render(msg)
	}
	return s.StatusOK.Render(msg)
}
