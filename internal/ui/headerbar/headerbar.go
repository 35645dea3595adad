// Package headerbar renders the top line: logo and view tabs.
package headerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jamwaves/internal/ui/styles"
)

// Height is the fixed height of the header bar (single line).
const Height = 1

// Tab is a view tab shown in the header.
type Tab struct {
	Key  string
	Name string
	Mode string
}

// Tabs are the top-level views, in display order.
var Tabs = []Tab{
	{"1", "Home", "home"},
	{"2", "Search", "search"},
	{"3", "Favorites", "favorites"},
}

// Render returns the header bar for the given width. currentMode is one
// of the Tabs modes; the track detail view highlights none. right is
// printed at the right edge (spinner, status) when it fits.
func Render(currentMode string, width int, right string) string {
	if width < 20 {
		return ""
	}
	s := styles.T().S()

	parts := make([]string, 0, len(Tabs))
	for _, t := range Tabs {
		key := s.KeyHint.Render(t.Key)
		name := s.TabInactive.Render(t.Name)
		if t.Mode == currentMode {
			name = s.TabActive.Render(t.Name)
		}
		parts = append(parts, key+" "+name)
	}
	left := styles.Logo("jamwaves") + "  " + strings.Join(parts, s.Faint.Render(" │ "))

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if right == "" || gap < 1 {
		return s.HeaderLine.Render(left)
	}
	return s.HeaderLine.Render(left + strings.Repeat(" ", gap) + right)
}
