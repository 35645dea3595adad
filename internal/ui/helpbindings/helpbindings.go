// Package helpbindings provides a scrollable popup listing the key bindings.
package helpbindings

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jamwaves/internal/keymap"
	"github.com/llehouerou/jamwaves/internal/ui"
	"github.com/llehouerou/jamwaves/internal/ui/render"
	"github.com/llehouerou/jamwaves/internal/ui/styles"
)

// categoryLabels maps context names to display labels.
var categoryLabels = map[string]string{
	"global":   "Global",
	"playback": "Playback",
	"list":     "Lists",
	"home":     "Home",
}

// Model holds the state for the help popup.
type Model struct {
	ui.Panel
	lines        []string
	scrollOffset int
}

// New creates a help popup listing every binding context.
func New() Model {
	return Model{lines: buildLines(keymap.Contexts())}
}

// Reset scrolls back to the top.
func (m *Model) Reset() {
	m.scrollOffset = 0
}

// HandleAction scrolls the popup. It reports true when the popup should
// close.
func (m *Model) HandleAction(a keymap.Action) bool {
	switch a { //nolint:exhaustive // popup only scrolls or closes
	case keymap.ActionHelp, keymap.ActionBack, keymap.ActionQuit:
		return true
	case keymap.ActionMoveDown:
		if m.scrollOffset < m.maxScroll() {
			m.scrollOffset++
		}
	case keymap.ActionMoveUp:
		if m.scrollOffset > 0 {
			m.scrollOffset--
		}
	}
	return false
}

// View renders the popup box.
func (m Model) View() string {
	if m.Hidden() {
		return ""
	}
	s := styles.T().S()

	visible := m.visibleHeight()
	start := min(m.scrollOffset, len(m.lines))
	end := min(start+visible, len(m.lines))

	width := 0
	for _, l := range m.lines {
		width = max(width, lipgloss.Width(l))
	}
	body := make([]string, 0, end-start)
	for _, l := range m.lines[start:end] {
		body = append(body, render.Pad(l, width))
	}

	footer := "?/esc close"
	if len(m.lines) > visible {
		footer = "j/k scroll · " + footer
	}

	content := s.Heading.Render("Help") + "\n\n" +
		strings.Join(body, "\n") + "\n\n" +
		s.Faint.Render(footer)

	return styles.PanelStyle(true).Padding(0, 1).Render(content)
}

func buildLines(contexts []string) []string {
	s := styles.T().S()

	keyWidth := 0
	for _, b := range keymap.Bindings {
		keyWidth = max(keyWidth, len(keyLabel(b)))
	}

	var lines []string
	for _, ctx := range contexts {
		bindings := keymap.ByContext(ctx)
		if len(bindings) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		label := categoryLabels[ctx]
		if label == "" {
			label = ctx
		}
		lines = append(lines, s.Accent.Render(label), s.Faint.Render(render.Separator(keyWidth+18)))
		for _, b := range bindings {
			lines = append(lines, s.KeyHint.Render(render.Pad(keyLabel(b), keyWidth))+"  "+s.Text.Render(b.Description))
		}
	}
	return lines
}

func keyLabel(b keymap.Binding) string {
	keys := make([]string, len(b.Keys))
	for i, k := range b.Keys {
		keys[i] = keymap.KeyName(k)
	}
	return strings.Join(keys, ", ")
}

func (m Model) visibleHeight() int {
	// title, blank, blank, footer and the border
	return max(m.Height()-8, 5)
}

func (m Model) maxScroll() int {
	return max(len(m.lines)-m.visibleHeight(), 0)
}
