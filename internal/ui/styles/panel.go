package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the bordered panel style for the current focus state.
func PanelStyle(focused bool) lipgloss.Style {
	t := T()
	border := t.Frame
	if focused {
		border = t.FrameFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// PanelTitle renders a panel heading, highlighted when focused.
func PanelTitle(title string, focused bool) string {
	s := T().S()
	if focused {
		return s.Accent.Render(title)
	}
	return s.Dim.Render(title)
}
