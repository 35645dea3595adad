package playerbar

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/jamwaves/internal/ui/styles"
)

func barStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.T().Frame)
}

func titleStyle() lipgloss.Style        { return styles.T().S().Heading }
func artistStyle() lipgloss.Style       { return styles.T().S().Dim }
func metaStyle() lipgloss.Style         { return styles.T().S().Faint }
func mutedStyle() lipgloss.Style        { return styles.T().S().Dim }
func progressTimeStyle() lipgloss.Style { return styles.T().S().Dim }
func favoriteStyle() lipgloss.Style     { return styles.T().S().Heart }
func activeStyle() lipgloss.Style       { return styles.T().S().Accent }

func progressBarFilled() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Accent)
}

func progressBarEmpty() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.T().Faint)
}
