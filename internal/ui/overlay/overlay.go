// Package overlay draws a popup box over a rendered view.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Center places box in the middle of base, which is width x height cells.
// Lines of base under the box keep their styled content on both sides.
func Center(base, box string, width, height int) string {
	boxW, boxH := lipgloss.Width(box), lipgloss.Height(box)
	col := max((width-boxW)/2, 0)
	row := max((height-boxH)/2, 0)
	return Place(base, box, col, row, width)
}

// Place overlays box on base with its top-left corner at (col, row).
// ANSI sequences in both are preserved.
func Place(base, box string, col, row, width int) string {
	baseLines := strings.Split(base, "\n")
	for i, line := range strings.Split(box, "\n") {
		y := row + i
		if y >= len(baseLines) {
			break
		}
		under := baseLines[y]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}
		end := col + ansi.StringWidth(line)
		out := ansi.Cut(under, 0, col) + line
		if end < width {
			out += ansi.Cut(under, end, width)
		}
		baseLines[y] = out
	}
	return strings.Join(baseLines, "\n")
}
