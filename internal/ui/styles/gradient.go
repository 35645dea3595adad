package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// gray stands in for colors that are not hex (ANSI indexes).
var gray = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Logo renders text bold, blending from the primary to the favorite color.
func Logo(text string) string {
	t := T()
	return Gradient(text, t.Accent, t.Heart, true)
}

// Gradient colors each grapheme of text along an HCL blend between from
// and to.
func Gradient(text string, from, to lipgloss.Color, bold bool) string {
	clusters := graphemes(text)
	if len(clusters) == 0 {
		return ""
	}

	base := lipgloss.NewStyle().Bold(bold)
	if len(clusters) == 1 {
		return base.Foreground(from).Render(text)
	}

	start, end := toColorful(from), toColorful(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, c := range clusters {
		hex := start.BlendHcl(end, float64(i)/last).Clamped().Hex()
		b.WriteString(base.Foreground(lipgloss.Color(hex)).Render(c))
	}
	return b.String()
}

func graphemes(s string) []string {
	var out []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return gray
	}
	return col
}
