package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestGradient_KeepsText(t *testing.T) {
	out := Gradient("jamwaves", lipgloss.Color("#a78bfa"), lipgloss.Color("#ff6b9d"), false)
	assert.Equal(t, "jamwaves", ansi.Strip(out))
}

func TestGradient_Empty(t *testing.T) {
	assert.Empty(t, Gradient("", lipgloss.Color("#000000"), lipgloss.Color("#ffffff"), true))
}

func TestGradient_Graphemes(t *testing.T) {
	assert.Equal(t, []string{"a", "é", "👍🏽"}, graphemes("aé👍🏽"))
	out := Gradient("aé👍🏽", lipgloss.Color("#000000"), lipgloss.Color("#ffffff"), false)
	assert.Equal(t, "aé👍🏽", ansi.Strip(out))
}

func TestToColorful(t *testing.T) {
	assert.Equal(t, "#ff6b9d", toColorful(lipgloss.Color("#ff6b9d")).Hex())
	assert.Equal(t, gray, toColorful(lipgloss.Color("39")))
}

func TestLogo(t *testing.T) {
	assert.Equal(t, "jamwaves", ansi.Strip(Logo("jamwaves")))
}

func TestPanelStyle(t *testing.T) {
	focused := PanelStyle(true).Render("x")
	unfocused := PanelStyle(false).Render("x")
	assert.Equal(t, 3, lipgloss.Height(focused))
	assert.True(t, strings.Contains(ansi.Strip(unfocused), "x"))
}

func TestThemeStylesCached(t *testing.T) {
	assert.Same(t, T().S(), T().S())
}

func TestStatus(t *testing.T) {
	s := T().S()
	assert.Equal(t, "Added 'Night Drive' to favorites", ansi.Strip(s.Status("Added 'Night Drive' to favorites", false)))
	assert.Equal(t, s.StatusErr.Render("Failed to load audio '1'"), s.Status("Failed to load audio '1'", true))
	assert.Equal(t, s.StatusOK.Render("Shuffle on"), s.Status("Shuffle on", false))
}

func TestJamendoPalette(t *testing.T) {
	assert.Equal(t, Jamendo, T().Palette)
	assert.Equal(t, Jamendo.Accent, Jamendo.FrameFocus, "focused panels use the accent")
}
