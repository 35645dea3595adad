package list

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/jamwaves/internal/keymap"
)

func numbers(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func newList() Model[int] {
	m := New("Numbers", "Nothing here", func(v, _, _ int) string {
		return fmt.Sprintf("item %d", v)
	})
	m.SetSize(30, 10)
	m.SetFocused(true)
	return m
}

func TestSelected(t *testing.T) {
	m := newList()

	_, ok := m.Selected()
	assert.False(t, ok)

	m.SetItems(numbers(20), true)
	m.HandleAction(keymap.ActionMoveDown)
	m.HandleAction(keymap.ActionMoveDown)

	v, ok := m.Selected()
	assert.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, m.SelectedIndex())
}

func TestSetItems_ResetOrClamp(t *testing.T) {
	m := newList()
	m.SetItems(numbers(20), true)
	m.HandleAction(keymap.ActionJumpEnd)

	m.SetItems(numbers(5), false)
	assert.Equal(t, 4, m.SelectedIndex())

	m.SetItems(numbers(5), true)
	assert.Equal(t, 0, m.SelectedIndex())
}

func TestHandleAction_IgnoresOtherActions(t *testing.T) {
	m := newList()
	m.SetItems(numbers(3), true)
	assert.False(t, m.HandleAction(keymap.ActionPlayPause))
}

func TestView(t *testing.T) {
	m := newList()
	m.SetItems(numbers(20), true)

	out := m.View()
	assert.Equal(t, 10, lipgloss.Height(out))
	assert.Equal(t, 30, lipgloss.Width(out))

	plain := ansi.Strip(out)
	assert.Contains(t, plain, "Numbers")
	assert.Contains(t, plain, "item 0")
	assert.Contains(t, plain, "item 5")
	assert.NotContains(t, plain, "item 6")
}

func TestView_Empty(t *testing.T) {
	m := newList()
	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Nothing here")
	assert.Equal(t, 10, lipgloss.Height(out))
}

func TestView_ZeroSize(t *testing.T) {
	m := New("x", "", func(v, _, _ int) string { return strings.Repeat("a", v) })
	assert.Empty(t, m.View())
}
