// Package list provides a generic scrollable panel list.
package list

import (
	"strings"

	"github.com/llehouerou/jamwaves/internal/keymap"
	"github.com/llehouerou/jamwaves/internal/ui"
	"github.com/llehouerou/jamwaves/internal/ui/cursor"
	"github.com/llehouerou/jamwaves/internal/ui/render"
	"github.com/llehouerou/jamwaves/internal/ui/styles"
)

// RowFunc renders item i within width columns. The list applies cursor
// highlighting on top.
type RowFunc[T any] func(item T, index, width int) string

// Model is a bordered list panel with a title line.
// The parent feeds it actions and asks for the selection.
type Model[T any] struct {
	ui.Panel
	title  string
	empty  string
	items  []T
	cursor cursor.Cursor
	row    RowFunc[T]
}

// New creates a list panel. empty is shown when there are no items.
func New[T any](title, empty string, row RowFunc[T]) Model[T] {
	return Model[T]{
		title:  title,
		empty:  empty,
		cursor: cursor.New(ui.ScrollMargin),
		row:    row,
	}
}

// SetTitle changes the panel title.
func (m *Model[T]) SetTitle(title string) {
	m.title = title
}

// Title returns the panel title.
func (m Model[T]) Title() string {
	return m.title
}

// SetItems replaces all items. The cursor returns to the top when reset
// is set, otherwise it is clamped.
func (m *Model[T]) SetItems(items []T, reset bool) {
	m.items = items
	if reset {
		m.cursor.Reset()
		return
	}
	m.cursor.ClampToBounds(len(items), m.ListHeight())
}

// Items returns the current items.
func (m Model[T]) Items() []T {
	return m.items
}

// Len returns the number of items.
func (m Model[T]) Len() int {
	return len(m.items)
}

// Selected returns the item under the cursor.
func (m Model[T]) Selected() (T, bool) {
	if len(m.items) == 0 || m.cursor.Pos() >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[m.cursor.Pos()], true
}

// SelectedIndex returns the cursor position.
func (m Model[T]) SelectedIndex() int {
	return m.cursor.Pos()
}

// HandleAction applies a navigation action and reports whether it was one.
func (m *Model[T]) HandleAction(a keymap.Action) bool {
	return m.cursor.HandleAction(a, len(m.items), m.ListHeight())
}

// View renders the panel.
func (m Model[T]) View() string {
	if m.Hidden() {
		return ""
	}
	innerWidth := m.InnerWidth()
	listHeight := m.ListHeight()
	s := styles.T().S()

	header := render.Fit(m.title, innerWidth)
	lines := []string{styles.PanelTitle(header, m.IsFocused()), s.Faint.Render(render.Separator(innerWidth))}

	if len(m.items) == 0 {
		lines = append(lines, s.Dim.Render(render.Fit(m.empty, innerWidth)))
		for len(lines) < listHeight+ui.HeaderHeight {
			lines = append(lines, render.EmptyLine(innerWidth))
		}
	} else {
		start, end := m.cursor.VisibleRange(len(m.items), listHeight)
		for i := start; i < end; i++ {
			line := render.Fit(m.row(m.items[i], i, innerWidth), innerWidth)
			if i == m.cursor.Pos() && m.IsFocused() {
				line = s.Selected.Render(line)
			}
			lines = append(lines, line)
		}
		for i := end - start; i < listHeight; i++ {
			lines = append(lines, render.EmptyLine(innerWidth))
		}
	}

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(strings.Join(lines, "\n"))
}
