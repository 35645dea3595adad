// Package cursor tracks the selected row of a scrolling list panel.
package cursor

import "github.com/llehouerou/jamwaves/internal/keymap"

// Cursor is the selected row plus the first row shown. List length and
// viewport height are arguments rather than state, as both change with
// every catalog page and terminal resize.
type Cursor struct {
	pos, offset int
	margin      int // rows kept visible around the selection
}

func New(margin int) Cursor {
	return Cursor{margin: margin}
}

func (c Cursor) Pos() int    { return c.pos }
func (c Cursor) Offset() int { return c.offset }

// Move shifts the selection by delta rows, stopping at either end.
func (c *Cursor) Move(delta, n, height int) {
	c.place(c.pos+delta, n, height)
}

// Jump selects row pos.
func (c *Cursor) Jump(pos, n, height int) {
	c.place(pos, n, height)
}

// Reset selects the first row.
func (c *Cursor) Reset() {
	c.pos, c.offset = 0, 0
}

// ClampToBounds re-places the selection after the list changed length.
func (c *Cursor) ClampToBounds(n, height int) {
	if n == 0 {
		c.Reset()
		return
	}
	c.place(c.pos, n, height)
}

// place selects pos clamped to the list and scrolls so the selection stays
// margin rows away from both viewport edges. An empty list is left alone.
func (c *Cursor) place(pos, n, height int) {
	if n == 0 {
		return
	}
	c.pos = min(max(pos, 0), n-1)
	if height <= 0 {
		return
	}
	m := min(c.margin, (height-1)/2)
	lowest := c.pos - height + m + 1
	highest := c.pos - m
	c.offset = min(max(c.offset, lowest), highest)
	c.offset = min(max(c.offset, 0), max(n-height, 0))
}

// VisibleRange returns the rows on screen as [start, end).
func (c Cursor) VisibleRange(n, height int) (start, end int) {
	if n == 0 || height <= 0 {
		return 0, 0
	}
	return c.offset, min(c.offset+height, n)
}

// HandleAction applies a list navigation action and reports whether it
// was one. Page moves go half a viewport.
func (c *Cursor) HandleAction(a keymap.Action, n, height int) bool {
	switch a { //nolint:exhaustive // only list movement
	case keymap.ActionJumpStart:
		c.Reset()
		return true
	case keymap.ActionJumpEnd:
		c.Jump(n-1, n, height)
		return true
	}
	delta, ok := stepFor(a, max(height/2, 1))
	if ok {
		c.Move(delta, n, height)
	}
	return ok
}

func stepFor(a keymap.Action, page int) (int, bool) {
	switch a { //nolint:exhaustive // only relative moves
	case keymap.ActionMoveDown:
		return 1, true
	case keymap.ActionMoveUp:
		return -1, true
	case keymap.ActionPageDown:
		return page, true
	case keymap.ActionPageUp:
		return -page, true
	}
	return 0, false
}
