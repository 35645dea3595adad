package ui

// Panel tracks the size and focus of a bordered TUI panel. List panels
// and the help popup embed it.
type Panel struct {
	width, height int
	focused       bool
}

func (p *Panel) SetFocused(focused bool) { p.focused = focused }
func (p Panel) IsFocused() bool          { return p.focused }

// SetSize sets the outer size, border included.
func (p *Panel) SetSize(width, height int) {
	p.width, p.height = width, height
}

func (p Panel) Width() int  { return p.width }
func (p Panel) Height() int { return p.height }

// Hidden reports whether the panel has not been sized yet.
func (p Panel) Hidden() bool {
	return p.width <= 0 || p.height <= 0
}

// InnerWidth is the width inside the border.
func (p Panel) InnerWidth() int {
	return max(p.width-BorderHeight, 0)
}

// ListHeight is the number of track or playlist rows that fit under the
// panel title.
func (p Panel) ListHeight() int {
	return max(p.height-PanelOverhead, 0)
}
