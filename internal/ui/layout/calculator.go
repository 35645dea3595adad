// Package layout provides pure functions for UI dimension calculations.
package layout

// NarrowThreshold is the terminal width below which the home view stacks
// the side panel under the trending list instead of beside it.
const NarrowThreshold = 80

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	HeaderHeight    int
	PlayerBarHeight int
	StatusHeight    int
}

// ContentHeight calculates the available height for the main content area.
// This is the terminal height minus header, player bar and status line,
// never negative.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.HeaderHeight
	height -= opts.PlayerBarHeight
	height -= opts.StatusHeight
	return max(height, 0)
}

// IsNarrowMode returns true if the terminal width is below the narrow threshold.
func IsNarrowMode(width int) bool {
	return width < NarrowThreshold
}

// MainWidth is the width of the trending panel: 3/5 of the window side by
// side, the full width when stacked.
func MainWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	return windowWidth * 3 / 5
}

// SideWidth is the width of the playlists panel.
func SideWidth(windowWidth int, narrowMode bool) int {
	if narrowMode {
		return windowWidth
	}
	return windowWidth - MainWidth(windowWidth, narrowMode)
}

// MainHeight is the height of the trending panel: 2/3 of the content when
// stacked, all of it otherwise.
func MainHeight(contentHeight int, narrowMode bool) int {
	if narrowMode {
		return contentHeight * 2 / 3
	}
	return contentHeight
}

// SideHeight is the height of the playlists panel.
func SideHeight(contentHeight int, narrowMode bool) int {
	if narrowMode {
		return contentHeight - MainHeight(contentHeight, narrowMode)
	}
	return contentHeight
}
