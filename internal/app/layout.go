package app

import (
	"github.com/llehouerou/jamwaves/internal/ui"
	"github.com/llehouerou/jamwaves/internal/ui/headerbar"
	"github.com/llehouerou/jamwaves/internal/ui/layout"
	"github.com/llehouerou/jamwaves/internal/ui/playerbar"
)

const searchInputHeight = 1

// resize distributes the terminal among the header, the body, the player
// bar and the status line.
func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	body := m.bodyHeight()
	narrow := layout.IsNarrowMode(width)
	m.trending.SetSize(layout.MainWidth(width, narrow), layout.MainHeight(body, narrow))
	sideW, sideH := layout.SideWidth(width, narrow), layout.SideHeight(body, narrow)
	m.playlists.SetSize(sideW, sideH)
	m.playlistTracks.SetSize(sideW, sideH)

	m.search.Width = max(width-len(m.search.Prompt)-4, 10)
	m.results.SetSize(width, max(body-searchInputHeight, 0))
	m.favs.SetSize(width, body)

	m.help.SetSize(width, height)
}

func (m Model) bodyHeight() int {
	return layout.ContentHeight(m.height, layout.ContentOpts{
		HeaderHeight:    headerbar.Height,
		PlayerBarHeight: playerbar.Height(m.barMode()),
		StatusHeight:    ui.StatusHeight,
	})
}
