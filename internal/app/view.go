package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/icons"
	"github.com/llehouerou/jamwaves/internal/keymap"
	"github.com/llehouerou/jamwaves/internal/ui"
	"github.com/llehouerou/jamwaves/internal/ui/headerbar"
	"github.com/llehouerou/jamwaves/internal/ui/layout"
	"github.com/llehouerou/jamwaves/internal/ui/list"
	"github.com/llehouerou/jamwaves/internal/ui/overlay"
	"github.com/llehouerou/jamwaves/internal/ui/playerbar"
	"github.com/llehouerou/jamwaves/internal/ui/render"
	"github.com/llehouerou/jamwaves/internal/ui/styles"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := headerbar.Render(m.tabMode(), m.width, m.loadingIndicator())
	bar := playerbar.Render(playerbar.NewState(m.state, m.currentIsFavorite(), m.barMode()), m.width)

	out := lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderBody(),
		bar,
		m.renderStatus(),
	)

	if m.showHelp {
		out = overlay.Center(out, m.help.View(), m.width, m.height)
	}
	return out
}

func (m Model) tabMode() string {
	if m.view == ViewTrack {
		return string(m.returnView)
	}
	return string(m.view)
}

func (m Model) loadingIndicator() string {
	if m.pending == 0 {
		return ""
	}
	return m.spinner.View() + " loading"
}

func (m Model) currentIsFavorite() bool {
	t := m.state.CurrentTrack
	return t != nil && m.favorites != nil && m.favorites.ContainsID(t.ID)
}

func (m Model) barMode() playerbar.DisplayMode {
	if m.height >= ui.MinExpandedHeight {
		return playerbar.ModeExpanded
	}
	return playerbar.ModeCompact
}

func (m Model) renderBody() string {
	switch m.view {
	case ViewHome:
		side := m.playlists.View()
		if m.openPlaylist != nil {
			side = m.playlistTracks.View()
		}
		if layout.IsNarrowMode(m.width) {
			return lipgloss.JoinVertical(lipgloss.Left, m.trending.View(), side)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, m.trending.View(), side)
	case ViewSearch:
		input := lipgloss.NewStyle().Padding(0, 1).Width(m.width).Render(m.search.View())
		return lipgloss.JoinVertical(lipgloss.Left, input, m.results.View())
	case ViewFavorites:
		return m.favs.View()
	case ViewTrack:
		return m.renderDetail()
	}
	return ""
}

func (m Model) renderDetail() string {
	width := max(m.width-ui.BorderHeight, 0)
	height := max(m.bodyHeight()-ui.BorderHeight, 0)
	s := styles.T().S()
	panel := styles.PanelStyle(true).Width(width).Height(height)

	t := m.detail
	if t == nil {
		return panel.Render(s.Dim.Render("No track selected"))
	}

	fav := "no"
	if m.favorites != nil && m.favorites.ContainsID(t.ID) {
		fav = icons.Favorite() + " yes"
	}
	position := ""
	if t.Position > 0 {
		position = fmt.Sprint(t.Position)
	}

	lines := []string{s.Heading.Render(icons.FormatTrack(render.Sanitize(t.Name))), ""}
	for _, f := range []struct{ label, value string }{
		{"Artist", t.ArtistName},
		{"Album", t.AlbumName},
		{"Duration", render.Clock(t.Duration)},
		{"Position", position},
		{"ID", t.ID},
		{"Audio", t.Audio},
		{"Artwork", t.Image},
		{"Favorite", fav},
	} {
		if f.value == "" {
			continue
		}
		value := render.TruncateEllipsis(render.Sanitize(f.value), max(width-12, 1))
		lines = append(lines, s.Dim.Render(render.Pad(f.label, 10))+s.Text.Render(value))
	}
	lines = append(lines, "", s.Faint.Render(m.keys.Hints(
		keymap.HintItem{Action: keymap.ActionSelect, Label: "play"},
		keymap.HintItem{Action: keymap.ActionToggleFavorite, Label: "favorite"},
		keymap.HintItem{Action: keymap.ActionBack, Label: "back"},
	)))
	return panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderStatus() string {
	s := styles.T().S()
	var text string
	switch {
	case m.status != "":
		text = s.Status(render.TruncateEllipsis(m.status, m.width-2), m.statusErr)
	default:
		hints := []keymap.HintItem{
			{Action: keymap.ActionHelp, Label: "help"},
			{Action: keymap.ActionPlayPause, Label: "play/pause"},
			{Action: keymap.ActionSelect, Label: "play"},
			{Action: keymap.ActionDetails, Label: "details"},
			{Action: keymap.ActionToggleFavorite, Label: "favorite"},
		}
		if m.view == ViewHome {
			hints = append(hints,
				keymap.HintItem{Action: keymap.ActionSwitchFocus, Label: "switch panel"},
				keymap.HintItem{Action: keymap.ActionLoadMore, Label: "more"})
		}
		text = s.Faint.Render(render.TruncateEllipsis(m.keys.Hints(hints...), m.width-2))
	}
	return lipgloss.NewStyle().Padding(0, 1).Render(text)
}

// trackRow renders "▶ ♥ Name · Artist ... 3:20".
func trackRow(info *rowInfo) list.RowFunc[catalog.Track] {
	return func(t catalog.Track, _, width int) string {
		marker := "  "
		if t.ID == info.playingID {
			marker = render.Pad(icons.Play(), 2)
		}
		fav := " "
		if info.favorites != nil && info.favorites.ContainsID(t.ID) {
			fav = icons.Favorite()
		}
		return render.Columns(marker+fav+" "+render.TrackLine(t.Name, t.ArtistName), render.Clock(t.Duration), width)
	}
}

// playlistRow renders "Name by user ... 3 days ago".
func playlistRow(p catalog.Playlist, _, width int) string {
	left := icons.FormatPlaylist(render.Sanitize(p.Name)) + " by " + render.Sanitize(p.UserName)
	age := ""
	if !p.CreatedAt.IsZero() {
		age = humanize.Time(p.CreatedAt)
	}
	return render.Columns(left, age, width)
}
