package app

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jamwaves/internal/app/handler"
	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/errmsg"
	"github.com/llehouerou/jamwaves/internal/keymap"
	"github.com/llehouerou/jamwaves/internal/ui/list"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
)

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.showHelp {
		if m.help.HandleAction(m.keys.Resolve(msg.String())) {
			m.showHelp = false
		}
		return nil
	}

	if m.view == ViewSearch && m.searching {
		return m.handleSearchInput(msg)
	}

	_, cmd := handler.Chain(m.keys.Resolve(msg.String()),
		m.handleGlobal,
		m.handlePlayback,
		m.handleList,
	)
	return cmd
}

// handleSearchInput routes keys to the text input while it has focus.
func (m *Model) handleSearchInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type { //nolint:exhaustive // everything else is typed text
	case tea.KeyCtrlC:
		return tea.Quit
	case tea.KeyEnter:
		return m.submitSearch()
	case tea.KeyEsc, tea.KeyTab:
		m.searching = false
		m.search.Blur()
		m.results.SetFocused(true)
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return cmd
}

func (m *Model) submitSearch() tea.Cmd {
	query := strings.TrimSpace(m.search.Value())
	if query == "" {
		return nil
	}
	m.lastQuery = query
	m.searching = false
	m.search.Blur()
	m.results.SetFocused(true)
	return m.startLoading(SearchCmd(m.ctx, m.catalog, query, m.limits.Search))
}

func (m *Model) handleGlobal(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // global actions only
	case keymap.ActionQuit:
		return handler.Handled(tea.Quit)
	case keymap.ActionHelp:
		m.help.Reset()
		m.showHelp = true
		return handler.HandledNoCmd
	case keymap.ActionViewHome:
		m.setView(ViewHome)
		return handler.HandledNoCmd
	case keymap.ActionViewSearch:
		m.setView(ViewSearch)
		return handler.Handled(m.focusSearch())
	case keymap.ActionViewFavorites:
		m.setView(ViewFavorites)
		return handler.HandledNoCmd
	case keymap.ActionSwitchFocus:
		return handler.Handled(m.switchFocus())
	case keymap.ActionBack:
		return handler.Handled(m.back())
	case keymap.ActionRefresh:
		return handler.Handled(m.reload())
	}
	return handler.NotHandled
}

func (m *Model) handlePlayback(a keymap.Action) handler.Result {
	switch a { //nolint:exhaustive // transport actions only
	case keymap.ActionPlayPause:
		if m.state.CurrentTrack == nil {
			return handler.Handled(m.playSelected())
		}
		if err := m.playback.TogglePlay(); err != nil {
			return handler.Handled(m.setError(errmsg.OpPlaybackResume, "", err))
		}
	case keymap.ActionNextTrack:
		if err := m.playback.Next(); err != nil {
			return handler.Handled(m.setError(errmsg.OpPlaybackStart, "", err))
		}
	case keymap.ActionPrevTrack:
		if err := m.playback.Previous(); err != nil {
			return handler.Handled(m.setError(errmsg.OpPlaybackStart, "", err))
		}
	case keymap.ActionSeekForward:
		m.playback.SeekTo(m.state.Position + seekStep)
	case keymap.ActionSeekBack:
		m.playback.SeekTo(m.state.Position - seekStep)
	case keymap.ActionVolumeUp:
		m.playback.SetVolume(m.state.Volume + volumeStep)
	case keymap.ActionVolumeDown:
		m.playback.SetVolume(m.state.Volume - volumeStep)
	case keymap.ActionToggleMute:
		muted := m.playback.ToggleMute()
		m.refreshState()
		return handler.Handled(m.setInfo("Mute " + onOff(muted)))
	case keymap.ActionToggleShuffle:
		on := m.playback.ToggleShuffle()
		m.refreshState()
		return handler.Handled(m.setInfo("Shuffle " + onOff(on)))
	case keymap.ActionToggleRepeat:
		on := m.playback.ToggleRepeat()
		m.refreshState()
		return handler.Handled(m.setInfo("Repeat " + onOff(on)))
	case keymap.ActionToggleFavorite:
		return handler.Handled(m.toggleFavorite())
	default:
		return handler.NotHandled
	}
	m.refreshState()
	return handler.HandledNoCmd
}

func (m *Model) handleList(a keymap.Action) handler.Result {
	if m.view == ViewHome && m.focus == FocusPlaylists && m.openPlaylist == nil {
		return m.handlePlaylistList(a)
	}

	switch a { //nolint:exhaustive // list actions only
	case keymap.ActionSelect:
		return handler.Handled(m.playSelected())
	case keymap.ActionDetails:
		return handler.Handled(m.openDetails())
	case keymap.ActionLoadMore:
		if m.view != ViewHome || m.focus != FocusTrending {
			return handler.NotHandled
		}
		offset := m.trending.Len()
		return handler.Handled(m.startLoading(FetchTrendingCmd(m.ctx, m.catalog, m.limits.Trending, offset)))
	}

	if l := m.activeTracks(); l != nil && l.HandleAction(a) {
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) handlePlaylistList(a keymap.Action) handler.Result {
	if a == keymap.ActionSelect {
		p, ok := m.playlists.Selected()
		if !ok {
			return handler.HandledNoCmd
		}
		return handler.Handled(m.openPlaylistTracks(p))
	}
	if m.playlists.HandleAction(a) {
		return handler.HandledNoCmd
	}
	return handler.NotHandled
}

func (m *Model) openPlaylistTracks(p catalog.Playlist) tea.Cmd {
	m.openPlaylist = &p
	m.playlistTracks.SetTitle("Playlist: " + p.Name + " (esc to close)")
	m.playlistTracks.SetItems(p.Tracks, true)
	m.applyFocus()
	return m.startLoading(FetchPlaylistTracksCmd(m.ctx, m.catalog, p, m.limits.PlaylistTracks))
}

// activeTracks returns the track list that receives list actions, or nil.
func (m *Model) activeTracks() *list.Model[catalog.Track] {
	switch m.view {
	case ViewHome:
		if m.focus == FocusTrending {
			return &m.trending
		}
		if m.openPlaylist != nil {
			return &m.playlistTracks
		}
	case ViewSearch:
		return &m.results
	case ViewFavorites:
		return &m.favs
	case ViewTrack:
	}
	return nil
}

// selectedTrack is the track that track actions apply to: the detail
// track, else the highlighted list entry.
func (m *Model) selectedTrack() (catalog.Track, bool) {
	if m.view == ViewTrack {
		if m.detail == nil {
			return catalog.Track{}, false
		}
		return *m.detail, true
	}
	if l := m.activeTracks(); l != nil {
		return l.Selected()
	}
	return catalog.Track{}, false
}

// playSelected plays the selected track with its list as the queue.
func (m *Model) playSelected() tea.Cmd {
	var (
		track catalog.Track
		queue []catalog.Track
		ok    bool
	)
	if m.view == ViewTrack {
		track, ok = m.selectedTrack()
	} else if l := m.activeTracks(); l != nil {
		track, ok = l.Selected()
		queue = l.Items()
	}
	if !ok {
		return nil
	}
	if err := m.playback.PlayTrack(track, queue...); err != nil {
		return m.setError(errmsg.OpPlaybackStart, track.Name, err)
	}
	m.refreshState()
	return nil
}

func (m *Model) toggleFavorite() tea.Cmd {
	track, ok := m.selectedTrack()
	if !ok {
		if m.state.CurrentTrack == nil {
			return nil
		}
		track = *m.state.CurrentTrack
	}
	on, err := m.playback.ToggleFavorite(track)
	if err != nil {
		return m.setError(errmsg.OpFavoriteToggle, track.Name, err)
	}
	m.reloadFavorites()
	if on {
		return m.setInfo("Added \"" + track.Name + "\" to favorites")
	}
	return m.setInfo("Removed \"" + track.Name + "\" from favorites")
}

func (m *Model) reloadFavorites() {
	if m.favorites != nil {
		m.favs.SetItems(m.favorites.List(), false)
	}
}

func (m *Model) openDetails() tea.Cmd {
	track, ok := m.selectedTrack()
	if !ok || m.view == ViewTrack {
		return nil
	}
	m.returnView = m.view
	m.view = ViewTrack
	m.detail = &track
	m.detailID = track.ID
	return m.startLoading(FetchTrackCmd(m.ctx, m.catalog, track.ID))
}

func (m *Model) setView(v ViewMode) {
	if v == ViewFavorites {
		m.reloadFavorites()
	}
	m.view = v
	m.searching = false
	m.search.Blur()
	m.applyFocus()
}

func (m *Model) focusSearch() tea.Cmd {
	m.searching = true
	m.results.SetFocused(false)
	return tea.Batch(m.search.Focus(), textinput.Blink)
}

func (m *Model) switchFocus() tea.Cmd {
	switch m.view {
	case ViewHome:
		if m.focus == FocusTrending {
			m.focus = FocusPlaylists
		} else {
			m.focus = FocusTrending
		}
		m.applyFocus()
	case ViewSearch:
		return m.focusSearch()
	case ViewFavorites, ViewTrack:
	}
	return nil
}

func (m *Model) back() tea.Cmd {
	switch m.view {
	case ViewTrack:
		m.view = m.returnView
		m.detail = nil
		m.detailID = ""
		m.applyFocus()
	case ViewHome:
		if m.openPlaylist != nil && m.focus == FocusPlaylists {
			m.openPlaylist = nil
			m.applyFocus()
		}
	case ViewSearch:
		return m.focusSearch()
	case ViewFavorites:
		m.setView(ViewHome)
	}
	return nil
}

// reload refetches whatever the current view shows.
func (m *Model) reload() tea.Cmd {
	switch m.view {
	case ViewHome:
		cmds := []tea.Cmd{
			FetchTrendingCmd(m.ctx, m.catalog, m.limits.Trending, 0),
			FetchPlaylistsCmd(m.ctx, m.catalog, m.limits.Playlists),
		}
		if m.openPlaylist != nil {
			cmds = append(cmds, FetchPlaylistTracksCmd(m.ctx, m.catalog, *m.openPlaylist, m.limits.PlaylistTracks))
		}
		return m.startLoading(cmds...)
	case ViewSearch:
		if m.lastQuery == "" {
			return nil
		}
		return m.startLoading(SearchCmd(m.ctx, m.catalog, m.lastQuery, m.limits.Search))
	case ViewFavorites:
		m.reloadFavorites()
	case ViewTrack:
		if m.detailID != "" {
			return m.startLoading(FetchTrackCmd(m.ctx, m.catalog, m.detailID))
		}
	}
	return nil
}

// applyFocus sets panel focus flags from the view and focus target.
func (m *Model) applyFocus() {
	home := m.view == ViewHome
	m.trending.SetFocused(home && m.focus == FocusTrending)
	m.playlists.SetFocused(home && m.focus == FocusPlaylists && m.openPlaylist == nil)
	m.playlistTracks.SetFocused(home && m.focus == FocusPlaylists && m.openPlaylist != nil)
	m.results.SetFocused(m.view == ViewSearch && !m.searching)
	m.favs.SetFocused(m.view == ViewFavorites)
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
