package app

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/errmsg"
	"github.com/llehouerou/jamwaves/internal/playback"
)

var (
	errTrackNotFound = errors.New("track not found")
	errNoMoreTracks  = errors.New("no more tracks")
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case TickMsg:
		m.refreshState()
		if m.state.IsPlaying {
			return m, TickCmd()
		}
		m.ticking = false
		return m, nil

	case clearStatusMsg:
		if msg.Version == m.statusVers {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case TrendingLoadedMsg:
		return m, m.handleTrendingLoaded(msg)

	case PlaylistsLoadedMsg:
		m.doneLoading()
		m.playlists.SetItems(msg.Playlists, true)
		return m, nil

	case PlaylistTracksLoadedMsg:
		m.doneLoading()
		if m.openPlaylist == nil || m.openPlaylist.ID != msg.Playlist.ID {
			return m, nil
		}
		m.playlistTracks.SetItems(msg.Tracks, true)
		return m, nil

	case SearchResultMsg:
		m.doneLoading()
		if msg.Query != m.lastQuery {
			return m, nil
		}
		m.results.SetTitle("Results for \"" + msg.Query + "\"")
		m.results.SetItems(msg.Tracks, true)
		return m, nil

	case TrackLoadedMsg:
		return m, m.handleTrackLoaded(msg)

	case ServiceClosedMsg:
		m.sub = nil
		return m, nil

	case ServiceErrorMsg:
		m.refreshState()
		cmd := m.setError(playbackOp(msg.Operation), msg.TrackID, msg.Err)
		return m, tea.Batch(cmd, WatchServiceEvents(m.sub))

	case ServiceStateChangedMsg:
		m.refreshState()
		cmds := []tea.Cmd{WatchServiceEvents(m.sub)}
		if msg.Current == playback.StatusPlaying && !m.ticking {
			m.ticking = true
			cmds = append(cmds, TickCmd())
		}
		return m, tea.Batch(cmds...)

	case ServiceTrackChangedMsg, ServicePositionMsg, ServiceModeChangedMsg,
		ServiceVolumeChangedMsg, ServiceQueueChangedMsg:
		m.refreshState()
		return m, WatchServiceEvents(m.sub)
	}

	if m.view == ViewSearch && m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleTrendingLoaded(msg TrendingLoadedMsg) tea.Cmd {
	m.doneLoading()
	if msg.Offset == 0 {
		m.trending.SetItems(msg.Tracks, true)
		return nil
	}
	current := m.trending.Items()
	if msg.Offset != len(current) {
		return nil // superseded by a reload
	}
	if len(msg.Tracks) == 0 {
		return m.setError(errmsg.OpCatalogTrending, "", errNoMoreTracks)
	}
	merged := make([]catalog.Track, 0, len(current)+len(msg.Tracks))
	merged = append(merged, current...)
	for _, t := range msg.Tracks {
		if catalog.IndexOf(merged, t.ID) < 0 {
			merged = append(merged, t)
		}
	}
	m.trending.SetItems(merged, false)
	return nil
}

func (m *Model) handleTrackLoaded(msg TrackLoadedMsg) tea.Cmd {
	m.doneLoading()
	if msg.ID != m.detailID {
		return nil
	}
	if !msg.Found {
		return m.setError(errmsg.OpCatalogTrack, msg.ID, errTrackNotFound)
	}
	m.detail = &msg.Track
	return nil
}

// startLoading counts cmds as pending catalog loads and starts the spinner.
func (m *Model) startLoading(cmds ...tea.Cmd) tea.Cmd {
	wasIdle := m.pending == 0
	m.pending += len(cmds)
	if wasIdle {
		cmds = append(cmds, m.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

func (m *Model) doneLoading() {
	m.pending = max(m.pending-1, 0)
}

// setInfo shows a transient status message.
func (m *Model) setInfo(text string) tea.Cmd {
	m.statusVers++
	m.status = text
	m.statusErr = false
	return clearStatusCmd(m.statusVers)
}

// setError shows a transient error in the status line and logs it.
func (m *Model) setError(op errmsg.Op, context string, err error) tea.Cmd {
	m.log.Debug("ui error", zap.String("op", string(op)), zap.String("context", context), zap.Error(err))
	m.statusVers++
	m.status = errmsg.FormatWith(op, context, err)
	m.statusErr = true
	return clearStatusCmd(m.statusVers)
}

func playbackOp(operation string) errmsg.Op {
	switch operation {
	case "resume":
		return errmsg.OpPlaybackResume
	case "load":
		return errmsg.OpPlaybackLoad
	default:
		return errmsg.OpPlaybackStart
	}
}
