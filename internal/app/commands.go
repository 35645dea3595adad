package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/playback"
)

const statusTimeout = 5 * time.Second

// TickCmd returns a command that sends TickMsg after 1 second.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func clearStatusCmd(version int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{Version: version}
	})
}

// FetchTrendingCmd loads a page of trending tracks.
func FetchTrendingCmd(ctx context.Context, c catalog.Interface, limit, offset int) tea.Cmd {
	return func() tea.Msg {
		return TrendingLoadedMsg{Offset: offset, Tracks: c.FetchTrending(ctx, limit, offset)}
	}
}

// FetchPlaylistsCmd loads the recent playlists.
func FetchPlaylistsCmd(ctx context.Context, c catalog.Interface, limit int) tea.Cmd {
	return func() tea.Msg {
		return PlaylistsLoadedMsg{Playlists: c.FetchPlaylists(ctx, limit)}
	}
}

// FetchPlaylistTracksCmd loads the tracks of p.
func FetchPlaylistTracksCmd(ctx context.Context, c catalog.Interface, p catalog.Playlist, limit int) tea.Cmd {
	return func() tea.Msg {
		return PlaylistTracksLoadedMsg{Playlist: p, Tracks: c.FetchPlaylistTracks(ctx, p.ID, limit)}
	}
}

// SearchCmd runs a catalog search.
func SearchCmd(ctx context.Context, c catalog.Interface, query string, limit int) tea.Cmd {
	return func() tea.Msg {
		return SearchResultMsg{Query: query, Tracks: c.Search(ctx, query, limit)}
	}
}

// FetchTrackCmd looks a single track up for the detail view.
func FetchTrackCmd(ctx context.Context, c catalog.Interface, id string) tea.Cmd {
	return func() tea.Msg {
		t, ok := c.FetchTrackByID(ctx, id)
		return TrackLoadedMsg{ID: id, Track: t, Found: ok}
	}
}

// WatchServiceEvents returns a command that waits for the next engine
// event and converts it to a tea.Msg. Update re-issues it after every
// service message.
func WatchServiceEvents(sub *playback.Subscription) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case e := <-sub.StateChanged:
			return ServiceStateChangedMsg(e)
		case e := <-sub.TrackChanged:
			return ServiceTrackChangedMsg(e)
		case e := <-sub.PositionChanged:
			return ServicePositionMsg(e)
		case e := <-sub.ModeChanged:
			return ServiceModeChangedMsg(e)
		case e := <-sub.VolumeChanged:
			return ServiceVolumeChangedMsg(e)
		case e := <-sub.QueueChanged:
			return ServiceQueueChangedMsg(e)
		case e := <-sub.Error:
			return ServiceErrorMsg(e)
		case <-sub.Done:
			return ServiceClosedMsg{}
		}
	}
}
