// Package app contains the terminal UI: views over the catalog, the
// favorites store and the playback engine.
package app

import (
	"time"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/playback"
)

// TickMsg is sent every second while a track plays to refresh the progress bar.
type TickMsg time.Time

// TrendingLoadedMsg carries a page of trending tracks. Offset zero replaces
// the list, anything else appends.
type TrendingLoadedMsg struct {
	Offset int
	Tracks []catalog.Track
}

// PlaylistsLoadedMsg carries the recent playlists.
type PlaylistsLoadedMsg struct {
	Playlists []catalog.Playlist
}

// PlaylistTracksLoadedMsg carries the tracks of an opened playlist.
type PlaylistTracksLoadedMsg struct {
	Playlist catalog.Playlist
	Tracks   []catalog.Track
}

// SearchResultMsg carries the results for Query.
type SearchResultMsg struct {
	Query  string
	Tracks []catalog.Track
}

// TrackLoadedMsg carries a track detail lookup. Found is false when the
// catalog does not know the identifier.
type TrackLoadedMsg struct {
	ID    string
	Track catalog.Track
	Found bool
}

// ServiceStateChangedMsg is sent when the transport status changes.
type ServiceStateChangedMsg playback.StateChange

// ServiceTrackChangedMsg is sent when a track starts.
type ServiceTrackChangedMsg playback.TrackChange

// ServicePositionMsg is sent on seeks and backend time updates.
type ServicePositionMsg playback.PositionChange

// ServiceModeChangedMsg is sent when shuffle or repeat changes.
type ServiceModeChangedMsg playback.ModeChange

// ServiceVolumeChangedMsg is sent when the volume changes.
type ServiceVolumeChangedMsg playback.VolumeChange

// ServiceQueueChangedMsg is sent when the queue is replaced.
type ServiceQueueChangedMsg playback.QueueChange

// ServiceErrorMsg is sent when the backend fails or refuses playback.
type ServiceErrorMsg playback.ErrorEvent

// ServiceClosedMsg is sent when the playback engine is closed.
type ServiceClosedMsg struct{}

// clearStatusMsg clears the status line if it still shows version Version.
type clearStatusMsg struct {
	Version int
}
