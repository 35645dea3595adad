package playback

import "time"

// StateChange is emitted when the transport status changes.
type StateChange struct {
	Previous Status
	Current  Status
}

// TrackChange is emitted every time PlayTrack starts a track, including
// replays of the same track through Next/Previous. A repeat restart at
// track end does not emit it.
//
// Consumers handle track-related side effects (notifications, scrobbling)
// in response to this event.
type TrackChange struct {
	Previous      *Track
	Current       *Track
	PreviousIndex int
	Index         int
}

// QueueChange is emitted when the queue contents are replaced.
type QueueChange struct {
	Tracks []Track
	Index  int
}

// ModeChange is emitted when repeat or shuffle changes.
type ModeChange struct {
	Shuffle bool
	Repeat  bool
}

// PositionChange is emitted on seeks and backend time updates.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// VolumeChange is emitted when the volume level changes.
type VolumeChange struct {
	Volume float64
}

// ErrorEvent is emitted when the backend fails or rejects an operation.
type ErrorEvent struct {
	Operation string // e.g. "load", "play"
	TrackID   string
	Err       error
}
