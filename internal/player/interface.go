package player

import (
	"errors"
	"time"
)

var (
	// ErrNoSource is returned by Play when nothing has been loaded.
	ErrNoSource = errors.New("no audio source loaded")
	// ErrClosed is returned once the player has been closed.
	ErrClosed = errors.New("player closed")
)

// EventKind identifies a media notification.
type EventKind int

const (
	// EventLoaded fires once a source is decoded and its duration known.
	EventLoaded EventKind = iota
	// EventTimeUpdate reports the playback position while playing.
	EventTimeUpdate
	// EventEnded fires when playback reaches the end of the source.
	EventEnded
	// EventError reports a load, decode or output failure.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventLoaded:
		return "loaded"
	case EventTimeUpdate:
		return "timeupdate"
	case EventEnded:
		return "ended"
	case EventError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a notification from the media backend. Load identifies the
// Load call it belongs to so stale notifications can be discarded.
type Event struct {
	Kind     EventKind
	Load     uint64
	Position time.Duration
	Duration time.Duration
	Err      error
}

// Interface defines the media backend contract for dependency injection and testing.
// A single backend plays one source at a time; each Load supersedes the
// previous one.
type Interface interface {
	Load(url string) uint64
	Play() error
	Pause()
	SeekTo(pos time.Duration)
	SetVolume(level float64)
	Events() <-chan Event
	Close() error
}

// Verify Player implements Interface at compile time.
var _ Interface = (*Player)(nil)
