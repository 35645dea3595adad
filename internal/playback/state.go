package playback

import "time"

// Status is the coarse transport state.
type Status int

const (
	StatusEmpty Status = iota
	StatusPaused
	StatusPlaying
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusEmpty:
		return "Empty"
	case StatusPaused:
		return "Paused"
	case StatusPlaying:
		return "Playing"
	default:
		return "Unknown"
	}
}

// State is a point-in-time snapshot of the engine.
type State struct {
	CurrentTrack *Track        `json:"current_track"`
	IsPlaying    bool          `json:"is_playing"`
	Position     time.Duration `json:"-"`
	Duration     time.Duration `json:"-"`
	Volume       float64       `json:"volume"`
	Queue        []Track       `json:"queue"`
	CurrentIndex int           `json:"current_index"`
	Shuffle      bool          `json:"shuffle"`
	Repeat       bool          `json:"repeat"`
}

// Status derives the transport status from the snapshot.
func (s State) Status() Status {
	switch {
	case s.CurrentTrack == nil:
		return StatusEmpty
	case s.IsPlaying:
		return StatusPlaying
	default:
		return StatusPaused
	}
}

// Progress returns Position/Duration in [0,1], 0 when the duration is unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(float64(s.Position)/float64(s.Duration), 1)
}
