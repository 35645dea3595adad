package player

// State represents the media backend state machine.
//
//	Stopped --Load--> Loading --decoded--> Playing | Paused
//	Playing <--Play/Pause--> Paused
//	Playing --end--> Ended --Play--> Playing (from the start)
//	any --Load--> Loading
//	Loading --failure--> Stopped
//
// Play while Loading records the intent; the source starts as soon as
// it is decoded. Pause while Loading cancels that intent.
type State int

const (
	Stopped State = iota
	Loading
	Playing
	Paused
	Ended
)

// String returns the state name for debugging.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Loading:
		return "Loading"
	case Playing:
		return "Playing"
	case Paused:
		return "Paused"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// HasSource returns true if a decoded source is attached.
func (s State) HasSource() bool {
	return s == Playing || s == Paused || s == Ended
}

// CanPause returns true if the state allows pausing.
func (s State) CanPause() bool {
	return s == Playing
}

// CanResume returns true if Play would start audio from this state.
func (s State) CanResume() bool {
	return s == Paused || s == Ended
}
