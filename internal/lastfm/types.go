package lastfm

import (
	"time"

	"github.com/shkh/lastfm-go/lastfm"

	"github.com/llehouerou/jamwaves/internal/catalog"
)

// ScrobbleTrack contains track metadata for scrobbling.
type ScrobbleTrack struct {
	Artist    string
	Track     string
	Album     string
	Duration  time.Duration
	Timestamp time.Time // when playback started
}

// FromTrack builds the scrobble payload for a catalog track.
func FromTrack(t catalog.Track, startedAt time.Time) ScrobbleTrack {
	return ScrobbleTrack{
		Artist:    t.ArtistName,
		Track:     t.Name,
		Album:     t.AlbumName,
		Duration:  t.Duration,
		Timestamp: startedAt,
	}
}

func (t ScrobbleTrack) params(withTimestamp bool) lastfm.P {
	p := lastfm.P{
		"artist": t.Artist,
		"track":  t.Track,
	}
	if withTimestamp {
		p["timestamp"] = t.Timestamp.Unix()
	}
	if t.Album != "" {
		p["album"] = t.Album
	}
	if t.Duration > 0 {
		p["duration"] = int(t.Duration.Seconds())
	}
	return p
}

// ScrobbleState tracks the scrobbling status of the current track.
type ScrobbleState struct {
	Track          catalog.Track
	StartedAt      time.Time     // when playback started
	Listened       time.Duration // accumulated play time, excluding pauses
	PlayingSince   time.Time     // zero while paused
	Scrobbled      bool
	NowPlayingSent bool
}

// listenedAt returns the play time accumulated up to now.
func (s *ScrobbleState) listenedAt(now time.Time) time.Duration {
	d := s.Listened
	if !s.PlayingSince.IsZero() {
		d += now.Sub(s.PlayingSince)
	}
	return d
}

const (
	minScrobbleDuration = 30 * time.Second
	maxScrobbleWait     = 4 * time.Minute
)

// ShouldScrobble applies the Last.fm rule: the track must be longer than
// 30 seconds and have played for half its length or 4 minutes.
func ShouldScrobble(duration, listened time.Duration) bool {
	if duration <= minScrobbleDuration {
		return false
	}
	return listened >= min(duration/2, maxScrobbleWait)
}
