package lastfm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/playback"
)

// Scrobbler reports playback from the engine to Last.fm: now playing on
// every track start and a scrobble once a track has been listened to long
// enough.
type Scrobbler struct {
	api API
	log *zap.Logger
	now func() time.Time

	current *ScrobbleState
}

// NewScrobbler creates a scrobbler submitting through api.
func NewScrobbler(api API, log *zap.Logger) *Scrobbler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scrobbler{api: api, log: log, now: time.Now}
}

// Run consumes sub until ctx is done or the subscription ends. The track
// playing at that point is scrobbled if it qualifies.
func (s *Scrobbler) Run(ctx context.Context, sub *playback.Subscription) {
	defer s.finish()
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			s.trackChanged(e)
		case e := <-sub.StateChanged:
			s.stateChanged(e)
		}
	}
}

func (s *Scrobbler) trackChanged(e playback.TrackChange) {
	s.finish()
	if e.Current == nil {
		return
	}

	now := s.now()
	s.current = &ScrobbleState{
		Track:        *e.Current,
		StartedAt:    now,
		PlayingSince: now,
	}
	s.sendNowPlaying()
}

func (s *Scrobbler) stateChanged(e playback.StateChange) {
	if s.current == nil {
		return
	}
	now := s.now()
	switch e.Current {
	case playback.StatusPlaying:
		if s.current.PlayingSince.IsZero() {
			s.current.PlayingSince = now
		}
	case playback.StatusPaused, playback.StatusEmpty:
		s.current.Listened = s.current.listenedAt(now)
		s.current.PlayingSince = time.Time{}
	}
}

func (s *Scrobbler) sendNowPlaying() {
	st := s.current
	if err := s.api.UpdateNowPlaying(FromTrack(st.Track, st.StartedAt)); err != nil {
		s.log.Warn("update now playing", zap.String("track", st.Track.ID), zap.Error(err))
		return
	}
	st.NowPlayingSent = true
}

// finish scrobbles the current track when it qualifies and forgets it.
func (s *Scrobbler) finish() {
	st := s.current
	s.current = nil
	if st == nil || st.Scrobbled {
		return
	}
	if !ShouldScrobble(st.Track.Duration, st.listenedAt(s.now())) {
		return
	}
	if err := s.api.Scrobble(FromTrack(st.Track, st.StartedAt)); err != nil {
		s.log.Warn("scrobble", zap.String("track", st.Track.ID), zap.Error(err))
		return
	}
	st.Scrobbled = true
	s.log.Debug("scrobbled", zap.String("track", st.Track.ID))
}

// Current returns the track being tracked for scrobbling, if any.
func (s *Scrobbler) Current() (catalog.Track, bool) {
	if s.current == nil {
		return catalog.Track{}, false
	}
	return s.current.Track, true
}
