package playback

import (
	"context"

	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/player"
)

// Run consumes backend events until ctx is done, the engine is closed or
// the backend stops delivering events. It must run in exactly one
// goroutine.
func (e *Engine) Run(ctx context.Context) error {
	events := e.player.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-e.done:
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.handleEvent(ev)
		}
	}
}

func (e *Engine) handleEvent(ev player.Event) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}
	if ev.Load != e.loadID {
		e.log.Debug("stale player event dropped",
			zap.Stringer("kind", ev.Kind),
			zap.Uint64("load", ev.Load),
			zap.Uint64("current", e.loadID))
		return
	}

	switch ev.Kind {
	case player.EventLoaded, player.EventTimeUpdate:
		e.updateTimeLocked(ev)
	case player.EventEnded:
		e.trackEndedLocked()
	case player.EventError:
		e.backendErrorLocked(ev)
	}
}

// updateTimeLocked applies metadata and time updates. The position never
// exceeds a known duration.
func (e *Engine) updateTimeLocked(ev player.Event) {
	if ev.Duration > 0 {
		e.duration = ev.Duration
	}
	pos := max(ev.Position, 0)
	if e.duration > 0 {
		pos = min(pos, e.duration)
	}
	e.position = pos
	e.notifyPosition(PositionChange{Position: e.position, Duration: e.duration})
}

// trackEndedLocked restarts the track in repeat mode and otherwise moves
// to the next queue entry (wrapping after the last one).
func (e *Engine) trackEndedLocked() {
	if e.current == nil {
		return
	}
	if !e.repeat {
		e.stepLocked(true)
		return
	}

	prevStatus := e.statusLocked()
	e.position = 0
	e.playing = true
	e.player.SeekTo(0)
	if err := e.player.Play(); err != nil {
		e.rejectPlayLocked("repeat", err)
	}
	e.notifyPosition(PositionChange{Position: 0, Duration: e.duration})
	e.notifyStateFrom(prevStatus)
}

// backendErrorLocked pauses on a media failure. Queue and index are kept
// so the user can retry or skip.
func (e *Engine) backendErrorLocked(ev player.Event) {
	prevStatus := e.statusLocked()
	e.playing = false

	id := ""
	if e.current != nil {
		id = e.current.ID
	}
	e.log.Warn("playback error", zap.String("track", id), zap.Error(ev.Err))
	e.notifyError(ErrorEvent{Operation: "load", TrackID: id, Err: ev.Err})
	e.notifyStateFrom(prevStatus)
}
