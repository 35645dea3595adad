package playback

// notifyStateFrom emits a StateChange when the status moved away from prev.
func (e *Engine) notifyStateFrom(prev Status) {
	cur := e.statusLocked()
	if cur == prev {
		return
	}
	ev := StateChange{Previous: prev, Current: cur}
	e.broadcast(func(s *Subscription) { s.state.publish(ev) })
}

func (e *Engine) notifyTrack(ev TrackChange) {
	e.broadcast(func(s *Subscription) { s.track.publish(ev) })
}

func (e *Engine) notifyQueue(ev QueueChange) {
	e.broadcast(func(s *Subscription) { s.queue.publish(ev) })
}

func (e *Engine) notifyPosition(ev PositionChange) {
	e.broadcast(func(s *Subscription) { s.position.publish(ev) })
}

func (e *Engine) notifyMode(ev ModeChange) {
	e.broadcast(func(s *Subscription) { s.mode.publish(ev) })
}

func (e *Engine) notifyVolume(ev VolumeChange) {
	e.broadcast(func(s *Subscription) { s.volume.publish(ev) })
}

func (e *Engine) notifyError(ev ErrorEvent) {
	e.broadcast(func(s *Subscription) { s.errs.publish(ev) })
}

func (e *Engine) broadcast(publish func(*Subscription)) {
	e.subsMu.RLock()
	defer e.subsMu.RUnlock()
	for _, s := range e.subs {
		publish(s)
	}
}
