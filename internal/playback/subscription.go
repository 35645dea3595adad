package playback

const eventBufferSize = 16

// feed is one buffered event stream. Publishing never blocks the engine:
// an event is dropped when the subscriber has fallen behind.
type feed[T any] chan T

func (f feed[T]) publish(ev T) {
	select {
	case f <- ev:
	default:
	}
}

// Subscription is one consumer's view of the engine events. Every channel
// is buffered; Done is closed when the engine shuts down.
type Subscription struct {
	StateChanged    <-chan StateChange
	TrackChanged    <-chan TrackChange
	PositionChanged <-chan PositionChange
	QueueChanged    <-chan QueueChange
	ModeChanged     <-chan ModeChange
	VolumeChanged   <-chan VolumeChange
	Error           <-chan ErrorEvent
	Done            <-chan struct{}

	state    feed[StateChange]
	track    feed[TrackChange]
	position feed[PositionChange]
	queue    feed[QueueChange]
	mode     feed[ModeChange]
	volume   feed[VolumeChange]
	errs     feed[ErrorEvent]
	done     chan struct{}
}

func newSubscription() *Subscription {
	s := &Subscription{
		state:    make(feed[StateChange], eventBufferSize),
		track:    make(feed[TrackChange], eventBufferSize),
		position: make(feed[PositionChange], eventBufferSize),
		queue:    make(feed[QueueChange], eventBufferSize),
		mode:     make(feed[ModeChange], eventBufferSize),
		volume:   make(feed[VolumeChange], eventBufferSize),
		errs:     make(feed[ErrorEvent], eventBufferSize),
		done:     make(chan struct{}),
	}
	s.StateChanged, s.TrackChanged, s.PositionChanged = s.state, s.track, s.position
	s.QueueChanged, s.ModeChanged, s.VolumeChanged = s.queue, s.mode, s.volume
	s.Error, s.Done = s.errs, s.done
	return s
}

func (s *Subscription) close() {
	close(s.done)
}
