package playback

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/player"
	"github.com/llehouerou/jamwaves/internal/playlist"
)

// ErrClosed is returned by transport operations after Close.
var ErrClosed = errors.New("playback engine closed")

// Favorites is the subset of the favorites store the engine uses.
type Favorites interface {
	Toggle(track Track) (bool, error)
	Contains(track Track) bool
}

// Options configures an Engine.
type Options struct {
	Volume    *float64 // initial level; player.DefaultVolume when nil
	Favorites Favorites
	Rand      *rand.Rand
	Logger    *zap.Logger
}

// Verify Engine implements Service at compile time.
var _ Service = (*Engine)(nil)

// Engine is the single transport state machine. It owns the media backend
// and serializes every operation and backend event on one mutex.
type Engine struct {
	mu sync.Mutex

	player    player.Interface
	queue     *playlist.Queue
	favorites Favorites
	rng       *rand.Rand
	log       *zap.Logger

	current  *Track
	playing  bool
	position time.Duration
	duration time.Duration
	volume   float64
	unmuted  float64 // level restored by ToggleMute
	shuffle  bool
	repeat   bool
	loadID   uint64

	subs   []*Subscription
	subsMu sync.RWMutex

	done   chan struct{}
	closed bool
}

// New creates the engine around backend. The backend is owned by the
// engine from now on and released by Close.
func New(backend player.Interface, opts Options) *Engine {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)) //nolint:gosec // shuffle order
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	e := &Engine{
		player:    backend,
		queue:     playlist.New(),
		favorites: opts.Favorites,
		rng:       opts.Rand,
		log:       opts.Logger,
		volume:    player.InitialVolume(opts.Volume),
		done:      make(chan struct{}),
	}
	backend.SetVolume(e.volume)
	return e
}

// PlayTrack makes track current and starts it. A non-empty queue replaces
// the current queue, positioned on track (index 0 when track is not part
// of it); an empty queue plays track alone. Any load still in flight is
// superseded.
func (e *Engine) PlayTrack(track Track, queue ...Track) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if len(queue) == 0 {
		queue = []Track{track}
	}
	e.playAtLocked(track, queue, max(catalog.IndexOf(queue, track.ID), 0))
	return nil
}

// playAtLocked installs queue positioned on index and starts track.
func (e *Engine) playAtLocked(track Track, queue []Track, index int) {
	prevStatus := e.statusLocked()
	prev := trackPtr(e.current)
	prevIndex := e.queue.CurrentIndex()

	e.queue.Replace(queue, index)

	e.current = trackPtr(&track)
	e.position = 0
	e.duration = track.Duration
	e.playing = true
	e.loadID = e.player.Load(track.Audio)

	e.log.Debug("play track",
		zap.String("id", track.ID),
		zap.String("name", track.Name),
		zap.Int("index", index),
		zap.Uint64("load", e.loadID))

	if err := e.player.Play(); err != nil {
		e.rejectPlayLocked("play", err)
	}

	e.notifyTrack(TrackChange{
		Previous:      prev,
		Current:       trackPtr(e.current),
		PreviousIndex: prevIndex,
		Index:         index,
	})
	e.notifyQueue(QueueChange{Tracks: e.queue.Tracks(), Index: index})
	e.notifyPosition(PositionChange{Position: 0, Duration: e.duration})
	e.notifyStateFrom(prevStatus)
}

// TogglePlay pauses or resumes the current track. Without a current
// track it does nothing. A resume refused by the backend leaves the
// engine paused and is reported as an ErrorEvent, not returned.
func (e *Engine) TogglePlay() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	if e.current == nil {
		return nil
	}

	prevStatus := e.statusLocked()
	if e.playing {
		e.player.Pause()
		e.playing = false
	} else {
		e.playing = true
		if err := e.player.Play(); err != nil {
			e.rejectPlayLocked("resume", err)
		}
	}
	e.notifyStateFrom(prevStatus)
	return nil
}

// rejectPlayLocked records a refused play request.
func (e *Engine) rejectPlayLocked(op string, err error) {
	e.playing = false
	id := ""
	if e.current != nil {
		id = e.current.ID
	}
	e.log.Warn("playback rejected", zap.String("op", op), zap.String("track", id), zap.Error(err))
	e.notifyError(ErrorEvent{Operation: op, TrackID: id, Err: err})
}

// SetVolume clamps level to [0,1] and applies it.
func (e *Engine) SetVolume(level float64) {
	level = player.ClampVolume(level)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.setVolumeLocked(level)
}

// ToggleMute drops the volume to 0, remembering the level, or restores
// it. Unmuting a level that was never audible restores DefaultVolume.
// It reports whether playback is now muted.
func (e *Engine) ToggleMute() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return e.volume == 0
	}
	if e.volume > 0 {
		e.unmuted = e.volume
		e.setVolumeLocked(0)
		return true
	}
	level := e.unmuted
	if level <= 0 {
		level = player.DefaultVolume
	}
	e.setVolumeLocked(level)
	return false
}

func (e *Engine) setVolumeLocked(level float64) {
	e.volume = level
	e.player.SetVolume(level)
	e.notifyVolume(VolumeChange{Volume: level})
}

// SeekTo jumps to position, clamped to [0, Duration]. Only the lower
// bound applies while the duration is unknown.
func (e *Engine) SeekTo(position time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed || e.current == nil {
		return
	}
	position = max(position, 0)
	if e.duration > 0 {
		position = min(position, e.duration)
	}
	e.position = position
	e.player.SeekTo(position)
	e.notifyPosition(PositionChange{Position: position, Duration: e.duration})
}

// Next plays the following queue entry, wrapping to the first. In shuffle
// mode it plays a random other entry.
func (e *Engine) Next() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.stepLocked(true)
	return nil
}

// Previous plays the preceding queue entry, wrapping to the last. In
// shuffle mode it behaves exactly like Next.
func (e *Engine) Previous() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	e.stepLocked(false)
	return nil
}

func (e *Engine) stepLocked(forward bool) {
	if e.queue.IsEmpty() {
		return
	}

	var t *Track
	switch {
	case e.shuffle:
		t = e.queue.Random(e.rng)
	case forward:
		t = e.queue.Next()
	default:
		t = e.queue.Previous()
	}
	if t == nil {
		return
	}
	e.playAtLocked(*t, e.queue.Tracks(), e.queue.CurrentIndex())
}

// ToggleShuffle flips shuffle and returns the new value.
func (e *Engine) ToggleShuffle() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shuffle = !e.shuffle
	e.notifyMode(ModeChange{Shuffle: e.shuffle, Repeat: e.repeat})
	return e.shuffle
}

// ToggleRepeat flips single-track repeat and returns the new value.
func (e *Engine) ToggleRepeat() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.repeat = !e.repeat
	e.notifyMode(ModeChange{Shuffle: e.shuffle, Repeat: e.repeat})
	return e.repeat
}

// ToggleFavorite adds or removes track from favorites and reports whether
// it is now a favorite.
func (e *Engine) ToggleFavorite(track Track) (bool, error) {
	if e.favorites == nil {
		return false, nil
	}
	return e.favorites.Toggle(track)
}

// IsFavorite reports whether track is a favorite.
func (e *Engine) IsFavorite(track Track) bool {
	if e.favorites == nil {
		return false
	}
	return e.favorites.Contains(track)
}

// State returns a snapshot of the engine.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return State{
		CurrentTrack: trackPtr(e.current),
		IsPlaying:    e.playing,
		Position:     e.position,
		Duration:     e.duration,
		Volume:       e.volume,
		Queue:        e.queue.Tracks(),
		CurrentIndex: e.queue.CurrentIndex(),
		Shuffle:      e.shuffle,
		Repeat:       e.repeat,
	}
}

// CurrentTrack returns a copy of the current track, or nil.
func (e *Engine) CurrentTrack() *Track {
	e.mu.Lock()
	defer e.mu.Unlock()
	return trackPtr(e.current)
}

func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

func (e *Engine) statusLocked() Status {
	switch {
	case e.current == nil:
		return StatusEmpty
	case e.playing:
		return StatusPlaying
	default:
		return StatusPaused
	}
}

// Subscribe creates a new event subscription.
func (e *Engine) Subscribe() *Subscription {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	sub := newSubscription()
	if e.isClosed() {
		sub.close()
		return sub
	}
	e.subs = append(e.subs, sub)
	return sub
}

func (e *Engine) isClosed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// Close releases the backend and ends every subscription.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	close(e.done)
	err := e.player.Close()
	e.mu.Unlock()

	e.subsMu.Lock()
	for _, sub := range e.subs {
		sub.close()
	}
	e.subs = nil
	e.subsMu.Unlock()

	return err
}
