package player

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"go.uber.org/zap"
)

const (
	eventBufferSize    = 64
	timeUpdateInterval = 250 * time.Millisecond
	maxSourceSize      = 256 << 20
	userAgent          = "jamwaves/1.0"
)

var (
	speakerMu          sync.Mutex
	speakerInitialized bool
	speakerSampleRate  beep.SampleRate
)

// Options configures a Player.
type Options struct {
	HTTPClient *http.Client
	Volume     *float64 // initial level, DefaultVolume when nil
	Logger     *zap.Logger
}

// Player streams remote MP3 sources to the default audio output.
type Player struct {
	mu sync.Mutex

	httpClient *http.Client
	log        *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	events chan Event
	closed bool

	loadID     uint64
	cancelLoad context.CancelFunc
	state      State
	wantPlay   bool
	seekOnLoad time.Duration

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume

	volumeLevel float64
}

// New creates a player and starts its position ticker.
func New(opts Options) *Player {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Player{
		httpClient:  opts.HTTPClient,
		log:         opts.Logger,
		ctx:         ctx,
		cancel:      cancel,
		events:      make(chan Event, eventBufferSize),
		state:       Stopped,
		volumeLevel: InitialVolume(opts.Volume),
	}
	go p.tickLoop()
	return p
}

// Events returns the notification channel. It is closed by Close.
func (p *Player) Events() <-chan Event {
	return p.events
}

// State returns the current backend state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Load starts fetching url in the background and returns its load id.
// Any previous source or in-flight load is abandoned.
func (p *Player) Load(url string) uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.loadID++
	id := p.loadID
	if p.closed {
		return id
	}

	p.detachLocked()
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancelLoad = cancel
	p.state = Loading
	p.wantPlay = false
	p.seekOnLoad = 0

	go p.fetch(ctx, id, url)
	return id
}

// Play starts or resumes playback. After the end of the source it
// restarts from the beginning.
func (p *Player) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case p.closed:
		return ErrClosed
	case p.state == Stopped:
		return ErrNoSource
	case p.state == Loading:
		p.wantPlay = true
		return nil
	case p.state == Playing:
		return nil
	case p.state == Ended:
		speaker.Lock()
		if p.streamer.Position() >= p.streamer.Len() {
			_ = p.streamer.Seek(0)
		}
		speaker.Unlock()
		p.startLocked(true)
		return nil
	default:
		speaker.Lock()
		p.ctrl.Paused = false
		speaker.Unlock()
		p.state = Playing
		return nil
	}
}

// Pause pauses playback, or cancels a pending start while loading.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case Loading:
		p.wantPlay = false
	case Playing:
		speaker.Lock()
		p.ctrl.Paused = true
		speaker.Unlock()
		p.state = Paused
	default:
	}
}

// SeekTo moves to pos, clamped to the source. While loading, the position
// is applied once the source is ready.
func (p *Player) SeekTo(pos time.Duration) {
	pos = max(pos, 0)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Loading {
		p.seekOnLoad = pos
		return
	}
	if p.streamer == nil {
		return
	}

	speaker.Lock()
	_ = p.streamer.Seek(p.format.SampleRate.N(pos))
	speaker.Unlock()
}

// Position returns the current playback position.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Player) positionLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	speaker.Lock()
	defer speaker.Unlock()
	return p.format.SampleRate.D(p.streamer.Position())
}

func (p *Player) durationLocked() time.Duration {
	if p.streamer == nil {
		return 0
	}
	return p.format.SampleRate.D(p.streamer.Len())
}

// Close stops playback, cancels loads and closes the event channel.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	p.detachLocked()
	p.state = Stopped
	p.cancel()
	close(p.events)
	return nil
}

// detachLocked stops output and releases the current source.
func (p *Player) detachLocked() {
	if p.cancelLoad != nil {
		p.cancelLoad()
		p.cancelLoad = nil
	}
	if p.streamer == nil {
		return
	}
	speaker.Clear()
	if err := p.streamer.Close(); err != nil {
		p.log.Debug("close source", zap.Error(err))
	}
	p.streamer = nil
	p.ctrl = nil
	p.volume = nil
}

func (p *Player) fetch(ctx context.Context, id uint64, url string) {
	stream, format, err := p.open(ctx, url)

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || id != p.loadID {
		if stream != nil {
			_ = stream.Close()
		}
		return
	}
	p.cancelLoad = nil

	if err == nil {
		err = initSpeaker(format.SampleRate)
	}
	if err != nil {
		if stream != nil {
			_ = stream.Close()
		}
		p.state = Stopped
		p.log.Warn("load source", zap.String("url", url), zap.Error(err))
		p.emitLocked(Event{Kind: EventError, Load: id, Err: err})
		return
	}

	p.streamer = stream
	p.format = format
	if p.seekOnLoad > 0 {
		_ = stream.Seek(format.SampleRate.N(p.seekOnLoad))
	}
	p.startLocked(p.wantPlay)
	p.emitLocked(Event{
		Kind:     EventLoaded,
		Load:     id,
		Position: p.format.SampleRate.D(stream.Position()),
		Duration: p.durationLocked(),
	})
}

func (p *Player) open(ctx context.Context, url string) (beep.StreamSeekCloser, beep.Format, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, beep.Format{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("read audio: %w", err)
	}

	stream, format, err := decodeMP3(newMemSource(data))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode audio: %w", err)
	}
	return stream, format, nil
}

// startLocked hands the current source to the speaker.
func (p *Player) startLocked(playing bool) {
	id := p.loadID

	var out beep.Streamer = p.streamer
	if p.format.SampleRate != speakerSampleRate {
		out = beep.Resample(4, p.format.SampleRate, speakerSampleRate, p.streamer)
	}
	p.ctrl = &beep.Ctrl{Streamer: out, Paused: !playing}
	p.volume = &effects.Volume{Streamer: p.ctrl, Base: 2}
	p.applyVolumeLocked()

	if playing {
		p.state = Playing
	} else {
		p.state = Paused
	}

	// The callback runs on the speaker goroutine with the speaker lock held;
	// hop off it before touching p.mu.
	speaker.Play(beep.Seq(p.volume, beep.Callback(func() {
		go p.ended(id)
	})))
}

func (p *Player) ended(id uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || id != p.loadID || p.state != Playing {
		return
	}
	p.state = Ended
	d := p.durationLocked()
	p.emitLocked(Event{Kind: EventEnded, Load: id, Position: d, Duration: d})
}

func (p *Player) tickLoop() {
	ticker := time.NewTicker(timeUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.mu.Lock()
			if !p.closed && p.state == Playing {
				p.emitLocked(Event{
					Kind:     EventTimeUpdate,
					Load:     p.loadID,
					Position: p.positionLocked(),
					Duration: p.durationLocked(),
				})
			}
			p.mu.Unlock()
		}
	}
}

// emitLocked delivers ev without blocking. Time updates are dropped when
// the consumer lags; they are superseded by the next tick anyway.
func (p *Player) emitLocked(ev Event) {
	select {
	case p.events <- ev:
	default:
		if ev.Kind != EventTimeUpdate {
			p.log.Warn("player event dropped", zap.Stringer("kind", ev.Kind), zap.Uint64("load", ev.Load))
		}
	}
}

// initSpeaker opens the audio output on first use.
func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerInitialized {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init audio output: %w", err)
	}
	speakerSampleRate = rate
	speakerInitialized = true
	return nil
}
