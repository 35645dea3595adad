// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/playback"
)

const (
	appName = "jamwaves"

	// DefaultIcon is the freedesktop icon shown with now-playing notifications.
	DefaultIcon = "audio-x-generic"

	// DefaultTimeout is the now-playing display time in milliseconds.
	DefaultTimeout int32 = 5000
)

// Urgency represents notification priority levels per freedesktop spec.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// NowPlaying builds the notification shown when t starts.
func NowPlaying(t catalog.Track) Notification {
	parts := []string{t.ArtistName}
	if t.AlbumName != "" {
		parts = append(parts, t.AlbumName)
	}
	return Notification{
		Title:   t.Name,
		Body:    strings.Join(parts, " · "),
		Icon:    DefaultIcon,
		Timeout: DefaultTimeout,
		Urgency: UrgencyLow,
	}
}

// Watcher shows a now-playing notification for every track change,
// replacing the previous one.
type Watcher struct {
	notifier Notifier
	log      *zap.Logger
	lastID   uint32
}

// NewWatcher creates a watcher sending through n.
func NewWatcher(n Notifier, log *zap.Logger) *Watcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Watcher{notifier: n, log: log}
}

// Run consumes sub until ctx is done or the subscription ends.
func (w *Watcher) Run(ctx context.Context, sub *playback.Subscription) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-sub.Done:
			return
		case e := <-sub.TrackChanged:
			if e.Current != nil {
				w.TrackStarted(*e.Current)
			}
		}
	}
}

// TrackStarted sends the now-playing notification for t.
func (w *Watcher) TrackStarted(t catalog.Track) {
	n := NowPlaying(t)
	n.ReplacesID = w.lastID
	id, err := w.notifier.Notify(n)
	if err != nil {
		w.log.Debug("send notification", zap.String("track", t.ID), zap.Error(err))
		return
	}
	w.lastID = id
}

// stubNotifier drops every notification.
type stubNotifier struct{}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }

func (stubNotifier) Close(uint32) error { return nil }
