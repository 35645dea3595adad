package playback

import (
	"context"
	"time"
)

// Service defines the transport contract consumed by the presentation
// layers and desktop integrations.
type Service interface {
	// Transport
	PlayTrack(track Track, queue ...Track) error
	TogglePlay() error
	Next() error
	Previous() error
	SeekTo(position time.Duration)
	SetVolume(level float64)
	ToggleMute() bool

	// Modes
	ToggleShuffle() bool
	ToggleRepeat() bool

	// Favorites
	ToggleFavorite(track Track) (bool, error)
	IsFavorite(track Track) bool

	// Queries
	State() State
	CurrentTrack() *Track
	IsPlaying() bool

	// Event subscription
	Subscribe() *Subscription

	// Lifecycle
	Run(ctx context.Context) error
	Close() error
}
