package player

import (
	"math"

	"github.com/gopxl/beep/v2/speaker"
)

// DefaultVolume is the level a new player starts at.
const DefaultVolume = 0.7

// SetVolume sets the volume level (0.0 to 1.0). The level survives loads.
func (p *Player) SetVolume(level float64) {
	level = ClampVolume(level)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.volumeLevel = level
	p.applyVolumeLocked()
}

// Volume returns the current volume level (0.0 to 1.0).
func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volumeLevel
}

func (p *Player) applyVolumeLocked() {
	if p.volume == nil {
		return
	}
	speaker.Lock()
	p.volume.Volume = levelToVolume(p.volumeLevel)
	p.volume.Silent = p.volumeLevel <= 0
	speaker.Unlock()
}

// Level returns a pointer to level, for the Volume option of New.
func Level(level float64) *float64 {
	return &level
}

// InitialVolume resolves an optional configured level: nil means
// DefaultVolume, anything else is clamped. An explicit 0 stays muted.
func InitialVolume(level *float64) float64 {
	if level == nil {
		return DefaultVolume
	}
	return ClampVolume(*level)
}

// ClampVolume restricts level to [0, 1].
func ClampVolume(level float64) float64 {
	if math.IsNaN(level) {
		return 0
	}
	return min(max(level, 0), 1)
}

// levelToVolume converts a 0.0-1.0 level to beep's Volume value.
// beep uses a base-2 logarithmic scale: 0 is unchanged, -1 half, -2 quarter.
// Zero maps to -10 and is additionally silenced by the caller.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}
