//go:build !linux

// Package mpris exposes the playback engine on the session bus so media
// keys and desktop widgets can control it.
package mpris

import (
	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/playback"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ playback.Service, _ *zap.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}
