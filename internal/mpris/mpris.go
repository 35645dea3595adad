//go:build linux

// Package mpris exposes the playback engine on the session bus so media
// keys and desktop widgets can control it.
package mpris

import (
	"github.com/quarckster/go-mpris-server/pkg/server"
	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/playback"
)

// Adapter connects the playback engine to MPRIS over D-Bus.
type Adapter struct {
	server *server.Server
}

// New creates and starts a new MPRIS adapter.
func New(service playback.Service, log *zap.Logger) (*Adapter, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Adapter{
		server: server.NewServer(identity, &rootAdapter{}, &playerAdapter{service: service}),
	}

	go func() {
		if err := a.server.Listen(); err != nil {
			log.Warn("mpris server stopped", zap.Error(err))
		}
	}()

	return a, nil
}

// Close stops the adapter and releases D-Bus resources.
func (a *Adapter) Close() error {
	return a.server.Stop()
}
