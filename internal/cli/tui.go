package cli

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/jamwaves/internal/app"
	"github.com/llehouerou/jamwaves/internal/icons"
	"github.com/llehouerou/jamwaves/internal/stderr"
)

// runTUI starts the interactive player and blocks until the user quits.
func runTUI(ctx context.Context, o *options) error {
	// ALSA writes to fd 2 while the audio device opens; capture it first.
	if err := stderr.Start(o.log.Named("stderr")); err != nil {
		o.log.Warn("stderr capture unavailable", zap.Error(err))
	}
	defer stderr.Stop()

	s, err := openServices(o, nil)
	if err != nil {
		return err
	}

	icons.Init(o.cfg.Icons)

	ctx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(ctx)
	s.start(gctx, g)

	cc := o.cfg.GetCatalogConfig()
	runErr := app.Run(gctx, app.Options{
		Catalog:   s.catalog,
		Favorites: s.favorites,
		Playback:  s.engine,
		Limits: app.Limits{
			Trending:       cc.TrendingLimit,
			Playlists:      cc.PlaylistLimit,
			Search:         cc.SearchLimit,
			PlaylistTracks: cc.TrendingLimit,
		},
		Logger: o.log.Named("ui"),
	})

	cancel()
	waitErr := g.Wait()
	closeErr := s.Close()
	return errors.Join(runErr, waitErr, closeErr)
}
