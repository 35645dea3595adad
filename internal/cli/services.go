package cli

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/jamwaves/internal/artwork"
	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/config"
	"github.com/llehouerou/jamwaves/internal/errmsg"
	"github.com/llehouerou/jamwaves/internal/favorites"
	"github.com/llehouerou/jamwaves/internal/lastfm"
	"github.com/llehouerou/jamwaves/internal/mpris"
	"github.com/llehouerou/jamwaves/internal/notify"
	"github.com/llehouerou/jamwaves/internal/playback"
	"github.com/llehouerou/jamwaves/internal/player"
	"github.com/llehouerou/jamwaves/internal/state"
)

func newArtwork(cfg config.ArtworkConfig) artwork.Generator {
	switch cfg.Mode {
	case "generate":
		return artwork.NewClient(cfg.Endpoint, cfg.Width, cfg.Height)
	case "off":
		return nil
	default:
		return artwork.URLBuilder{BaseURL: cfg.Endpoint}
	}
}

func newCatalog(cfg *config.Config, log *zap.Logger) *catalog.Client {
	cc := cfg.GetCatalogConfig()
	ac := cfg.GetArtworkConfig()
	return catalog.New(catalog.Options{
		BaseURL:            cfg.Jamendo.APIURL,
		ClientID:           cfg.ClientID(),
		HTTPClient:         &http.Client{Timeout: cc.Timeout},
		Artwork:            newArtwork(ac),
		ArtworkTimeout:     ac.Timeout,
		ArtworkConcurrency: ac.Concurrency,
		PlaylistPreview:    cc.PlaylistPreview,
		Logger:             log.Named("catalog"),
	})
}

func openStore(cfg *config.Config) (*state.Manager, error) {
	var (
		m   *state.Manager
		err error
	)
	if cfg.Database != "" {
		m, err = state.OpenPath(cfg.Database)
	} else {
		m, err = state.Open()
	}
	if err != nil {
		return nil, errmsg.Wrap(errmsg.OpStateOpen, err)
	}
	return m, nil
}

// services are the long-lived components behind the TUI and the server.
type services struct {
	cfg       *config.Config
	log       *zap.Logger
	store     *state.Manager
	favorites *favorites.Store
	catalog   *catalog.Client
	engine    *playback.Engine

	closers []func() error
}

// openServices builds the full stack. backend overrides the audio output
// when not nil.
func openServices(o *options, backend player.Interface) (*services, error) {
	store, err := openStore(o.cfg)
	if err != nil {
		return nil, err
	}

	favs := favorites.Open(store, o.log.Named("favorites"))
	if backend == nil {
		backend = player.New(player.Options{
			Volume: player.Level(o.cfg.GetVolume()),
			Logger: o.log.Named("player"),
		})
	}
	engine := playback.New(backend, playback.Options{
		Volume:    player.Level(o.cfg.GetVolume()),
		Favorites: favs,
		Logger:    o.log.Named("playback"),
	})

	return &services{
		cfg:       o.cfg,
		log:       o.log,
		store:     store,
		favorites: favs,
		catalog:   newCatalog(o.cfg, o.log),
		engine:    engine,
		closers:   []func() error{engine.Close, store.Close},
	}, nil
}

// start runs the engine loop and the enabled desktop integrations in g.
func (s *services) start(ctx context.Context, g *errgroup.Group) {
	g.Go(func() error {
		if err := s.engine.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if s.cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			s.log.Warn("desktop notifications unavailable", zap.Error(err))
		} else {
			w := notify.NewWatcher(n, s.log.Named("notify"))
			sub := s.engine.Subscribe()
			g.Go(func() error {
				w.Run(ctx, sub)
				return nil
			})
		}
	}

	if s.cfg.MPRISEnabled() {
		a, err := mpris.New(s.engine, s.log.Named("mpris"))
		if err != nil {
			s.log.Warn("mpris unavailable", zap.Error(err))
		} else {
			s.closers = append([]func() error{a.Close}, s.closers...)
		}
	}

	if scrobbler := s.newScrobbler(); scrobbler != nil {
		sub := s.engine.Subscribe()
		g.Go(func() error {
			scrobbler.Run(ctx, sub)
			return nil
		})
	}
}

// newScrobbler returns nil unless Last.fm is configured and linked.
func (s *services) newScrobbler() *lastfm.Scrobbler {
	if !s.cfg.HasLastfmConfig() {
		return nil
	}
	sess, err := state.GetLastfmSession(s.store)
	if err != nil {
		s.log.Warn("load lastfm session", zap.Error(err))
		return nil
	}
	if sess == nil {
		s.log.Info("lastfm configured but not linked; run 'jamwaves lastfm login'")
		return nil
	}
	client := lastfm.New(s.cfg.Lastfm.APIKey, s.cfg.Lastfm.APISecret)
	client.SetSessionKey(sess.SessionKey)
	return lastfm.NewScrobbler(client, s.log.Named("lastfm"))
}

// Close releases everything in reverse order of acquisition.
func (s *services) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
