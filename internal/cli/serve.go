package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/jamwaves/internal/api"
	"github.com/llehouerou/jamwaves/internal/errmsg"
)

func newServeCmd(o *options) *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog, favorites and player over HTTP",
		Long: `Starts the HTTP/JSON API. Playback happens on this machine; clients
drive it through /api/player.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if listen == "" {
				listen = o.cfg.GetListen()
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, o, listen)
		},
	}
	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	return cmd
}

func runServe(ctx context.Context, o *options, listen string) error {
	s, err := openServices(o, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	cc := o.cfg.GetCatalogConfig()
	srv := api.New(api.Options{
		Catalog:   s.catalog,
		Favorites: s.favorites,
		Playback:  s.engine,
		Limits: api.Limits{
			Trending:  cc.TrendingLimit,
			Playlists: cc.PlaylistLimit,
			Search:    cc.SearchLimit,
		},
		Logger: o.log,
	})

	g, ctx := errgroup.WithContext(ctx)
	s.start(ctx, g)
	g.Go(func() error {
		if err := srv.ListenAndServe(ctx, listen); err != nil {
			return errmsg.Wrap(errmsg.OpServerStart, err)
		}
		return nil
	})
	return g.Wait()
}
