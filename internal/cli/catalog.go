package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/llehouerou/jamwaves/internal/errmsg"
)

func newTrendingCmd(o *options) *cobra.Command {
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "trending",
		Short: "List the most popular tracks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = o.cfg.GetCatalogConfig().TrendingLimit
			}
			tracks := newCatalog(o.cfg, o.log).FetchTrending(cmd.Context(), limit, offset)
			if o.jsonOut {
				return printJSON(o.out, tracks)
			}
			printTracks(o.out, tracks)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of tracks (default from config)")
	cmd.Flags().IntVar(&offset, "offset", 0, "skip this many tracks")
	return cmd
}

func newPlaylistsCmd(o *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "playlists",
		Short: "List the newest playlists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = o.cfg.GetCatalogConfig().PlaylistLimit
			}
			playlists := newCatalog(o.cfg, o.log).FetchPlaylists(cmd.Context(), limit)
			if o.jsonOut {
				return printJSON(o.out, playlists)
			}
			printPlaylists(o.out, playlists)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of playlists (default from config)")
	return cmd
}

func newSearchCmd(o *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "Search tracks by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = o.cfg.GetCatalogConfig().SearchLimit
			}
			query := strings.Join(args, " ")
			tracks := newCatalog(o.cfg, o.log).Search(cmd.Context(), query, limit)
			if o.jsonOut {
				return printJSON(o.out, tracks)
			}
			printTracks(o.out, tracks)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of results (default from config)")
	return cmd
}

func newTrackCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "track <id>",
		Short: "Show a single track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			track, ok := newCatalog(o.cfg, o.log).FetchTrackByID(cmd.Context(), args[0])
			if !ok {
				return errmsg.Wrap(errmsg.OpCatalogTrack, fmt.Errorf("track %q not found", args[0]))
			}
			if o.jsonOut {
				return printJSON(o.out, track)
			}
			printTrack(o.out, track)
			return nil
		},
	}
}
