package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/llehouerou/jamwaves/internal/errmsg"
	"github.com/llehouerou/jamwaves/internal/favorites"
)

func newFavoritesCmd(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "Manage favorite tracks",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List favorite tracks",
			Args:  cobra.NoArgs,
			RunE: func(_ *cobra.Command, _ []string) error {
				return o.withFavorites(func(favs *favorites.Store) error {
					tracks := favs.List()
					if o.jsonOut {
						return printJSON(o.out, tracks)
					}
					printTracks(o.out, tracks)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "add <id>",
			Short: "Add a track to favorites",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return o.withFavorites(func(favs *favorites.Store) error {
					track, ok := newCatalog(o.cfg, o.log).FetchTrackByID(cmd.Context(), args[0])
					if !ok {
						return errmsg.Wrap(errmsg.OpCatalogTrack, fmt.Errorf("track %q not found", args[0]))
					}
					if err := favs.Add(track); err != nil {
						return errmsg.Wrap(errmsg.OpFavoriteToggle, err)
					}
					if o.jsonOut {
						return printJSON(o.out, track)
					}
					fmt.Fprintf(o.out, "Added %s - %s\n", track.ArtistName, track.Name)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:     "remove <id>",
			Aliases: []string{"rm"},
			Short:   "Remove a track from favorites",
			Args:    cobra.ExactArgs(1),
			RunE: func(_ *cobra.Command, args []string) error {
				return o.withFavorites(func(favs *favorites.Store) error {
					track, ok := favs.Get(args[0])
					if !ok {
						return errmsg.Wrap(errmsg.OpFavoriteToggle, fmt.Errorf("track %q is not a favorite", args[0]))
					}
					if err := favs.Remove(track); err != nil {
						return errmsg.Wrap(errmsg.OpFavoriteToggle, err)
					}
					if !o.jsonOut {
						fmt.Fprintf(o.out, "Removed %s - %s\n", track.ArtistName, track.Name)
					}
					return nil
				})
			},
		},
	)
	return cmd
}

func (o *options) withFavorites(fn func(*favorites.Store) error) error {
	store, err := openStore(o.cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(favorites.Open(store, o.log.Named("favorites")))
}
