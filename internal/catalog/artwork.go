package catalog

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/jamwaves/internal/artwork"
)

// fillTrackArtwork synthesizes artwork for tracks that have none.
// Failures leave the image empty.
func (c *Client) fillTrackArtwork(ctx context.Context, tracks []Track) {
	if c.artwork == nil {
		return
	}
	var g errgroup.Group
	g.SetLimit(c.artworkConcurrency)
	for i := range tracks {
		if tracks[i].Image != "" {
			continue
		}
		g.Go(func() error {
			prompt := artwork.TrackPrompt(tracks[i].Name, tracks[i].ArtistName)
			tracks[i].Image = c.generate(ctx, prompt, tracks[i].ID)
			return nil
		})
	}
	_ = g.Wait()
}

// fillPlaylistArtwork does the same for playlists and their preview tracks.
func (c *Client) fillPlaylistArtwork(ctx context.Context, playlists []Playlist) {
	if c.artwork == nil {
		return
	}
	var g errgroup.Group
	g.SetLimit(c.artworkConcurrency)
	for i := range playlists {
		if playlists[i].Image == "" {
			g.Go(func() error {
				prompt := artwork.PlaylistPrompt(playlists[i].Name)
				playlists[i].Image = c.generate(ctx, prompt, playlists[i].ID)
				return nil
			})
		}
	}
	_ = g.Wait()
	for i := range playlists {
		c.fillTrackArtwork(ctx, playlists[i].Tracks)
	}
}

func (c *Client) generate(ctx context.Context, prompt, seed string) string {
	ctx, cancel := context.WithTimeout(ctx, c.artworkTimeout)
	defer cancel()

	img, err := c.artwork.Generate(ctx, prompt, seed)
	if err != nil {
		c.log.Debug("generate artwork", zap.String("seed", seed), zap.Error(err))
		return ""
	}
	return img
}
