// Package catalog provides a read-only client for the Jamendo music catalog.
//
// Every operation degrades to an empty or absent result on failure; errors
// are logged and never returned to the caller.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/jamwaves/internal/artwork"
)

// ErrUpstream is wrapped by failures reported in the response envelope.
var ErrUpstream = errors.New("catalog upstream error")

const (
	DefaultBaseURL = "https://api.jamendo.com/v3.0"

	DefaultTrendingLimit      = 20
	DefaultPlaylistLimit      = 10
	DefaultSearchLimit        = 20
	DefaultPlaylistPreview    = 1
	DefaultArtworkTimeout     = 10 * time.Second
	DefaultArtworkConcurrency = 4

	userAgent = "jamwaves/1.0 (https://github.com/llehouerou/jamwaves)"
)

// Interface is the catalog contract consumed by the presentation layers.
type Interface interface {
	FetchTrending(ctx context.Context, limit, offset int) []Track
	FetchPlaylists(ctx context.Context, limit int) []Playlist
	FetchPlaylistTracks(ctx context.Context, playlistID string, limit int) []Track
	Search(ctx context.Context, query string, limit int) []Track
	FetchTrackByID(ctx context.Context, id string) (Track, bool)
}

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL            string
	ClientID           string
	HTTPClient         *http.Client
	Artwork            artwork.Generator // nil disables placeholder synthesis
	ArtworkTimeout     time.Duration
	ArtworkConcurrency int
	PlaylistPreview    int
	Logger             *zap.Logger
}

// Client talks to the Jamendo v3.0 API.
type Client struct {
	baseURL            string
	clientID           string
	httpClient         *http.Client
	artwork            artwork.Generator
	artworkTimeout     time.Duration
	artworkConcurrency int
	playlistPreview    int
	log                *zap.Logger
}

// New creates a catalog client.
func New(opts Options) *Client {
	c := &Client{
		baseURL:            strings.TrimSuffix(opts.BaseURL, "/"),
		clientID:           opts.ClientID,
		httpClient:         opts.HTTPClient,
		artwork:            opts.Artwork,
		artworkTimeout:     opts.ArtworkTimeout,
		artworkConcurrency: opts.ArtworkConcurrency,
		playlistPreview:    opts.PlaylistPreview,
		log:                opts.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if c.artworkTimeout <= 0 {
		c.artworkTimeout = DefaultArtworkTimeout
	}
	if c.artworkConcurrency <= 0 {
		c.artworkConcurrency = DefaultArtworkConcurrency
	}
	if c.playlistPreview <= 0 {
		c.playlistPreview = DefaultPlaylistPreview
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	return c
}

// FetchTrending returns tracks ordered by descending popularity.
func (c *Client) FetchTrending(ctx context.Context, limit, offset int) []Track {
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}
	offset = max(offset, 0)

	params := url.Values{}
	params.Set("order", "popularity_total")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	params.Set("include", "musicinfo stats")

	raw, err := get[rawTrack](ctx, c, "/tracks/", params)
	if err != nil {
		c.log.Warn("fetch trending tracks", zap.Error(err))
		return []Track{}
	}
	tracks := normalizeTracks(raw)
	c.fillTrackArtwork(ctx, tracks)
	return tracks
}

// Search returns tracks whose name matches query. An empty query returns
// an empty list without contacting the catalog.
func (c *Client) Search(ctx context.Context, query string, limit int) []Track {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Track{}
	}
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	params := url.Values{}
	params.Set("namesearch", query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("include", "musicinfo stats")

	raw, err := get[rawTrack](ctx, c, "/tracks/", params)
	if err != nil {
		c.log.Warn("search tracks", zap.String("query", query), zap.Error(err))
		return []Track{}
	}
	tracks := normalizeTracks(raw)
	c.fillTrackArtwork(ctx, tracks)
	return tracks
}

// FetchTrackByID looks a single track up. It reports false when the
// catalog does not know the identifier or the lookup failed.
func (c *Client) FetchTrackByID(ctx context.Context, id string) (Track, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Track{}, false
	}

	params := url.Values{}
	params.Set("id", id)

	raw, err := get[rawTrack](ctx, c, "/tracks/", params)
	if err != nil {
		c.log.Warn("fetch track", zap.String("id", id), zap.Error(err))
		return Track{}, false
	}
	tracks := normalizeTracks(raw)
	if len(tracks) == 0 {
		return Track{}, false
	}
	c.fillTrackArtwork(ctx, tracks[:1])
	return tracks[0], true
}

// FetchPlaylists returns playlists ordered by descending creation date,
// each carrying a short preview of its tracks.
func (c *Client) FetchPlaylists(ctx context.Context, limit int) []Playlist {
	if limit <= 0 {
		limit = DefaultPlaylistLimit
	}

	params := url.Values{}
	params.Set("order", "creationdate_desc")
	params.Set("limit", strconv.Itoa(limit))

	raw, err := get[rawPlaylist](ctx, c, "/playlists/", params)
	if err != nil {
		c.log.Warn("fetch playlists", zap.Error(err))
		return []Playlist{}
	}

	playlists := make([]Playlist, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" {
			continue
		}
		playlists = append(playlists, r.normalize())
	}

	var g errgroup.Group
	g.SetLimit(c.artworkConcurrency)
	for i := range playlists {
		g.Go(func() error {
			playlists[i].Tracks = c.playlistTracks(ctx, playlists[i].ID, c.playlistPreview)
			return nil
		})
	}
	_ = g.Wait()

	c.fillPlaylistArtwork(ctx, playlists)
	return playlists
}

// FetchPlaylistTracks returns up to limit tracks of a playlist, in
// playlist order.
func (c *Client) FetchPlaylistTracks(ctx context.Context, playlistID string, limit int) []Track {
	tracks := c.playlistTracks(ctx, playlistID, limit)
	c.fillTrackArtwork(ctx, tracks)
	return tracks
}

func (c *Client) playlistTracks(ctx context.Context, playlistID string, limit int) []Track {
	if playlistID == "" {
		return []Track{}
	}
	if limit <= 0 {
		limit = DefaultTrendingLimit
	}

	params := url.Values{}
	params.Set("id", playlistID)
	params.Set("limit", strconv.Itoa(limit))

	raw, err := get[rawPlaylist](ctx, c, "/playlists/tracks/", params)
	if err != nil {
		c.log.Warn("fetch playlist tracks", zap.String("playlist", playlistID), zap.Error(err))
		return []Track{}
	}

	var tracks []Track
	for _, p := range raw {
		tracks = append(tracks, normalizeTracks(p.Tracks)...)
	}
	if tracks == nil {
		tracks = []Track{}
	}
	return tracks
}

// get performs a GET on path and decodes the results list.
func get[T any](ctx context.Context, c *Client, path string, params url.Values) ([]T, error) {
	params.Set("client_id", c.clientID)
	params.Set("format", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	var result response[T]
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if result.Headers.Status != "" && result.Headers.Status != statusSuccess {
		return nil, fmt.Errorf("%w: %d %s", ErrUpstream, result.Headers.Code, result.Headers.ErrorMessage)
	}
	return result.Results, nil
}

// Verify Client implements Interface at compile time.
var _ Interface = (*Client)(nil)
