package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const trendingBody = `{
  "headers": {"status": "success", "code": 0, "error_message": "", "results_count": 2},
  "results": [
    {"id": "101", "name": "First", "artist_name": "Alpha", "album_name": "One", "duration": 200,
     "audio": "https://audio.example/101.mp3", "image": "https://img.example/101.jpg"},
    {"id": 102, "name": "", "artist_name": "", "duration": "185",
     "audio": "https://audio.example/102.mp3", "image": "", "album_image": "https://img.example/album.jpg"}
  ]
}`

type recorder struct {
	mu      sync.Mutex
	queries []url.Values
	paths   []string
}

func (r *recorder) record(req *http.Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, req.URL.Query())
	r.paths = append(r.paths, req.URL.Path)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queries)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts Options) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	if opts.ClientID == "" {
		opts.ClientID = "test-client"
	}
	return New(opts), rec
}

func TestFetchTrending(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(trendingBody))
	}, Options{})

	tracks := c.FetchTrending(context.Background(), 0, 0)

	require.Len(t, tracks, 2)
	assert.Equal(t, "101", tracks[0].ID)
	assert.Equal(t, "First", tracks[0].Name)
	assert.Equal(t, 200*time.Second, tracks[0].Duration)

	assert.Equal(t, "102", tracks[1].ID, "numeric ids are read as strings")
	assert.Equal(t, unknownTrack, tracks[1].Name)
	assert.Equal(t, unknownArtist, tracks[1].ArtistName)
	assert.Equal(t, 185*time.Second, tracks[1].Duration)
	assert.Equal(t, "https://img.example/album.jpg", tracks[1].Image)

	require.Equal(t, 1, rec.count())
	q := rec.queries[0]
	assert.Equal(t, "/tracks/", rec.paths[0])
	assert.Equal(t, "test-client", q.Get("client_id"))
	assert.Equal(t, "json", q.Get("format"))
	assert.Equal(t, "popularity_total", q.Get("order"))
	assert.Equal(t, "20", q.Get("limit"))
	assert.Equal(t, "0", q.Get("offset"))
}

func TestFetchTrending_LimitAndOffset(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"headers":{"status":"success"},"results":[]}`))
	}, Options{})

	tracks := c.FetchTrending(context.Background(), 5, 40)

	assert.Empty(t, tracks)
	assert.NotNil(t, tracks)
	assert.Equal(t, "5", rec.queries[0].Get("limit"))
	assert.Equal(t, "40", rec.queries[0].Get("offset"))
}

func TestFetchTrending_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "upstream status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"headers":{"status":"failed","code":5,"error_message":"bad client id"},"results":[]}`))
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{not json`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			c, _ := newTestClient(t, tt.handler, Options{Logger: zap.New(core)})

			tracks := c.FetchTrending(context.Background(), 10, 0)

			assert.NotNil(t, tracks)
			assert.Empty(t, tracks)
			assert.Equal(t, 1, logs.FilterMessage("fetch trending tracks").Len())
		})
	}
}

func TestGet_UpstreamError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"headers":{"status":"failed","code":5,"error_message":"nope"},"results":[]}`))
	}, Options{})

	_, err := get[rawTrack](context.Background(), c, "/tracks/", url.Values{})
	if !errors.Is(err, ErrUpstream) {
		t.Errorf("err = %v, want ErrUpstream", err)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(trendingBody))
	}, Options{})

	for _, q := range []string{"", "   ", "\t\n"} {
		tracks := c.Search(context.Background(), q, 0)
		assert.NotNil(t, tracks)
		assert.Empty(t, tracks)
	}
	assert.Equal(t, 0, rec.count(), "blank queries should not reach the network")
}

func TestSearch(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(trendingBody))
	}, Options{})

	tracks := c.Search(context.Background(), "  rock  ", 0)

	require.Len(t, tracks, 2)
	assert.Equal(t, "rock", rec.queries[0].Get("namesearch"))
	assert.Equal(t, "20", rec.queries[0].Get("limit"))
}

func TestFetchTrackByID(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "101" {
			_, _ = w.Write([]byte(trendingBody))
			return
		}
		_, _ = w.Write([]byte(`{"headers":{"status":"success"},"results":[]}`))
	}, Options{})

	track, ok := c.FetchTrackByID(context.Background(), "101")
	require.True(t, ok)
	assert.Equal(t, "101", track.ID)
	assert.Equal(t, "101", rec.queries[0].Get("id"))

	_, ok = c.FetchTrackByID(context.Background(), "999")
	assert.False(t, ok)

	_, ok = c.FetchTrackByID(context.Background(), "")
	assert.False(t, ok)
	assert.Equal(t, 2, rec.count())
}

func TestFetchPlaylists(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/playlists/":
			_, _ = w.Write([]byte(`{"headers":{"status":"success"},"results":[
				{"id":"7","name":"Chill","user_name":"bob","creationdate":"2024-03-01"},
				{"id":"8","name":"","user_name":""}
			]}`))
		case "/playlists/tracks/":
			id := r.URL.Query().Get("id")
			_, _ = w.Write([]byte(`{"headers":{"status":"success"},"results":[
				{"id":"` + id + `","name":"pl","tracks":[
					{"id":"t` + id + `","name":"Track","artist_name":"A","duration":60,"audio":"a","position":1}
				]}
			]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}, Options{})

	playlists := c.FetchPlaylists(context.Background(), 0)

	require.Len(t, playlists, 2)
	assert.Equal(t, "Chill", playlists[0].Name)
	assert.Equal(t, "bob", playlists[0].UserName)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), playlists[0].CreatedAt)
	require.Len(t, playlists[0].Tracks, 1)
	assert.Equal(t, "t7", playlists[0].Tracks[0].ID)

	assert.Equal(t, unknownPlaylist, playlists[1].Name)
	assert.Equal(t, unknownUser, playlists[1].UserName)
	require.Len(t, playlists[1].Tracks, 1)
	assert.Equal(t, "t8", playlists[1].Tracks[0].ID)

	assert.Equal(t, 3, rec.count())
	assert.Equal(t, "creationdate_desc", rec.queries[0].Get("order"))
	assert.Equal(t, "10", rec.queries[0].Get("limit"))
	for _, q := range rec.queries[1:] {
		assert.Equal(t, "1", q.Get("limit"), "preview should fetch a single track")
	}
}

func TestFetchPlaylists_PreviewFailureKeepsPlaylist(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/playlists/" {
			_, _ = w.Write([]byte(`{"headers":{"status":"success"},"results":[{"id":"7","name":"Chill"}]}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}, Options{})

	playlists := c.FetchPlaylists(context.Background(), 3)

	require.Len(t, playlists, 1)
	assert.NotNil(t, playlists[0].Tracks)
	assert.Empty(t, playlists[0].Tracks)
}

type stubGenerator struct {
	calls atomic.Int32
	err   error
}

func (g *stubGenerator) Generate(_ context.Context, prompt, seed string) (string, error) {
	g.calls.Add(1)
	if g.err != nil {
		return "", g.err
	}
	return "gen://" + seed + "/" + url.PathEscape(prompt), nil
}

func TestArtworkFill(t *testing.T) {
	gen := &stubGenerator{}
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"headers":{"status":"success"},"results":[
			{"id":"1","name":"Has","artist_name":"A","image":"https://img.example/1.jpg"},
			{"id":"2","name":"Missing","artist_name":"B","image":""}
		]}`))
	}, Options{Artwork: gen})

	tracks := c.FetchTrending(context.Background(), 2, 0)

	require.Len(t, tracks, 2)
	assert.Equal(t, "https://img.example/1.jpg", tracks[0].Image, "existing artwork is kept")
	assert.Contains(t, tracks[1].Image, "gen://2/")
	assert.Equal(t, int32(1), gen.calls.Load())
}

func TestArtworkFill_FailureLeavesEmpty(t *testing.T) {
	gen := &stubGenerator{err: errors.New("boom")}
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"headers":{"status":"success"},"results":[{"id":"2","name":"Missing","image":""}]}`))
	}, Options{Artwork: gen})

	tracks := c.FetchTrending(context.Background(), 1, 0)

	require.Len(t, tracks, 1)
	assert.Empty(t, tracks[0].Image)
}

func TestTrackJSON(t *testing.T) {
	in := Track{ID: "1", Name: "n", ArtistName: "a", Duration: 90 * time.Second, Audio: "u"}
	data, err := in.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"duration":90`)

	var out Track
	require.NoError(t, out.UnmarshalJSON(data))
	assert.Equal(t, in, out)
}

func TestIndexOf(t *testing.T) {
	tracks := []Track{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, IndexOf(tracks, "b"))
	assert.Equal(t, -1, IndexOf(tracks, "z"))
	assert.True(t, Track{ID: "a", Name: "x"}.Equal(Track{ID: "a", Name: "y"}))
}
