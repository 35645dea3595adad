// Package api serves the catalog, favorites and transport over HTTP/JSON.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/playback"
)

const shutdownTimeout = 5 * time.Second

// Favorites is the part of the favorites store the API needs.
type Favorites interface {
	List() []catalog.Track
	Get(id string) (catalog.Track, bool)
	Add(track catalog.Track) error
	Remove(track catalog.Track) error
}

// Limits are the default page sizes used when a request omits limit.
type Limits struct {
	Trending  int
	Playlists int
	Search    int
}

type Options struct {
	Catalog   catalog.Interface
	Favorites Favorites
	Playback  playback.Service
	Limits    Limits
	Logger    *zap.Logger
}

// Server holds the HTTP handlers.
type Server struct {
	catalog   catalog.Interface
	favorites Favorites
	playback  playback.Service
	limits    Limits
	log       *zap.Logger
}

func New(o Options) *Server {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Limits.Trending <= 0 {
		o.Limits.Trending = catalog.DefaultTrendingLimit
	}
	if o.Limits.Playlists <= 0 {
		o.Limits.Playlists = catalog.DefaultPlaylistLimit
	}
	if o.Limits.Search <= 0 {
		o.Limits.Search = catalog.DefaultSearchLimit
	}
	return &Server{
		catalog:   o.Catalog,
		favorites: o.Favorites,
		playback:  o.Playback,
		limits:    o.Limits,
		log:       o.Logger,
	}
}

// RegisterHandlers installs the /api routes on r.
func (s *Server) RegisterHandlers(r *mux.Router) {
	gzip := handlers.CompressHandler

	a := r.PathPrefix("/api/").Subrouter()
	a.Handle("/trending", gzip(http.HandlerFunc(s.trendingHandler))).Methods(http.MethodGet)
	a.Handle("/playlists", gzip(http.HandlerFunc(s.playlistsHandler))).Methods(http.MethodGet)
	a.Handle("/playlists/{id}/tracks", gzip(http.HandlerFunc(s.playlistTracksHandler))).Methods(http.MethodGet)
	a.Handle("/search", gzip(http.HandlerFunc(s.searchHandler))).Methods(http.MethodGet)
	a.Handle("/tracks/{id}", gzip(http.HandlerFunc(s.trackHandler))).Methods(http.MethodGet)

	a.Handle("/favorites", gzip(http.HandlerFunc(s.favoritesHandler))).Methods(http.MethodGet)
	a.HandleFunc("/favorites/{id}", s.favoriteAddHandler).Methods(http.MethodPut)
	a.HandleFunc("/favorites/{id}", s.favoriteRemoveHandler).Methods(http.MethodDelete)

	a.HandleFunc("/player", s.playerStateHandler).Methods(http.MethodGet)
	a.HandleFunc("/player/play", s.playHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/toggle", s.toggleHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/next", s.nextHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/previous", s.previousHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/shuffle", s.shuffleHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/repeat", s.repeatHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/seek", s.seekHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/volume", s.volumeHandler).Methods(http.MethodPost)
	a.HandleFunc("/player/mute", s.muteHandler).Methods(http.MethodPost)
}

// Handler returns the complete handler with access logging.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	s.RegisterHandlers(r)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		serveError(w, http.StatusNotFound, "not found")
	})
	return AccessLog(s.log.Named("http"), r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving HTTP", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func serveJSON(w http.ResponseWriter, status int, obj any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(obj)
}

type errorResponse struct {
	Error string `json:"error"`
}

func serveError(w http.ResponseWriter, status int, msg string) {
	serveJSON(w, status, errorResponse{Error: msg})
}

// queryInt reads a non-negative integer query parameter, def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, v)
	}
	return n, nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request: %w", err)
	}
	return nil
}
