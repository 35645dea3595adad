package api

import (
	"net/http"

	"github.com/gorilla/mux"
)

func (s *Server) trendingHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", s.limits.Trending)
	if err != nil {
		serveError(w, http.StatusBadRequest, err.Error())
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		serveError(w, http.StatusBadRequest, err.Error())
		return
	}
	serveJSON(w, http.StatusOK, s.catalog.FetchTrending(r.Context(), limit, offset))
}

func (s *Server) playlistsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", s.limits.Playlists)
	if err != nil {
		serveError(w, http.StatusBadRequest, err.Error())
		return
	}
	serveJSON(w, http.StatusOK, s.catalog.FetchPlaylists(r.Context(), limit))
}

func (s *Server) playlistTracksHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", s.limits.Trending)
	if err != nil {
		serveError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := mux.Vars(r)["id"]
	serveJSON(w, http.StatusOK, s.catalog.FetchPlaylistTracks(r.Context(), id, limit))
}

func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", s.limits.Search)
	if err != nil {
		serveError(w, http.StatusBadRequest, err.Error())
		return
	}
	serveJSON(w, http.StatusOK, s.catalog.Search(r.Context(), r.URL.Query().Get("q"), limit))
}

func (s *Server) trackHandler(w http.ResponseWriter, r *http.Request) {
	track, ok := s.catalog.FetchTrackByID(r.Context(), mux.Vars(r)["id"])
	if !ok {
		serveError(w, http.StatusNotFound, "track not found")
		return
	}
	serveJSON(w, http.StatusOK, track)
}
