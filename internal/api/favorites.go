package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

func (s *Server) favoritesHandler(w http.ResponseWriter, _ *http.Request) {
	serveJSON(w, http.StatusOK, s.favorites.List())
}

// favoriteAddHandler resolves the id through the catalog unless the track
// is already a favorite.
func (s *Server) favoriteAddHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if track, ok := s.favorites.Get(id); ok {
		serveJSON(w, http.StatusOK, track)
		return
	}

	track, ok := s.catalog.FetchTrackByID(r.Context(), id)
	if !ok {
		serveError(w, http.StatusNotFound, "track not found")
		return
	}
	if err := s.favorites.Add(track); err != nil {
		s.log.Error("add favorite", zap.String("id", id), zap.Error(err))
		serveError(w, http.StatusInternalServerError, "could not save favorites")
		return
	}
	serveJSON(w, http.StatusCreated, track)
}

func (s *Server) favoriteRemoveHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	track, ok := s.favorites.Get(id)
	if !ok {
		serveError(w, http.StatusNotFound, "not a favorite")
		return
	}
	if err := s.favorites.Remove(track); err != nil {
		s.log.Error("remove favorite", zap.String("id", id), zap.Error(err))
		serveError(w, http.StatusInternalServerError, "could not save favorites")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
