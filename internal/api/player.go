package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/playback"
)

const lookupConcurrency = 4

// playerState is the JSON view of a playback snapshot.
type playerState struct {
	Status       string          `json:"status"`
	CurrentTrack *catalog.Track  `json:"current_track"`
	Position     float64         `json:"position"` // seconds
	Duration     float64         `json:"duration"` // seconds
	Volume       float64         `json:"volume"`
	Shuffle      bool            `json:"shuffle"`
	Repeat       bool            `json:"repeat"`
	Favorite     bool            `json:"favorite"`
	Queue        []catalog.Track `json:"queue"`
	CurrentIndex int             `json:"current_index"`
}

func (s *Server) snapshot() playerState {
	st := s.playback.State()
	queue := st.Queue
	if queue == nil {
		queue = []catalog.Track{}
	}
	fav := false
	if st.CurrentTrack != nil {
		fav = s.playback.IsFavorite(*st.CurrentTrack)
	}
	return playerState{
		Status:       st.Status().String(),
		CurrentTrack: st.CurrentTrack,
		Position:     st.Position.Seconds(),
		Duration:     st.Duration.Seconds(),
		Volume:       st.Volume,
		Shuffle:      st.Shuffle,
		Repeat:       st.Repeat,
		Favorite:     fav,
		Queue:        queue,
		CurrentIndex: st.CurrentIndex,
	}
}

func (s *Server) playerStateHandler(w http.ResponseWriter, _ *http.Request) {
	serveJSON(w, http.StatusOK, s.snapshot())
}

// playRequest selects what to play, either by catalog ids or with full
// track objects.
type playRequest struct {
	ID     string          `json:"id"`
	Queue  []string        `json:"queue"`
	Track  *catalog.Track  `json:"track"`
	Tracks []catalog.Track `json:"tracks"`
}

func (s *Server) playHandler(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := decodeBody(w, r, &req); err != nil {
		serveError(w, http.StatusBadRequest, err.Error())
		return
	}

	var (
		track catalog.Track
		queue []catalog.Track
	)
	switch {
	case req.Track != nil:
		if req.Track.ID == "" || req.Track.Audio == "" {
			serveError(w, http.StatusBadRequest, "track needs id and audio")
			return
		}
		track, queue = *req.Track, req.Tracks
	case req.ID != "":
		var ok bool
		track, ok = s.catalog.FetchTrackByID(r.Context(), req.ID)
		if !ok {
			serveError(w, http.StatusNotFound, "track not found")
			return
		}
		queue = s.resolveQueue(r.Context(), req.Queue, track)
	default:
		serveError(w, http.StatusBadRequest, "id or track required")
		return
	}

	if err := s.playback.PlayTrack(track, queue...); err != nil {
		s.transportError(w, "play", err)
		return
	}
	serveJSON(w, http.StatusOK, s.snapshot())
}

// resolveQueue looks ids up in parallel, keeping their order and dropping
// unknown ones. The already fetched track is reused.
func (s *Server) resolveQueue(ctx context.Context, ids []string, known catalog.Track) []catalog.Track {
	if len(ids) == 0 {
		return nil
	}
	found := make([]*catalog.Track, len(ids))

	var g errgroup.Group
	g.SetLimit(lookupConcurrency)
	for i, id := range ids {
		if id == known.ID {
			found[i] = &known
			continue
		}
		g.Go(func() error {
			if t, ok := s.catalog.FetchTrackByID(ctx, id); ok {
				found[i] = &t
			}
			return nil
		})
	}
	_ = g.Wait()

	queue := make([]catalog.Track, 0, len(ids))
	for _, t := range found {
		if t != nil {
			queue = append(queue, *t)
		}
	}
	return queue
}

func (s *Server) toggleHandler(w http.ResponseWriter, _ *http.Request) {
	s.transport(w, "toggle", s.playback.TogglePlay)
}

func (s *Server) nextHandler(w http.ResponseWriter, _ *http.Request) {
	s.transport(w, "next", s.playback.Next)
}

func (s *Server) previousHandler(w http.ResponseWriter, _ *http.Request) {
	s.transport(w, "previous", s.playback.Previous)
}

func (s *Server) shuffleHandler(w http.ResponseWriter, _ *http.Request) {
	s.playback.ToggleShuffle()
	serveJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) repeatHandler(w http.ResponseWriter, _ *http.Request) {
	s.playback.ToggleRepeat()
	serveJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) muteHandler(w http.ResponseWriter, _ *http.Request) {
	s.playback.ToggleMute()
	serveJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) seekHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Position *float64 `json:"position"` // seconds
	}
	if err := decodeBody(w, r, &req); err != nil || req.Position == nil {
		serveError(w, http.StatusBadRequest, "position required")
		return
	}
	s.playback.SeekTo(time.Duration(*req.Position * float64(time.Second)))
	serveJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) volumeHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Volume *float64 `json:"volume"`
	}
	if err := decodeBody(w, r, &req); err != nil || req.Volume == nil {
		serveError(w, http.StatusBadRequest, "volume required")
		return
	}
	s.playback.SetVolume(*req.Volume)
	serveJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) transport(w http.ResponseWriter, op string, fn func() error) {
	if err := fn(); err != nil {
		s.transportError(w, op, err)
		return
	}
	serveJSON(w, http.StatusOK, s.snapshot())
}

func (s *Server) transportError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, playback.ErrClosed) {
		serveError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.log.Error("transport", zap.String("op", op), zap.Error(err))
	serveError(w, http.StatusInternalServerError, err.Error())
}
