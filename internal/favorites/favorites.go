// Package favorites keeps the user's favorite tracks, persisted as a JSON
// list in the key-value store.
package favorites

import (
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/llehouerou/jamwaves/internal/catalog"
	"github.com/llehouerou/jamwaves/internal/state"
)

// StorageKey is the key the list is persisted under.
const StorageKey = "music-favorites"

// Store is an insertion-ordered set of tracks keyed by ID.
type Store struct {
	mu     sync.RWMutex
	kv     state.Interface
	log    *zap.Logger
	tracks []catalog.Track
}

// Open loads the persisted favorites. A missing or unreadable value starts
// an empty list; the problem is logged, never returned.
func Open(kv state.Interface, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{kv: kv, log: log, tracks: []catalog.Track{}}

	raw, ok, err := kv.Get(StorageKey)
	if err != nil {
		log.Warn("load favorites", zap.Error(err))
		return s
	}
	if !ok || raw == "" {
		return s
	}

	var tracks []catalog.Track
	if err := json.Unmarshal([]byte(raw), &tracks); err != nil {
		log.Warn("malformed favorites, starting empty", zap.Error(err))
		return s
	}
	for _, t := range tracks {
		if t.ID == "" || catalog.IndexOf(s.tracks, t.ID) >= 0 {
			continue
		}
		s.tracks = append(s.tracks, t)
	}
	return s
}

// Add inserts track at the end of the list. Adding a track already present
// changes nothing.
func (s *Store) Add(track catalog.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.addLocked(track)
	return err
}

// Remove deletes track from the list. Removing an absent track is a no-op.
func (s *Store) Remove(track catalog.Track) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.removeLocked(track.ID)
	return err
}

// Toggle adds or removes track and returns whether it is now a favorite.
// The membership check and the change happen under one lock.
func (s *Store) Toggle(track catalog.Track) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if removed, err := s.removeLocked(track.ID); removed {
		return false, err
	}
	_, err := s.addLocked(track)
	return true, err
}

func (s *Store) addLocked(track catalog.Track) (bool, error) {
	if catalog.IndexOf(s.tracks, track.ID) >= 0 {
		return false, nil
	}
	s.tracks = append(s.tracks, track)
	return true, s.persist()
}

func (s *Store) removeLocked(id string) (bool, error) {
	i := catalog.IndexOf(s.tracks, id)
	if i < 0 {
		return false, nil
	}
	s.tracks = slices.Delete(s.tracks, i, i+1)
	return true, s.persist()
}

func (s *Store) Contains(track catalog.Track) bool {
	return s.ContainsID(track.ID)
}

func (s *Store) ContainsID(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return catalog.IndexOf(s.tracks, id) >= 0
}

// Get returns the favorite with the given ID.
func (s *Store) Get(id string) (catalog.Track, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := catalog.IndexOf(s.tracks, id); i >= 0 {
		return s.tracks[i], true
	}
	return catalog.Track{}, false
}

// List returns a copy of the favorites in insertion order.
func (s *Store) List() []catalog.Track {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.tracks)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tracks)
}

// persist writes the whole list. The in-memory list stays updated even when
// the write fails. Caller must hold s.mu.
func (s *Store) persist() error {
	data, err := json.Marshal(s.tracks)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := s.kv.Set(StorageKey, string(data)); err != nil {
		s.log.Error("persist favorites", zap.Error(err))
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}
