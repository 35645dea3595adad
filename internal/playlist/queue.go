// Package playlist holds the ordered track list the engine plays from.
package playlist

import (
	"math/rand/v2"
	"slices"

	"github.com/llehouerou/jamwaves/internal/catalog"
)

// Track is a catalog track placed in the queue.
type Track = catalog.Track

// Queue is the list a track was played from plus the position in it.
// Stepping wraps around both ends.
type Queue struct {
	tracks []Track
	index  int // -1 when empty
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{index: -1}
}

// Replace installs tracks positioned on index. An out-of-range index
// falls back to 0. It returns the current track, nil for an empty list.
func (q *Queue) Replace(tracks []Track, index int) *Track {
	q.tracks = slices.Clone(tracks)
	q.index = -1
	if len(q.tracks) == 0 {
		return nil
	}
	if index < 0 || index >= len(q.tracks) {
		index = 0
	}
	q.index = index
	return q.Current()
}

// Current returns the track at the position, or nil.
func (q *Queue) Current() *Track {
	if q.index < 0 || q.index >= len(q.tracks) {
		return nil
	}
	return &q.tracks[q.index]
}

func (q *Queue) CurrentIndex() int {
	return q.index
}

// Next moves one forward, from the last track back to the first.
func (q *Queue) Next() *Track {
	return q.step(1)
}

// Previous moves one back, from the first track to the last.
func (q *Queue) Previous() *Track {
	return q.step(-1)
}

func (q *Queue) step(delta int) *Track {
	n := len(q.tracks)
	if n == 0 {
		return nil
	}
	q.index = ((max(q.index, 0)+delta)%n + n) % n
	return q.Current()
}

// Random moves to a uniformly chosen position other than the current one.
// A single track stays where it is.
func (q *Queue) Random(rng *rand.Rand) *Track {
	n := len(q.tracks)
	switch n {
	case 0:
		return nil
	case 1:
		q.index = 0
		return q.Current()
	}
	i := rng.IntN(n - 1)
	if q.index >= 0 && i >= q.index {
		i++
	}
	q.index = i
	return q.Current()
}

// Tracks returns a copy of the queue contents.
func (q *Queue) Tracks() []Track {
	return slices.Clone(q.tracks)
}

func (q *Queue) Len() int {
	return len(q.tracks)
}

func (q *Queue) IsEmpty() bool {
	return len(q.tracks) == 0
}
