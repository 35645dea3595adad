package playback

import "github.com/llehouerou/jamwaves/internal/catalog"

// Track is the catalog track the engine plays.
type Track = catalog.Track

func trackPtr(t *Track) *Track {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
