package catalog

import (
	"encoding/json"
	"time"
)

// Track is a playable catalog item. Tracks are compared by ID only.
type Track struct {
	ID         string
	Name       string
	ArtistName string
	AlbumName  string
	Duration   time.Duration
	Audio      string // playable audio URL
	Image      string // artwork URL, empty when none could be found
	Position   int    // position inside a playlist, 0 when unset
}

// Equal reports whether both tracks share the same identifier.
func (t Track) Equal(o Track) bool {
	return t.ID == o.ID
}

// trackJSON is the serialized form: duration in whole seconds.
type trackJSON struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name,omitempty"`
	Duration   int    `json:"duration"`
	Audio      string `json:"audio"`
	Image      string `json:"image,omitempty"`
	Position   int    `json:"position,omitempty"`
}

// MarshalJSON encodes the track with its duration in seconds.
func (t Track) MarshalJSON() ([]byte, error) {
	return json.Marshal(trackJSON{
		ID:         t.ID,
		Name:       t.Name,
		ArtistName: t.ArtistName,
		AlbumName:  t.AlbumName,
		Duration:   int(t.Duration / time.Second),
		Audio:      t.Audio,
		Image:      t.Image,
		Position:   t.Position,
	})
}

// UnmarshalJSON decodes a track written by MarshalJSON.
func (t *Track) UnmarshalJSON(data []byte) error {
	var j trackJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	*t = Track{
		ID:         j.ID,
		Name:       j.Name,
		ArtistName: j.ArtistName,
		AlbumName:  j.AlbumName,
		Duration:   time.Duration(max(j.Duration, 0)) * time.Second,
		Audio:      j.Audio,
		Image:      j.Image,
		Position:   j.Position,
	}
	return nil
}

// Playlist is a named, ordered collection of tracks owned by a user.
// Tracks may only hold a short preview.
type Playlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"creation_date"`
	Image     string    `json:"image,omitempty"`
	Tracks    []Track   `json:"tracks"`
}

// IndexOf returns the position of the track with the given ID, or -1.
func IndexOf(tracks []Track, id string) int {
	for i, t := range tracks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
