package catalog

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

const (
	unknownTrack    = "Unknown Track"
	unknownArtist   = "Unknown Artist"
	unknownPlaylist = "Unknown Playlist"
	unknownUser     = "Unknown User"

	statusSuccess = "success"
)

// response is the envelope every Jamendo v3.0 endpoint returns.
type response[T any] struct {
	Headers struct {
		Status       string `json:"status"`
		Code         int    `json:"code"`
		ErrorMessage string `json:"error_message"`
		ResultsCount int    `json:"results_count"`
	} `json:"headers"`
	Results []T `json:"results"`
}

// flexString accepts a JSON string or number.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexInt accepts a JSON number or a numeric string. Unparsable values
// decode as zero rather than failing the whole page.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	var s flexString
	if err := s.UnmarshalJSON(data); err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(string(s), 64)
	if err != nil {
		*n = 0
		return nil //nolint:nilerr // loosely typed upstream field
	}
	*n = flexInt(f)
	return nil
}

type rawTrack struct {
	ID         flexString `json:"id"`
	Name       string     `json:"name"`
	TrackName  string     `json:"track_name"`
	ArtistName string     `json:"artist_name"`
	AlbumName  string     `json:"album_name"`
	Duration   flexInt    `json:"duration"`
	Audio      string     `json:"audio"`
	Image      string     `json:"image"`
	AlbumImage string     `json:"album_image"`
	Position   flexInt    `json:"position"`
}

type rawPlaylist struct {
	ID           flexString `json:"id"`
	Name         string     `json:"name"`
	UserName     string     `json:"user_name"`
	CreationDate string     `json:"creationdate"`
	Image        string     `json:"image"`
	Tracks       []rawTrack `json:"tracks"`
}

func (r rawTrack) normalize() Track {
	name := r.Name
	if name == "" {
		name = r.TrackName
	}
	if name == "" {
		name = unknownTrack
	}
	artist := r.ArtistName
	if artist == "" {
		artist = unknownArtist
	}
	image := r.Image
	if image == "" {
		image = r.AlbumImage
	}
	return Track{
		ID:         string(r.ID),
		Name:       name,
		ArtistName: artist,
		AlbumName:  r.AlbumName,
		Duration:   time.Duration(max(int(r.Duration), 0)) * time.Second,
		Audio:      r.Audio,
		Image:      image,
		Position:   int(r.Position),
	}
}

func (r rawPlaylist) normalize() Playlist {
	name := r.Name
	if name == "" {
		name = unknownPlaylist
	}
	user := r.UserName
	if user == "" {
		user = unknownUser
	}
	return Playlist{
		ID:        string(r.ID),
		Name:      name,
		UserName:  user,
		CreatedAt: parseDate(r.CreationDate),
		Image:     r.Image,
		Tracks:    normalizeTracks(r.Tracks),
	}
}

func normalizeTracks(raw []rawTrack) []Track {
	tracks := make([]Track, 0, len(raw))
	for _, r := range raw {
		if r.ID == "" {
			continue
		}
		tracks = append(tracks, r.normalize())
	}
	return tracks
}

// parseDate reads Jamendo dates ("2006-01-02" or RFC 3339).
// Unknown formats yield the zero time.
func parseDate(s string) time.Time {
	for _, layout := range []string{time.DateOnly, time.RFC3339, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
