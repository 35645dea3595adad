// Package icons provides the glyph sets used by the terminal UI.
package icons

// Style represents the icon style to use.
type Style string

const (
	StyleNerd    Style = "nerd"
	StyleUnicode Style = "unicode"
	StyleNone    Style = "none"
)

// Icons holds the icon characters for the current style.
type Icons struct {
	Track      string
	Artist     string
	Album      string
	Playlist   string
	Search     string
	Play       string
	Pause      string
	Stop       string
	Shuffle    string
	Repeat     string
	Favorite   string
	Volume     string
	VolumeMute string
}

var (
	nerdIcons = Icons{
		Track:      "\uf001 ",     // nf-fa-music
		Artist:     "\uf007 ",     // nf-fa-user
		Album:      "\U000f0025 ", // nf-md-album
		Playlist:   "\U000f0cb8 ", // nf-md-playlist_music
		Search:     "\uf002 ",     // nf-fa-search
		Play:       "\uf04b",      // nf-fa-play
		Pause:      "\uf04c",      // nf-fa-pause
		Stop:       "\uf04d",      // nf-fa-stop
		Shuffle:    "\U000f049d",  // nf-md-shuffle
		Repeat:     "\U000f0458",  // nf-md-repeat_once
		Favorite:   "\U000f02d1",  // nf-md-heart
		Volume:     "\U000f057e",  // nf-md-volume_high
		VolumeMute: "\U000f075f",  // nf-md-volume_mute
	}

	unicodeIcons = Icons{
		Track:      "🎵 ",
		Artist:     "👤 ",
		Album:      "💿 ",
		Playlist:   "📋 ",
		Search:     "🔍 ",
		Play:       "▶",
		Pause:      "⏸",
		Stop:       "⏹",
		Shuffle:    "🔀",
		Repeat:     "🔂",
		Favorite:   "♥",
		Volume:     "🔊",
		VolumeMute: "🔇",
	}

	noneIcons = Icons{
		Play:       ">",
		Pause:      "||",
		Stop:       "[]",
		Shuffle:    "[S]",
		Repeat:     "[R]",
		Favorite:   "*",
		Volume:     "vol",
		VolumeMute: "mute",
	}

	// current holds the active icon set
	current = noneIcons
)

// Init initializes the icons based on the style.
// Call this once at startup with the config value.
func Init(style string) {
	switch Style(style) {
	case StyleNerd:
		current = nerdIcons
	case StyleUnicode:
		current = unicodeIcons
	default:
		current = noneIcons
	}
}

func prefix(icon, name string) string {
	return icon + name
}

// FormatTrack formats a track name with the appropriate icon.
func FormatTrack(name string) string {
	return prefix(current.Track, name)
}

// FormatArtist formats an artist name with the appropriate icon.
func FormatArtist(name string) string {
	return prefix(current.Artist, name)
}

// FormatAlbum formats an album name with the appropriate icon.
func FormatAlbum(name string) string {
	return prefix(current.Album, name)
}

// FormatPlaylist formats a playlist name with the appropriate icon.
func FormatPlaylist(name string) string {
	return prefix(current.Playlist, name)
}

// FormatSearch formats a search prompt or query.
func FormatSearch(query string) string {
	return prefix(current.Search, query)
}

// Play returns the playing indicator.
func Play() string {
	return current.Play
}

// Pause returns the paused indicator.
func Pause() string {
	return current.Pause
}

// Stop returns the idle indicator.
func Stop() string {
	return current.Stop
}

// Shuffle returns the shuffle icon.
func Shuffle() string {
	return current.Shuffle
}

// Repeat returns the single-track repeat icon.
func Repeat() string {
	return current.Repeat
}

// Favorite returns the favorite/heart icon.
func Favorite() string {
	return current.Favorite
}

// Volume returns the volume icon for level. Zero selects the muted glyph.
func Volume(level float64) string {
	if level <= 0 {
		return current.VolumeMute
	}
	return current.Volume
}
