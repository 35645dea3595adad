// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Catalog operations
	OpCatalogTrending  Op = "load trending tracks"
	OpCatalogPlaylists Op = "load playlists"
	OpCatalogSearch    Op = "search the catalog"
	OpCatalogTrack     Op = "load track"

	// Playback operations
	OpPlaybackStart  Op = "start playback"
	OpPlaybackResume Op = "resume playback"
	OpPlaybackSeek   Op = "seek"
	OpPlaybackLoad   Op = "load audio"

	// Favorites
	OpFavoriteToggle Op = "update favorites"
	OpFavoriteLoad   Op = "load favorites"

	// Last.fm
	OpLastfmAuth     Op = "link Last.fm account"
	OpLastfmScrobble Op = "scrobble track"

	// Server
	OpServerStart Op = "start HTTP server"

	// Initialization
	OpInitialize Op = "initialize application"
	OpConfigLoad Op = "load configuration"
	OpStateOpen  Op = "open database"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message with additional context.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Wrap returns err annotated with op for returning from main.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
