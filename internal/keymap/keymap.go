// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Binding maps keys to an action within a context.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "list", "home"
}

// Bindings contains all key bindings, in help order.
var Bindings = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},
	{ActionSwitchFocus, []string{"tab"}, "Switch focus", "global"},
	{ActionBack, []string{"esc", "backspace"}, "Back", "global"},
	{ActionViewHome, []string{"1", "f1"}, "Home", "global"},
	{ActionViewSearch, []string{"/", "2", "f2"}, "Search", "global"},
	{ActionViewFavorites, []string{"3", "f3"}, "Favorites", "global"},
	{ActionRefresh, []string{"ctrl+r"}, "Reload", "global"},

	// Playback
	{ActionPlayPause, []string{" "}, "Play/pause", "playback"},
	{ActionNextTrack, []string{"n", "pgdown"}, "Next track", "playback"},
	{ActionPrevTrack, []string{"p", "pgup"}, "Previous track", "playback"},
	{ActionSeekForward, []string{"shift+right", "l"}, "Seek +5s", "playback"},
	{ActionSeekBack, []string{"shift+left", "h"}, "Seek -5s", "playback"},
	{ActionVolumeUp, []string{"+", "="}, "Volume up", "playback"},
	{ActionVolumeDown, []string{"-"}, "Volume down", "playback"},
	{ActionToggleMute, []string{"M"}, "Mute / unmute", "playback"},
	{ActionToggleRepeat, []string{"R"}, "Toggle repeat", "playback"},
	{ActionToggleShuffle, []string{"S"}, "Toggle shuffle", "playback"},
	{ActionToggleFavorite, []string{"f"}, "Toggle favorite", "playback"},

	// Lists
	{ActionMoveUp, []string{"k", "up"}, "Move up", "list"},
	{ActionMoveDown, []string{"j", "down"}, "Move down", "list"},
	{ActionJumpStart, []string{"g", "home"}, "First item", "list"},
	{ActionJumpEnd, []string{"G", "end"}, "Last item", "list"},
	{ActionPageUp, []string{"ctrl+u"}, "Page up", "list"},
	{ActionPageDown, []string{"ctrl+d"}, "Page down", "list"},
	{ActionSelect, []string{"enter"}, "Play / open", "list"},
	{ActionDetails, []string{"i"}, "Track details", "list"},

	// Home
	{ActionLoadMore, []string{"m"}, "More trending tracks", "home"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range Bindings {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}

// Contexts lists the binding contexts in help order.
func Contexts() []string {
	return []string{"global", "playback", "list", "home"}
}
