package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit          Action = "quit"
	ActionHelp          Action = "help"
	ActionSwitchFocus   Action = "switch_focus"
	ActionBack          Action = "back"
	ActionViewHome      Action = "view_home"
	ActionViewSearch    Action = "view_search"
	ActionViewFavorites Action = "view_favorites"
	ActionRefresh       Action = "refresh"

	// Playback actions
	ActionPlayPause      Action = "play_pause"
	ActionNextTrack      Action = "next_track"
	ActionPrevTrack      Action = "prev_track"
	ActionSeekForward    Action = "seek_forward"
	ActionSeekBack       Action = "seek_back"
	ActionVolumeUp       Action = "volume_up"
	ActionVolumeDown     Action = "volume_down"
	ActionToggleMute     Action = "toggle_mute"
	ActionToggleRepeat   Action = "toggle_repeat"
	ActionToggleShuffle  Action = "toggle_shuffle"
	ActionToggleFavorite Action = "toggle_favorite"

	// Navigation actions
	ActionMoveUp    Action = "move_up"
	ActionMoveDown  Action = "move_down"
	ActionJumpStart Action = "jump_start"
	ActionJumpEnd   Action = "jump_end"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"

	// List actions
	ActionSelect   Action = "select"    // enter - play track / open playlist
	ActionDetails  Action = "details"   // i - track detail view
	ActionLoadMore Action = "load_more" // m - next trending page
)
