// Package keymap defines the key bindings of the queue screen.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"

	// Queue panel actions
	ActionSelect        Action = "select" // enter - play/toggle a row, play a suggestion next
	ActionGrab          Action = "grab"   // space - start dragging a row
	ActionDelete        Action = "delete" // d/delete
	ActionPlayNext      Action = "play_next"
	ActionEnqueue       Action = "enqueue"
	ActionShuffle       Action = "shuffle"
	ActionToggleLoop    Action = "toggle_loop"
	ActionAddToPlaylist Action = "add_to_playlist"
	ActionKeepLocal     Action = "keep_local"
	ActionLocalSongs    Action = "local_songs"
	ActionPlaylists     Action = "playlists"

	// Drag actions
	ActionDragUp     Action = "drag_up"
	ActionDragDown   Action = "drag_down"
	ActionDragTop    Action = "drag_top"
	ActionDragBottom Action = "drag_bottom"
	ActionDrop       Action = "drop"
	ActionCancel     Action = "cancel"

	// Playlist menu actions
	ActionChoose      Action = "choose"
	ActionClose       Action = "close"
	ActionToggleOrder Action = "toggle_order"
	ActionCycleSort   Action = "cycle_sort"
	ActionOpen        Action = "open"
	ActionRename      Action = "rename"
	ActionRemove      Action = "remove"

	// List actions (local songs, playlist contents)
	ActionEnqueueAll  Action = "enqueue_all"
	ActionMoveUp      Action = "move_up"
	ActionMoveDown    Action = "move_down"
	ActionForgetLocal Action = "forget_local"
)
