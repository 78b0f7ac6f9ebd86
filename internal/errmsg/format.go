// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

// Operation constants - grouped by domain.
const (
	// Queue operations
	OpQueueSave    Op = "save queue"
	OpQueueMove    Op = "move queue item"
	OpQueueRemove  Op = "remove from queue"
	OpQueueAdd     Op = "add to queue"
	OpQueueShuffle Op = "shuffle queue"
	OpQueueLoop    Op = "toggle queue loop"

	// Playback operations
	OpPlaybackStart Op = "start playback"

	// Playlist operations
	OpPlaylistCreate Op = "create playlist"
	OpPlaylistLoad   Op = "load playlists"
	OpPlaylistAdd    Op = "add to playlist"
	OpPlaylistRename Op = "rename playlist"
	OpPlaylistDelete Op = "delete playlist"
	OpPlaylistEdit   Op = "update playlist"

	// Local songs
	OpLocalLoad Op = "load local songs"
	OpLocalSave Op = "update local songs"

	// Preferences
	OpPreferencesLoad Op = "load preferences"
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
