package queuepanel

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/upnext/internal/errmsg"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/queueview"
	"github.com/llehouerou/upnext/internal/ui/action"
)

// OpenPlaylistMenu asks for the playlist picker for the given entries.
type OpenPlaylistMenu struct {
	Scope queueview.Scope
	Label string // what is being added, for the menu title
}

// ActionType implements action.Action.
func (a OpenPlaylistMenu) ActionType() string { return "queuepanel.open_playlist_menu" }

// KeepLocal asks to add the song to the local songs, or take it out.
type KeepLocal struct {
	Item media.Item
}

// ActionType implements action.Action.
func (a KeepLocal) ActionType() string { return "queuepanel.keep_local" }

// OpenLocalSongs asks for the local songs list.
type OpenLocalSongs struct{}

// ActionType implements action.Action.
func (a OpenLocalSongs) ActionType() string { return "queuepanel.open_local_songs" }

// OpenPlaylists asks for the playlist browser.
type OpenPlaylists struct{}

// ActionType implements action.Action.
func (a OpenPlaylists) ActionType() string { return "queuepanel.open_playlists" }

// Failed reports a queue operation the user should hear about.
type Failed struct {
	Op  errmsg.Op
	Err error
}

// ActionType implements action.Action.
func (a Failed) ActionType() string { return "queuepanel.failed" }

// QueueChanged signals that the queue was modified from the panel.
type QueueChanged struct{}

// ActionType implements action.Action.
func (a QueueChanged) ActionType() string { return "queuepanel.queue_changed" }

// ActionMsg creates an action.Msg for a queuepanel action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "queuepanel", Action: a}
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}

// result turns the outcome of a queue operation into the panel's reply.
func result(op errmsg.Op, err error) tea.Cmd {
	if err != nil {
		return emit(Failed{Op: op, Err: err})
	}
	return emit(QueueChanged{})
}
