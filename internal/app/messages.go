package app

import (
	"github.com/llehouerou/upnext/internal/errmsg"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/playlists"
)

// EngineChangedMsg is sent when the engine reported a timeline, transition
// or playback change since the last one.
type EngineChangedMsg struct{}

// PlayerErrorMsg carries an error reported by the player.
type PlayerErrorMsg struct {
	Err error
}

// PlaylistAddedMsg is sent when a playlist write finished.
type PlaylistAddedMsg struct {
	Target playlists.Target
	Result playlists.Result
	Err    error
}

// PlaylistsChangedMsg is sent when a playlist was created, renamed or
// deleted from the menu. Done is the status text on success.
type PlaylistsChangedMsg struct {
	Op   errmsg.Op
	Name string
	Done string
	Err  error
}

// LocalToggledMsg is sent when a queue entry was added to the local songs or
// taken out.
type LocalToggledMsg struct {
	Item  media.Item
	Local bool
	Err   error
}
