// Package app is the root model of the queue screen: the queue panel, the
// popups drawn over it and the status line.
package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/errmsg"
	"github.com/llehouerou/upnext/internal/library"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/queueview"
	"github.com/llehouerou/upnext/internal/state"
	"github.com/llehouerou/upnext/internal/ui/localsongs"
	"github.com/llehouerou/upnext/internal/ui/playlistmenu"
	"github.com/llehouerou/upnext/internal/ui/playlistview"
	"github.com/llehouerou/upnext/internal/ui/queuepanel"
)

// Deps are the services the root model drives.
type Deps struct {
	Engine    player.Engine // may be nil while no player is bound
	View      *queueview.Model
	Playlists *playlists.Playlists
	Library   *library.Library // may be nil; local songs are then unavailable
	State     state.Interface
	Logger    zerolog.Logger
}

// Model is the root application model.
type Model struct {
	ctx      context.Context
	engine   player.Engine
	view     *queueview.Model
	store    *playlists.Playlists
	lib      *library.Library
	stateMgr state.Interface
	logger   zerolog.Logger
	events   *engineEvents

	Queue queuepanel.Model

	// At most one of menu and local is open; detail opens over menu.
	menu      *playlistmenu.Model
	menuScope queueview.Scope
	detail    *playlistview.Model
	local     *localsongs.Model
	prefs     state.Preferences

	status    string
	statusErr bool

	width  int
	height int
}

// New creates the root model. ctx bounds the background work started from
// the UI; cancel it when the program exits. Call Close once done.
func New(ctx context.Context, d Deps) Model {
	logger := d.Logger.With().Str("component", "app").Logger()

	var status string
	prefs, err := d.State.GetPreferences()
	if err != nil {
		logger.Warn().Err(err).Msg("load preferences")
		prefs = state.DefaultPreferences()
		status = errmsg.Format(errmsg.OpPreferencesLoad, err)
	}

	queue := queuepanel.New(ctx, d.View)
	queue.SetFocused(true)

	return Model{
		ctx:       ctx,
		engine:    d.Engine,
		view:      d.View,
		store:     d.Playlists,
		lib:       d.Library,
		stateMgr:  d.State,
		logger:    logger,
		events:    watchEngine(d.View.Reader()),
		Queue:     queue,
		prefs:     prefs,
		status:    status,
		statusErr: status != "",
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.Queue.Init(),
		m.WatchEngine(),
		m.WatchPlayerErrors(),
	)
}

// Close detaches from the engine and ends the watch commands.
func (m Model) Close() {
	m.events.close()
}

// MenuOpen reports whether the playlist menu is shown.
func (m Model) MenuOpen() bool {
	return m.menu != nil
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

func (m Model) playlistSort() (playlists.SortBy, dbutil.SortOrder) {
	return playlists.SortBy(m.prefs.PlaylistSortBy), dbutil.SortOrder(m.prefs.PlaylistSortOrder)
}

func (m Model) songSort() (library.SongSortBy, dbutil.SortOrder) {
	return library.SongSortBy(m.prefs.SongSortBy), dbutil.SortOrder(m.prefs.SongSortOrder)
}
