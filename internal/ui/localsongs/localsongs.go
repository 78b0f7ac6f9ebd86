// Package localsongs lists the songs kept in the local library and queues
// them.
package localsongs

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/keymap"
	"github.com/llehouerou/upnext/internal/library"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/ui"
	"github.com/llehouerou/upnext/internal/ui/action"
	"github.com/llehouerou/upnext/internal/ui/cursor"
	"github.com/llehouerou/upnext/internal/ui/popup"
)

var _ popup.Popup = (*Model)(nil)

// SongsMsg carries the songs loaded for the list.
type SongsMsg struct {
	Songs []library.Song
	Err   error
}

// ForgottenMsg is sent when a song was taken out of the local songs.
type ForgottenMsg struct {
	Song library.Song
	Err  error
}

// Enqueue is raised to append a song to the queue.
type Enqueue struct {
	Item media.Item
}

// ActionType implements action.Action.
func (a Enqueue) ActionType() string { return "localsongs.enqueue" }

// PlayNext is raised to play a song after the active entry.
type PlayNext struct {
	Item media.Item
}

// ActionType implements action.Action.
func (a PlayNext) ActionType() string { return "localsongs.play_next" }

// Forget is raised to take a song out of the local songs.
type Forget struct {
	Song library.Song
}

// ActionType implements action.Action.
func (a Forget) ActionType() string { return "localsongs.forget" }

// Closed is raised when the list is dismissed.
type Closed struct{}

// ActionType implements action.Action.
func (a Closed) ActionType() string { return "localsongs.closed" }

// SortChanged is raised when the user changed the ordering.
type SortChanged struct {
	By    library.SongSortBy
	Order dbutil.SortOrder
}

// ActionType implements action.Action.
func (a SortChanged) ActionType() string { return "localsongs.sort_changed" }

// ActionMsg creates an action.Msg for a localsongs action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "localsongs", Action: a}
}

// Load returns the command listing the local songs in the given order.
func Load(ctx context.Context, lib *library.Library, by library.SongSortBy, order dbutil.SortOrder) tea.Cmd {
	return func() tea.Msg {
		songs, err := lib.LocalSongs(ctx, by, order)
		return SongsMsg{Songs: songs, Err: err}
	}
}

// ForgetSong returns the command clearing the local flag of s.
func ForgetSong(ctx context.Context, lib *library.Library, s library.Song) tea.Cmd {
	return func() tea.Msg {
		return ForgottenMsg{Song: s, Err: lib.MarkLocal(ctx, s.ID, false)}
	}
}

// Model is the local songs list.
type Model struct {
	ui.Base
	songs  []library.Song
	loaded bool
	cursor cursor.Cursor
	sortBy library.SongSortBy
	order  dbutil.SortOrder
}

// New creates an empty list; feed it a SongsMsg from Load.
func New(by library.SongSortBy, order dbutil.SortOrder) *Model {
	return &Model{
		cursor: cursor.New(1),
		sortBy: by,
		order:  order,
	}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case SongsMsg:
		if msg.Err == nil {
			m.songs = msg.Songs
		}
		m.loaded = true
		m.cursor.Clamp(len(m.songs))
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) handleKey(key string) tea.Cmd {
	if m.cursor.HandleKey(key, len(m.songs), m.listHeight()) {
		m.cursor.Scroll(m.cursor.Pos(), len(m.songs), m.listHeight())
		return nil
	}

	act := keymap.Local.Resolve(key)
	switch act {
	case keymap.ActionClose:
		return emit(Closed{})
	case keymap.ActionToggleOrder:
		m.order = m.order.Toggle()
		return emit(SortChanged{By: m.sortBy, Order: m.order})
	case keymap.ActionCycleSort:
		m.sortBy = m.sortBy.Next()
		return emit(SortChanged{By: m.sortBy, Order: m.order})
	}

	s, ok := m.selected()
	if !ok {
		return nil
	}
	switch act {
	case keymap.ActionEnqueue:
		return emit(Enqueue{Item: s.Item()})
	case keymap.ActionPlayNext:
		return emit(PlayNext{Item: s.Item()})
	case keymap.ActionForgetLocal:
		return emit(Forget{Song: s})
	}
	return nil
}

func (m *Model) selected() (library.Song, bool) {
	pos := m.cursor.Pos()
	if pos < 0 || pos >= len(m.songs) {
		return library.Song{}, false
	}
	return m.songs[pos], true
}

func (m *Model) listHeight() int {
	return max(m.Height()-4, 1)
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}
