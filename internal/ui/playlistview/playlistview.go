// Package playlistview shows the songs and episodes of one playlist and
// edits them.
package playlistview

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/upnext/internal/keymap"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/ui"
	"github.com/llehouerou/upnext/internal/ui/action"
	"github.com/llehouerou/upnext/internal/ui/cursor"
	"github.com/llehouerou/upnext/internal/ui/popup"
)

var _ popup.Popup = (*Model)(nil)

// EntriesMsg carries a playlist and its entries. Err is set when loading or
// the edit before it failed. Select is the row to put the cursor on, or -1.
type EntriesMsg struct {
	Playlist *playlists.Playlist
	Songs    []playlists.Entry
	Episodes []playlists.Entry
	Select   int
	Err      error
}

// TouchedMsg reports the last-used update made when a whole playlist is
// queued.
type TouchedMsg struct {
	Err error
}

// Enqueue is raised to append entries to the queue.
type Enqueue struct {
	Items []media.Item
}

// ActionType implements action.Action.
func (a Enqueue) ActionType() string { return "playlistview.enqueue" }

// PlayNext is raised to play entries after the active one.
type PlayNext struct {
	Items []media.Item
}

// ActionType implements action.Action.
func (a PlayNext) ActionType() string { return "playlistview.play_next" }

// Back is raised when the view is dismissed.
type Back struct{}

// ActionType implements action.Action.
func (a Back) ActionType() string { return "playlistview.back" }

// ActionMsg creates an action.Msg for a playlistview action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "playlistview", Action: a}
}

// Model is the contents of one playlist: songs first, then episodes.
type Model struct {
	ui.Base
	ctx      context.Context
	store    *playlists.Playlists
	id       int64
	name     string
	songs    []playlists.Entry
	episodes []playlists.Entry
	loaded   bool
	cursor   cursor.Cursor
}

// New creates the view of playlist id; Init loads it.
func New(ctx context.Context, store *playlists.Playlists, id int64, name string) *Model {
	return &Model{
		ctx:    ctx,
		store:  store,
		id:     id,
		name:   name,
		cursor: cursor.New(1),
	}
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return m.load(-1)
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case EntriesMsg:
		m.setEntries(msg)
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	}
	return m, nil
}

func (m *Model) setEntries(msg EntriesMsg) {
	m.loaded = true
	if msg.Err != nil {
		return
	}
	if msg.Playlist != nil {
		m.name = msg.Playlist.Name
	}
	m.songs = msg.Songs
	m.episodes = msg.Episodes
	if msg.Select >= 0 {
		m.cursor.Jump(msg.Select, m.rowCount())
	}
	m.cursor.Clamp(m.rowCount())
	m.cursor.Scroll(m.cursor.Pos(), m.rowCount(), m.listHeight())
}

func (m *Model) rowCount() int {
	return len(m.songs) + len(m.episodes)
}

// entryAt returns the entry of a row and whether it is an episode.
func (m *Model) entryAt(row int) (playlists.Entry, bool, bool) {
	switch {
	case row < 0 || row >= m.rowCount():
		return playlists.Entry{}, false, false
	case row < len(m.songs):
		return m.songs[row], false, true
	default:
		return m.episodes[row-len(m.songs)], true, true
	}
}

func (m *Model) items() []media.Item {
	out := make([]media.Item, 0, m.rowCount())
	for _, e := range m.songs {
		out = append(out, e.Item)
	}
	for _, e := range m.episodes {
		out = append(out, e.Item)
	}
	return out
}

func (m *Model) handleKey(key string) tea.Cmd {
	if m.cursor.HandleKey(key, m.rowCount(), m.listHeight()) {
		m.cursor.Scroll(m.cursor.Pos(), m.rowCount(), m.listHeight())
		return nil
	}

	act := keymap.List.Resolve(key)
	switch act {
	case keymap.ActionClose:
		return emit(Back{})
	case keymap.ActionEnqueueAll:
		if m.rowCount() == 0 {
			return nil
		}
		return tea.Batch(emit(Enqueue{Items: m.items()}), m.touch())
	}

	row := m.cursor.Pos()
	e, episode, ok := m.entryAt(row)
	if !ok {
		return nil
	}
	switch act {
	case keymap.ActionEnqueue:
		return emit(Enqueue{Items: []media.Item{e.Item}})
	case keymap.ActionPlayNext:
		return emit(PlayNext{Items: []media.Item{e.Item}})
	case keymap.ActionDelete:
		return m.remove(e.Position, episode)
	case keymap.ActionMoveUp:
		return m.move(e.Position, episode, -1)
	case keymap.ActionMoveDown:
		return m.move(e.Position, episode, 1)
	}
	return nil
}

func (m *Model) load(selectRow int) tea.Cmd {
	ctx, store, id := m.ctx, m.store, m.id
	return func() tea.Msg {
		return fetch(ctx, store, id, selectRow)
	}
}

func fetch(ctx context.Context, store *playlists.Playlists, id int64, selectRow int) EntriesMsg {
	pl, err := store.Get(ctx, id)
	if err != nil {
		return EntriesMsg{Select: -1, Err: err}
	}
	songs, err := store.Songs(ctx, id)
	if err != nil {
		return EntriesMsg{Select: -1, Err: err}
	}
	episodes, err := store.Episodes(ctx, id)
	if err != nil {
		return EntriesMsg{Select: -1, Err: err}
	}
	return EntriesMsg{Playlist: pl, Songs: songs, Episodes: episodes, Select: selectRow}
}

func (m *Model) remove(position int, episode bool) tea.Cmd {
	ctx, store, id := m.ctx, m.store, m.id
	return func() tea.Msg {
		var err error
		if episode {
			err = store.RemoveEpisode(ctx, id, position)
		} else {
			err = store.RemoveSong(ctx, id, position)
		}
		if err != nil {
			return EntriesMsg{Select: -1, Err: err}
		}
		return fetch(ctx, store, id, -1)
	}
}

// move shifts one entry within its kind; the cursor follows it.
func (m *Model) move(position int, episode bool, delta int) tea.Cmd {
	ctx, store, id := m.ctx, m.store, m.id
	base := 0
	if episode {
		base = len(m.songs)
	}
	return func() tea.Msg {
		var moved []int
		var err error
		if episode {
			moved, err = store.MoveEpisodes(ctx, id, []int{position}, delta)
		} else {
			moved, err = store.MoveSongs(ctx, id, []int{position}, delta)
		}
		if err != nil {
			return EntriesMsg{Select: -1, Err: err}
		}
		return fetch(ctx, store, id, base+moved[0])
	}
}

func (m *Model) touch() tea.Cmd {
	ctx, store, id := m.ctx, m.store, m.id
	return func() tea.Msg {
		return TouchedMsg{Err: store.UpdateLastUsed(ctx, id)}
	}
}

func (m *Model) listHeight() int {
	return max(m.Height()-5, 1)
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}
