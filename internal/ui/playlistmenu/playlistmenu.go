// Package playlistmenu lists the stored playlists, either as the "add to
// playlist" picker or as a browser. Both modes can create, rename, delete
// and open playlists.
package playlistmenu

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	dbutil "github.com/llehouerou/upnext/internal/db"
	"github.com/llehouerou/upnext/internal/keymap"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/ui"
	"github.com/llehouerou/upnext/internal/ui/action"
	"github.com/llehouerou/upnext/internal/ui/cursor"
	"github.com/llehouerou/upnext/internal/ui/popup"
)

var _ popup.Popup = (*Model)(nil)

// PreviewsMsg carries the playlists loaded for the menu.
type PreviewsMsg struct {
	Previews []playlists.Preview
	Err      error
}

// Chosen is raised when the user picked or named a playlist.
type Chosen struct {
	Target playlists.Target
}

// ActionType implements action.Action.
func (a Chosen) ActionType() string { return "playlistmenu.chosen" }

// Canceled is raised when the menu is closed without a choice.
type Canceled struct{}

// ActionType implements action.Action.
func (a Canceled) ActionType() string { return "playlistmenu.canceled" }

// Open is raised to show the contents of a playlist.
type Open struct {
	ID   int64
	Name string
}

// ActionType implements action.Action.
func (a Open) ActionType() string { return "playlistmenu.open" }

// Create is raised by the browser when a new playlist was named.
type Create struct {
	Name string
}

// ActionType implements action.Action.
func (a Create) ActionType() string { return "playlistmenu.create" }

// Rename is raised when a playlist got a new name.
type Rename struct {
	ID   int64
	Name string
}

// ActionType implements action.Action.
func (a Rename) ActionType() string { return "playlistmenu.rename" }

// Delete is raised once a deletion was confirmed.
type Delete struct {
	ID   int64
	Name string
}

// ActionType implements action.Action.
func (a Delete) ActionType() string { return "playlistmenu.delete" }

// SortChanged is raised when the user changed the preview ordering.
type SortChanged struct {
	By    playlists.SortBy
	Order dbutil.SortOrder
}

// ActionType implements action.Action.
func (a SortChanged) ActionType() string { return "playlistmenu.sort_changed" }

// ActionMsg creates an action.Msg for a playlistmenu action.
func ActionMsg(a action.Action) action.Msg {
	return action.Msg{Source: "playlistmenu", Action: a}
}

// Load returns the command fetching the previews in the given order.
func Load(ctx context.Context, store *playlists.Playlists, by playlists.SortBy, order dbutil.SortOrder) tea.Cmd {
	return func() tea.Msg {
		previews, err := store.Previews(ctx, by, order)
		return PreviewsMsg{Previews: previews, Err: err}
	}
}

// Model is the playlist menu. Row 0 is "New playlist"; the previews
// follow.
type Model struct {
	ui.Base
	title    string
	browse   bool
	previews []playlists.Preview
	loaded   bool
	cursor   cursor.Cursor
	creating bool
	renaming *playlists.Preview
	deleting int64
	input    textinput.Model
	sortBy   playlists.SortBy
	order    dbutil.SortOrder
	now      func() time.Time
}

// New creates a picker titled for what is being added.
func New(title string, by playlists.SortBy, order dbutil.SortOrder) *Model {
	ti := textinput.New()
	ti.Placeholder = "Playlist name"
	ti.CharLimit = 128
	ti.Width = 40

	return &Model{
		title:  title,
		cursor: cursor.New(1),
		input:  ti,
		sortBy: by,
		order:  order,
		now:    time.Now,
	}
}

// NewBrowser creates a menu that opens playlists instead of adding to them.
func NewBrowser(by playlists.SortBy, order dbutil.SortOrder) *Model {
	m := New("", by, order)
	m.browse = true
	return m
}

// Init implements popup.Popup.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Creating reports whether the name prompt is open, for a new playlist or
// a rename.
func (m *Model) Creating() bool {
	return m.creating
}

// Update implements popup.Popup.
func (m *Model) Update(msg tea.Msg) (popup.Popup, tea.Cmd) {
	switch msg := msg.(type) {
	case PreviewsMsg:
		return m, m.setPreviews(msg)
	case tea.KeyMsg:
		if m.creating {
			return m, m.handlePromptKey(msg)
		}
		return m, m.handleListKey(msg.String())
	}
	if m.creating {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// setPreviews stores a load result. In the picker, the first load of an
// empty store opens the name prompt directly.
func (m *Model) setPreviews(msg PreviewsMsg) tea.Cmd {
	if msg.Err != nil {
		m.previews = nil
	} else {
		m.previews = msg.Previews
	}
	first := !m.loaded
	m.loaded = true
	m.deleting = 0
	m.cursor.Clamp(m.rowCount())
	if first && len(m.previews) == 0 && !m.browse {
		return m.startPrompt()
	}
	return nil
}

func (m *Model) rowCount() int {
	return len(m.previews) + 1
}

func (m *Model) handleListKey(key string) tea.Cmd {
	act := keymap.Menu.Resolve(key)
	confirming := m.deleting
	m.deleting = 0

	if m.cursor.HandleKey(key, m.rowCount(), m.listHeight()) {
		m.cursor.Scroll(m.cursor.Pos(), m.rowCount(), m.listHeight())
		return nil
	}

	switch act {
	case keymap.ActionChoose:
		p, ok := m.selected()
		if !ok {
			return m.startPrompt()
		}
		if m.browse {
			return emit(Open{ID: p.ID, Name: p.Name})
		}
		return emit(Chosen{Target: playlists.Existing(p.ID, p.Name)})
	case keymap.ActionOpen:
		if p, ok := m.selected(); ok {
			return emit(Open{ID: p.ID, Name: p.Name})
		}
	case keymap.ActionRename:
		if p, ok := m.selected(); ok {
			return m.startRename(p)
		}
	case keymap.ActionRemove:
		p, ok := m.selected()
		if !ok {
			return nil
		}
		if confirming == p.ID {
			return emit(Delete{ID: p.ID, Name: p.Name})
		}
		m.deleting = p.ID
	case keymap.ActionClose:
		return emit(Canceled{})
	case keymap.ActionToggleOrder:
		m.order = m.order.Toggle()
		return emit(SortChanged{By: m.sortBy, Order: m.order})
	case keymap.ActionCycleSort:
		m.sortBy = m.sortBy.Next()
		return emit(SortChanged{By: m.sortBy, Order: m.order})
	}
	return nil
}

// selected returns the preview under the cursor; false on the "New
// playlist" row.
func (m *Model) selected() (playlists.Preview, bool) {
	pos := m.cursor.Pos()
	if pos <= 0 || pos > len(m.previews) {
		return playlists.Preview{}, false
	}
	return m.previews[pos-1], true
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		name := strings.TrimSpace(m.input.Value())
		if name == "" {
			return nil
		}
		switch {
		case m.renaming != nil:
			id := m.renaming.ID
			m.closePrompt()
			return emit(Rename{ID: id, Name: name})
		case m.browse:
			m.closePrompt()
			return emit(Create{Name: name})
		}
		return emit(Chosen{Target: playlists.NewPlaylist(name)})
	case "esc":
		if len(m.previews) == 0 && !m.browse {
			return emit(Canceled{})
		}
		m.closePrompt()
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) startPrompt() tea.Cmd {
	m.creating = true
	m.renaming = nil
	m.input.Reset()
	return m.input.Focus()
}

func (m *Model) startRename(p playlists.Preview) tea.Cmd {
	m.creating = true
	m.renaming = &p
	m.input.SetValue(p.Name)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *Model) closePrompt() {
	m.creating = false
	m.renaming = nil
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) listHeight() int {
	return max(m.Height()-4, 1)
}

func emit(a action.Action) tea.Cmd {
	return func() tea.Msg { return ActionMsg(a) }
}
