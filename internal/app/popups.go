package app

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/upnext/internal/errmsg"
	"github.com/llehouerou/upnext/internal/queueview"
	"github.com/llehouerou/upnext/internal/ui/localsongs"
	"github.com/llehouerou/upnext/internal/ui/playlistmenu"
	"github.com/llehouerou/upnext/internal/ui/playlistview"
	"github.com/llehouerou/upnext/internal/ui/popup"
)

var errNoLibrary = errors.New("no library")

// activePopup returns the popup that receives keys, or nil.
func (m Model) activePopup() popup.Popup {
	switch {
	case m.detail != nil:
		return m.detail
	case m.menu != nil:
		return m.menu
	case m.local != nil:
		return m.local
	default:
		return nil
	}
}

func (m Model) updatePopup(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := m.activePopup()
	if p == nil {
		return m, nil
	}
	_, cmd := p.Update(msg)
	return m, cmd
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.menu == nil {
		return m, nil
	}
	_, cmd := m.menu.Update(msg)
	return m, cmd
}

func (m Model) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.detail == nil {
		return m, nil
	}
	_, cmd := m.detail.Update(msg)
	return m, cmd
}

func (m Model) updateLocal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.local == nil {
		return m, nil
	}
	_, cmd := m.local.Update(msg)
	return m, cmd
}

// openMenu shows the picker adding the entries of scope.
func (m *Model) openMenu(label string, scope queueview.Scope) tea.Cmd {
	by, order := m.playlistSort()
	return m.showMenu(playlistmenu.New(label, by, order), scope)
}

// openBrowser shows the playlists for browsing.
func (m *Model) openBrowser() tea.Cmd {
	by, order := m.playlistSort()
	return m.showMenu(playlistmenu.NewBrowser(by, order), queueview.Scope{})
}

func (m *Model) showMenu(menu *playlistmenu.Model, scope queueview.Scope) tea.Cmd {
	if m.store == nil {
		m.setError(errmsg.Format(errmsg.OpPlaylistLoad, queueview.ErrNoPlaylistStore))
		return nil
	}
	m.menu = menu
	m.menuScope = scope
	m.Queue.SetFocused(false)
	m.resize()
	by, order := m.playlistSort()
	return tea.Batch(m.menu.Init(), playlistmenu.Load(m.ctx, m.store, by, order))
}

func (m *Model) reloadMenu() tea.Cmd {
	if m.menu == nil {
		return nil
	}
	by, order := m.playlistSort()
	return playlistmenu.Load(m.ctx, m.store, by, order)
}

func (m *Model) closeMenu() {
	m.menu = nil
	m.detail = nil
	m.menuScope = queueview.Scope{}
	m.Queue.SetFocused(true)
}

// openDetail shows the contents of a playlist over the menu.
func (m *Model) openDetail(id int64, name string) tea.Cmd {
	m.detail = playlistview.New(m.ctx, m.store, id, name)
	m.resize()
	return m.detail.Init()
}

func (m *Model) openLocal() tea.Cmd {
	if m.lib == nil {
		m.setError(errmsg.Format(errmsg.OpLocalLoad, errNoLibrary))
		return nil
	}
	by, order := m.songSort()
	m.local = localsongs.New(by, order)
	m.Queue.SetFocused(false)
	m.resize()
	return tea.Batch(m.local.Init(), localsongs.Load(m.ctx, m.lib, by, order))
}

func (m *Model) reloadLocal() tea.Cmd {
	if m.local == nil {
		return nil
	}
	by, order := m.songSort()
	return localsongs.Load(m.ctx, m.lib, by, order)
}

func (m *Model) closeLocal() {
	m.local = nil
	m.Queue.SetFocused(true)
}
