package queuepanel

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/upnext/internal/errmsg"
	"github.com/llehouerou/upnext/internal/keymap"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/queueview"
)

func (m *Model) handleKey(key string) tea.Cmd {
	if m.cursor.HandleKey(key, m.itemCount(), m.listHeight()) {
		m.scroll()
		return nil
	}

	qi, si := m.selected()
	var cmd tea.Cmd
	switch keymap.Queue.Resolve(key) {
	case keymap.ActionSelect:
		switch {
		case qi >= 0:
			cmd = result(errmsg.OpPlaybackStart, m.view.PlayAt(qi))
		case si >= 0:
			cmd = result(errmsg.OpQueueAdd, m.view.AddNext(si))
		}
	case keymap.ActionGrab:
		if qi >= 0 {
			if err := m.view.StartDrag(qi); err != nil {
				cmd = result(errmsg.OpQueueMove, err)
			}
		}
	case keymap.ActionDelete:
		if qi >= 0 {
			cmd = result(errmsg.OpQueueRemove, m.view.Remove(qi))
		}
	case keymap.ActionPlayNext:
		if si >= 0 {
			cmd = result(errmsg.OpQueueAdd, m.view.AddNext(si))
		}
	case keymap.ActionEnqueue:
		if si >= 0 {
			cmd = result(errmsg.OpQueueAdd, m.view.Enqueue(si))
		}
	case keymap.ActionShuffle:
		cmd = result(errmsg.OpQueueShuffle, m.view.ShuffleQueue())
		m.cursor.Jump(0, m.itemCount())
	case keymap.ActionToggleLoop:
		if _, err := m.view.ToggleLoop(); err != nil {
			cmd = result(errmsg.OpQueueLoop, err)
		}
	case keymap.ActionAddToPlaylist:
		cmd = m.openPlaylistMenu(qi, si)
	case keymap.ActionKeepLocal:
		if it, ok := m.selectedItem(qi, si); ok {
			cmd = emit(KeepLocal{Item: it})
		}
	case keymap.ActionLocalSongs:
		cmd = emit(OpenLocalSongs{})
	case keymap.ActionPlaylists:
		cmd = emit(OpenPlaylists{})
	default:
		return nil
	}

	m.sync()
	return cmd
}

func (m *Model) openPlaylistMenu(qi, si int) tea.Cmd {
	if si >= 0 {
		it := m.view.Suggestions()[si]
		return emit(OpenPlaylistMenu{Scope: queueview.Suggestion(si), Label: it.Title})
	}
	n := m.view.Snapshot().Len()
	if qi < 0 || n == 0 {
		return nil
	}
	return emit(OpenPlaylistMenu{Scope: queueview.WholeQueue(), Label: plural(n, "entry", "entries")})
}

func (m *Model) selectedItem(qi, si int) (media.Item, bool) {
	switch {
	case qi >= 0:
		return m.view.Snapshot().Entries[qi].Item, true
	case si >= 0:
		return m.view.Suggestions()[si], true
	}
	return media.Item{}, false
}

func (m *Model) handleDragKey(key string) tea.Cmd {
	var cmd tea.Cmd
	switch keymap.Drag.Resolve(key) {
	case keymap.ActionDragDown:
		m.view.ShiftDrag(1)
	case keymap.ActionDragUp:
		m.view.ShiftDrag(-1)
	case keymap.ActionDragTop:
		m.view.DragTo(0)
	case keymap.ActionDragBottom:
		m.view.DragTo(m.view.Snapshot().Len() - 1)
	case keymap.ActionDrop:
		target := m.view.DragTarget()
		moved, err := m.view.Drop()
		switch {
		case err != nil:
			cmd = result(errmsg.OpQueueMove, err)
		case moved:
			cmd = emit(QueueChanged{})
		}
		m.cursor.Jump(target, m.itemCount())
		m.sync()
		return cmd
	case keymap.ActionCancel:
		m.view.CancelDrag()
	default:
		return nil
	}

	if m.view.Dragging() {
		m.cursor.Jump(m.view.DragTarget(), m.itemCount())
	}
	m.scroll()
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
