package app

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/upnext/internal/errmsg"
	"github.com/llehouerou/upnext/internal/library"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/queue"
	"github.com/llehouerou/upnext/internal/queueview"
)

// engineEvents carries engine callbacks to the UI loop. Change signals
// coalesce into one pending wake-up; errors beyond the buffer are dropped.
type engineEvents struct {
	changed chan struct{}
	errs    chan error
	done    chan struct{}
	once    sync.Once
	handles []*player.Handle
}

func watchEngine(r *queue.Reader) *engineEvents {
	ev := &engineEvents{
		changed: make(chan struct{}, 1),
		errs:    make(chan error, 4),
		done:    make(chan struct{}),
	}
	notify := func() {
		select {
		case ev.changed <- struct{}{}:
		default:
		}
	}
	ev.handles = []*player.Handle{
		r.Notify(notify),
		r.AttachErrors(func(err error) {
			select {
			case ev.errs <- err:
			default:
			}
		}),
	}
	return ev
}

func (ev *engineEvents) close() {
	ev.once.Do(func() {
		for _, h := range ev.handles {
			h.Release()
		}
		close(ev.done)
	})
}

// WatchEngine returns a command that waits for the next engine change.
func (m Model) WatchEngine() tea.Cmd {
	ev := m.events
	return func() tea.Msg {
		select {
		case <-ev.changed:
			return EngineChangedMsg{}
		case <-ev.done:
			return nil
		}
	}
}

// WatchPlayerErrors returns a command that waits for the next player error.
func (m Model) WatchPlayerErrors() tea.Cmd {
	ev := m.events
	return func() tea.Msg {
		select {
		case err := <-ev.errs:
			return PlayerErrorMsg{Err: err}
		case <-ev.done:
			return nil
		}
	}
}

// runPlaylistJob writes a prepared playlist batch off the UI loop.
func runPlaylistJob(ctx context.Context, target playlists.Target, job queueview.Job) tea.Cmd {
	return func() tea.Msg {
		res, err := job(ctx)
		return PlaylistAddedMsg{Target: target, Result: res, Err: err}
	}
}

// editPlaylists runs a playlist create, rename or delete off the UI loop.
func editPlaylists(ctx context.Context, op errmsg.Op, name, done string, edit func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		return PlaylistsChangedMsg{Op: op, Name: name, Done: done, Err: edit(ctx)}
	}
}

// toggleLocal adds it to the local songs, or takes it out.
func toggleLocal(ctx context.Context, lib *library.Library, it media.Item) tea.Cmd {
	return func() tea.Msg {
		local, err := lib.ToggleLocal(ctx, it)
		return LocalToggledMsg{Item: it, Local: local, Err: err}
	}
}
