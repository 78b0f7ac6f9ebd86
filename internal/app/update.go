package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/upnext/internal/errmsg"
	"github.com/llehouerou/upnext/internal/keymap"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/ui"
	"github.com/llehouerou/upnext/internal/ui/action"
	"github.com/llehouerou/upnext/internal/ui/localsongs"
	"github.com/llehouerou/upnext/internal/ui/playlistmenu"
	"github.com/llehouerou/upnext/internal/ui/playlistview"
	"github.com/llehouerou/upnext/internal/ui/queuepanel"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m.updateQueue(queuepanel.SyncMsg{})

	case EngineChangedMsg:
		var cmd tea.Cmd
		m.Queue, cmd = m.Queue.Update(queuepanel.SyncMsg{})
		return m, tea.Batch(cmd, m.WatchEngine())

	case PlayerErrorMsg:
		m.logger.Warn().Err(msg.Err).Msg("player error")
		m.setError(errmsg.Format(errmsg.OpPlaybackStart, msg.Err))
		return m, m.WatchPlayerErrors()

	case queuepanel.SuggestionsMsg:
		return m.updateQueue(msg)

	case playlistmenu.PreviewsMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("load playlists")
			m.setError(errmsg.Format(errmsg.OpPlaylistLoad, msg.Err))
		}
		return m.updateMenu(msg)

	case playlistview.EntriesMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("load playlist")
			m.setError(errmsg.Format(errmsg.OpPlaylistEdit, msg.Err))
		}
		return m.updateDetail(msg)

	case playlistview.TouchedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("touch playlist")
		}
		return m, nil

	case localsongs.SongsMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Msg("load local songs")
			m.setError(errmsg.Format(errmsg.OpLocalLoad, msg.Err))
		}
		return m.updateLocal(msg)

	case localsongs.ForgottenMsg:
		if msg.Err != nil {
			m.setError(errmsg.FormatWith(errmsg.OpLocalSave, msg.Song.Title, msg.Err))
			return m, nil
		}
		m.setStatus("Removed " + msg.Song.Title + " from local songs")
		cmd := m.reloadLocal()
		return m, cmd

	case LocalToggledMsg:
		m.handleLocalToggled(msg)
		return m, nil

	case PlaylistAddedMsg:
		m.handlePlaylistAdded(msg)
		return m, nil

	case PlaylistsChangedMsg:
		if msg.Err != nil {
			m.logger.Warn().Err(msg.Err).Str("playlist", msg.Name).Msg(string(msg.Op))
			m.setError(errmsg.FormatWith(msg.Op, msg.Name, msg.Err))
		} else {
			m.setStatus(msg.Done)
		}
		cmd := m.reloadMenu()
		return m, cmd

	case action.Msg:
		return m.handleAction(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updatePopup(msg)
}

// handleKey routes keys to the active popup while one is open. q quits only
// from the queue; ctrl+c always does.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	quit := keymap.Global.Resolve(key) == keymap.ActionQuit
	open := m.activePopup() != nil
	if quit && (!open || key == "ctrl+c") {
		return m, tea.Quit
	}
	if open {
		return m.updatePopup(msg)
	}
	m.clearStatus()
	return m.updateQueue(msg)
}

func (m Model) updateQueue(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.Queue, cmd = m.Queue.Update(msg)
	return m, cmd
}

func (m Model) handleAction(msg action.Msg) (tea.Model, tea.Cmd) {
	m.logger.Debug().Str("source", msg.Source).Str("action", msg.Action.ActionType()).Msg("action")

	switch a := msg.Action.(type) {
	case queuepanel.OpenPlaylistMenu:
		cmd := m.openMenu(a.Label, a.Scope)
		return m, cmd

	case queuepanel.OpenPlaylists:
		cmd := m.openBrowser()
		return m, cmd

	case queuepanel.OpenLocalSongs:
		cmd := m.openLocal()
		return m, cmd

	case queuepanel.KeepLocal:
		if m.lib == nil {
			m.setError(errmsg.Format(errmsg.OpLocalSave, errNoLibrary))
			return m, nil
		}
		return m, toggleLocal(m.ctx, m.lib, a.Item)

	case queuepanel.Failed:
		m.setError(errmsg.Format(a.Op, a.Err))

	case queuepanel.QueueChanged:
		m.saveQueue()

	case playlistmenu.Chosen:
		scope := m.menuScope
		m.closeMenu()
		job, err := m.view.AddToPlaylist(a.Target, scope)
		if err != nil {
			m.setError(errmsg.FormatWith(errmsg.OpPlaylistAdd, a.Target.Name, err))
			return m, nil
		}
		return m, runPlaylistJob(m.ctx, a.Target, job)

	case playlistmenu.Canceled:
		m.closeMenu()

	case playlistmenu.SortChanged:
		m.prefs.PlaylistSortBy = int(a.By)
		m.prefs.PlaylistSortOrder = int(a.Order)
		m.stateMgr.SavePreferences(m.prefs)
		return m, playlistmenu.Load(m.ctx, m.store, a.By, a.Order)

	case playlistmenu.Open:
		cmd := m.openDetail(a.ID, a.Name)
		return m, cmd

	case playlistmenu.Create:
		store := m.store
		return m, editPlaylists(m.ctx, errmsg.OpPlaylistCreate, a.Name, "Created "+a.Name,
			func(ctx context.Context) error {
				_, err := store.Create(ctx, a.Name)
				return err
			})

	case playlistmenu.Rename:
		store := m.store
		return m, editPlaylists(m.ctx, errmsg.OpPlaylistRename, a.Name, "Renamed to "+a.Name,
			func(ctx context.Context) error { return store.Rename(ctx, a.ID, a.Name) })

	case playlistmenu.Delete:
		store := m.store
		return m, editPlaylists(m.ctx, errmsg.OpPlaylistDelete, a.Name, "Deleted "+a.Name,
			func(ctx context.Context) error { return store.Delete(ctx, a.ID) })

	case playlistview.Enqueue:
		m.queueItems(a.Items, false)

	case playlistview.PlayNext:
		m.queueItems(a.Items, true)

	case playlistview.Back:
		m.detail = nil
		cmd := m.reloadMenu()
		return m, cmd

	case localsongs.Enqueue:
		m.queueItems([]media.Item{a.Item}, false)

	case localsongs.PlayNext:
		m.queueItems([]media.Item{a.Item}, true)

	case localsongs.Forget:
		return m, localsongs.ForgetSong(m.ctx, m.lib, a.Song)

	case localsongs.SortChanged:
		m.prefs.SongSortBy = int(a.By)
		m.prefs.SongSortOrder = int(a.Order)
		m.stateMgr.SavePreferences(m.prefs)
		return m, localsongs.Load(m.ctx, m.lib, a.By, a.Order)

	case localsongs.Closed:
		m.closeLocal()
	}

	return m, nil
}

// queueItems adds entries picked in a popup to the queue, after the active
// entry when next is set.
func (m *Model) queueItems(items []media.Item, next bool) {
	add := m.view.EnqueueItems
	if next {
		add = m.view.PlayNextItems
	}
	if err := add(items...); err != nil {
		m.setError(errmsg.Format(errmsg.OpQueueAdd, err))
		return
	}
	m.setStatus(queuedText(items, next))
	m.saveQueue()
}

func queuedText(items []media.Item, next bool) string {
	what := fmt.Sprintf("%d entries", len(items))
	if len(items) == 1 {
		what = items[0].Title
	}
	if next {
		return "Playing " + what + " next"
	}
	return "Queued " + what
}

func (m *Model) saveQueue() {
	if err := SaveQueue(m.stateMgr, m.engine); err != nil {
		m.logger.Warn().Err(err).Msg("save queue")
		m.setError(errmsg.Format(errmsg.OpQueueSave, err))
	}
}

func (m *Model) handlePlaylistAdded(msg PlaylistAddedMsg) {
	if msg.Err != nil {
		op := errmsg.OpPlaylistAdd
		if msg.Target.Creates() {
			op = errmsg.OpPlaylistCreate
		}
		m.logger.Warn().Err(msg.Err).Str("playlist", msg.Target.Name).Msg("add to playlist")
		m.setError(errmsg.FormatWith(op, msg.Target.Name, msg.Err))
		return
	}

	for _, s := range msg.Result.Skipped {
		m.logger.Info().Err(s.Err).Str("item", s.Item.ID).Str("playlist", msg.Target.Name).Msg("entry skipped")
	}
	m.setStatus(addedText(msg.Target, msg.Result))
}

func (m *Model) handleLocalToggled(msg LocalToggledMsg) {
	if msg.Err != nil {
		m.logger.Warn().Err(msg.Err).Str("item", msg.Item.ID).Msg("toggle local song")
		m.setError(errmsg.FormatWith(errmsg.OpLocalSave, msg.Item.Title, msg.Err))
		return
	}
	if msg.Local {
		m.setStatus("Kept " + msg.Item.Title + " in local songs")
		return
	}
	m.setStatus("Removed " + msg.Item.Title + " from local songs")
}

func addedText(target playlists.Target, res playlists.Result) string {
	text := fmt.Sprintf("Added %d to %s", res.Added(), target.Name)
	if target.Creates() {
		text = fmt.Sprintf("Created %s with %d", target.Name, res.Added())
	}
	if n := len(res.Skipped); n > 0 {
		text += fmt.Sprintf(" (%d skipped)", n)
	}
	return text
}

func (m *Model) setStatus(text string) {
	m.status, m.statusErr = text, false
}

func (m *Model) setError(text string) {
	m.status, m.statusErr = text, true
}

func (m *Model) clearStatus() {
	m.status, m.statusErr = "", false
}

// resize lays out the queue panel above the status line and the popups in
// the middle of the screen.
func (m *Model) resize() {
	m.Queue.SetSize(m.width, max(m.height-statusHeight, 0))
	w, h := m.popupSize()
	if m.menu != nil {
		m.menu.SetSize(w-popupPadding, h)
	}
	if m.detail != nil {
		m.detail.SetSize(w-popupPadding, h)
	}
	if m.local != nil {
		m.local.SetSize(w-popupPadding, h)
	}
}

func (m Model) popupSize() (width, height int) {
	width = max(ui.MinPopupWidth, m.width/2)
	height = max(m.height/2, 8)
	return width, height
}
