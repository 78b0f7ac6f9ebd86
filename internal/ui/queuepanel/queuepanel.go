// Package queuepanel renders the play queue with its "up next" suggestions
// and turns keys into queue operations.
package queuepanel

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/upnext/internal/queueview"
	"github.com/llehouerou/upnext/internal/suggest"
	"github.com/llehouerou/upnext/internal/ui"
	"github.com/llehouerou/upnext/internal/ui/cursor"
)

const fetchTimeout = 15 * time.Second

// SyncMsg asks the panel to re-read the engine after it reported a change.
type SyncMsg struct{}

// SuggestionsMsg carries a finished suggestion fetch.
type SuggestionsMsg struct {
	Result suggest.Result
}

// Model is the queue panel.
type Model struct {
	ui.Base
	ctx    context.Context
	view   *queueview.Model
	cursor cursor.Cursor
}

// New creates the panel over view. ctx bounds the suggestion fetches.
func New(ctx context.Context, view *queueview.Model) Model {
	return Model{
		ctx:    ctx,
		view:   view,
		cursor: cursor.New(ui.ScrollMargin),
	}
}

// Init reads the engine. Fetches start once the panel has a size.
func (m Model) Init() tea.Cmd {
	m.view.Sync()
	return nil
}

// SetSize sets the panel dimensions and refreshes what is on screen.
func (m *Model) SetSize(width, height int) {
	m.Base.SetSize(width, height)
	m.scroll()
}

// Update handles messages for the queue panel.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case SyncMsg:
		m.sync()
		return m, m.fetchCmd()

	case SuggestionsMsg:
		m.view.ApplyResult(msg.Result)
		m.scroll()
		return m, m.fetchCmd()

	case tea.KeyMsg:
		if !m.IsFocused() {
			return m, nil
		}
		var cmd tea.Cmd
		if m.view.Dragging() {
			cmd = m.handleDragKey(msg.String())
		} else {
			cmd = m.handleKey(msg.String())
		}
		return m, tea.Batch(cmd, m.fetchCmd())
	}

	return m, nil
}

// fetchCmd starts the pending suggestion fetch, if any.
func (m Model) fetchCmd() tea.Cmd {
	ticket, ok := m.view.BeginFetch()
	if !ok {
		return nil
	}
	view, parent := m.view, m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(parent, fetchTimeout)
		defer cancel()
		return SuggestionsMsg{Result: view.Fetch(ctx, ticket)}
	}
}

// sync re-reads the engine and keeps the cursor on the list.
func (m *Model) sync() {
	m.view.Sync()
	m.cursor.Clamp(m.itemCount())
	m.scroll()
}

func (m Model) listHeight() int {
	return m.ListHeight(ui.PanelOverhead)
}
