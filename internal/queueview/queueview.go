// Package queueview is the state machine behind the queue screen.
//
// A Model is owned by one goroutine (the UI loop). Snapshots from the
// engine, fetch results and user actions are all fed to it there. The only
// work that leaves that goroutine is the suggestion fetch and the playlist
// write, both handed out as functions for the caller to run.
package queueview

import (
	"context"
	"errors"

	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/queue"
	"github.com/llehouerou/upnext/internal/reorder"
	"github.com/llehouerou/upnext/internal/suggest"
)

var (
	ErrNoEngine        = errors.New("no player bound")
	ErrRemovePlaying   = errors.New("cannot remove the playing entry")
	ErrRemoveDisabled  = errors.New("removing queue entries is disabled")
	ErrNoSuggestion    = errors.New("no such suggestion")
	ErrDragInProgress  = errors.New("queue is being reordered")
	ErrNothingToAdd    = errors.New("nothing to add")
	ErrNoPlaylistStore = errors.New("no playlist store")
)

// Options tune the queue screen.
type Options struct {
	SwipeToRemove bool
	// Visible caps the number of suggestions shown; 0 shows all.
	Visible int
}

// Model composes the snapshot reader, the suggestion fetcher and merger,
// the drag controller and the playlist sink.
type Model struct {
	reader  *queue.Reader
	engine  player.Engine
	fetcher *suggest.Fetcher
	sink    *playlists.Sink
	opts    Options

	snap    queue.Snapshot
	playing bool

	set       suggest.Set
	ticket    suggest.Ticket
	hasTicket bool
	issued    bool
	want      bool

	drag reorder.Controller
}

// New creates a model over engine. engine may be nil until the player is
// bound; every read then yields an empty queue.
func New(engine player.Engine, fetcher *suggest.Fetcher, sink *playlists.Sink, opts Options) *Model {
	return &Model{
		reader:  queue.NewReader(engine),
		engine:  engine,
		fetcher: fetcher,
		sink:    sink,
		opts:    opts,
		snap:    queue.Empty(),
	}
}

// Reader returns the snapshot reader over the model's engine.
func (m *Model) Reader() *queue.Reader {
	return m.reader
}

// Sync pulls a fresh snapshot and playback flag from the engine.
func (m *Model) Sync() {
	m.OnSnapshot(m.reader.Read())
	m.SetPlaying(m.reader.ShouldBePlaying())
}

// Snapshot returns the last snapshot received.
func (m *Model) Snapshot() queue.Snapshot {
	return m.snap
}

// Playing reports the engine's should-be-playing flag.
func (m *Model) Playing() bool {
	return m.playing
}

// SetPlaying records the engine's should-be-playing flag.
func (m *Model) SetPlaying(playing bool) {
	m.playing = playing
}

// OnSnapshot replaces the current snapshot. A change of active entry resets
// the suggestions to pending and makes every outstanding fetch stale. A
// running drag follows its entry or is cancelled when the entry is gone.
func (m *Model) OnSnapshot(s queue.Snapshot) {
	prevID := m.snap.ActiveID()
	m.snap = s

	if m.drag.Dragging() {
		m.drag.Rebase(s)
	}

	active, ok := s.ActiveEntry()
	switch {
	case !ok:
		if m.hasTicket {
			m.fetcher.Invalidate()
		}
		m.set = suggest.Set{}
		m.ticket = suggest.Ticket{}
		m.hasTicket = false
		m.issued = false
	case !m.hasTicket || active.ID != prevID:
		m.set = suggest.Pending(active.Item)
		m.ticket = m.fetcher.Begin(active.Item)
		m.hasTicket = true
		m.issued = false
	}
}

// SetWantSuggestions records whether the suggestion rows are on screen.
func (m *Model) SetWantSuggestions(want bool) {
	m.want = want
}

// NeedsFetch reports whether a fetch for the active entry should start:
// there is an active entry, its fetch has not been issued yet, and the
// suggestion rows are wanted.
func (m *Model) NeedsFetch() bool {
	return m.hasTicket && !m.issued && m.want && m.set.Status == suggest.StatusPending
}

// BeginFetch marks the pending fetch as issued and returns its ticket.
func (m *Model) BeginFetch() (suggest.Ticket, bool) {
	if !m.NeedsFetch() {
		return suggest.Ticket{}, false
	}
	m.issued = true
	return m.ticket, true
}

// Fetch resolves t. Unlike the other methods it may run on any goroutine.
func (m *Model) Fetch(ctx context.Context, t suggest.Ticket) suggest.Result {
	return m.fetcher.Fetch(ctx, t)
}

// ApplyResult stores r when it is still relevant and reports whether it
// was applied.
func (m *Model) ApplyResult(r suggest.Result) bool {
	if !m.fetcher.Accept(r) || r.Ticket.Seed.ID != m.snap.ActiveID() {
		return false
	}
	m.set = suggest.FromResult(r)
	return true
}

// SuggestionStatus returns the state of the suggestion rows. ok is false
// when the queue has no active entry.
func (m *Model) SuggestionStatus() (suggest.Status, bool) {
	return m.set.Status, m.hasTicket
}

// Suggestions returns the visible suggestions for the current snapshot.
func (m *Model) Suggestions() []media.Item {
	items := m.set.Items(m.snap)
	if m.opts.Visible > 0 && len(items) > m.opts.Visible {
		items = items[:m.opts.Visible]
	}
	return items
}

// Counts returns the number of queued songs and episodes.
func (m *Model) Counts() (songs, episodes int) {
	for _, e := range m.snap.Entries {
		switch e.Kind {
		case media.KindMusic:
			songs++
		case media.KindEpisode:
			episodes++
		}
	}
	return songs, episodes
}
