package queueview

import (
	"context"

	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/player"
	"github.com/llehouerou/upnext/internal/playlists"
)

// Toggle plays or pauses the active entry.
func (m *Model) Toggle() error {
	if m.engine == nil {
		return ErrNoEngine
	}
	if m.playing {
		m.engine.Pause()
	} else {
		m.engine.Play()
	}
	return nil
}

// PlayAt starts the entry at index. Selecting the active entry toggles
// playback instead.
func (m *Model) PlayAt(index int) error {
	if m.engine == nil {
		return ErrNoEngine
	}
	if index == m.snap.Active {
		return m.Toggle()
	}
	if err := m.engine.SeekToDefaultPosition(index); err != nil {
		return err
	}
	m.engine.Play()
	return nil
}

// Remove drops the entry at index from the queue. The playing entry is
// never removed.
func (m *Model) Remove(index int) error {
	switch {
	case m.engine == nil:
		return ErrNoEngine
	case !m.opts.SwipeToRemove:
		return ErrRemoveDisabled
	case m.drag.Dragging():
		return ErrDragInProgress
	case index == m.snap.Active:
		return ErrRemovePlaying
	}
	return m.engine.RemoveAt(index)
}

// AddNext inserts the suggestion at index right after the active entry.
func (m *Model) AddNext(index int) error {
	it, err := m.suggestion(index)
	if err != nil {
		return err
	}
	m.engine.AddNext(it)
	return nil
}

// Enqueue appends the suggestion at index to the queue.
func (m *Model) Enqueue(index int) error {
	it, err := m.suggestion(index)
	if err != nil {
		return err
	}
	m.engine.AddItems(it)
	return nil
}

// EnqueueItems appends items picked outside the queue screen, such as a
// local song or playlist entries.
func (m *Model) EnqueueItems(items ...media.Item) error {
	if m.engine == nil {
		return ErrNoEngine
	}
	if len(items) > 0 {
		m.engine.AddItems(items...)
	}
	return nil
}

// PlayNextItems inserts items right after the active entry, in order.
func (m *Model) PlayNextItems(items ...media.Item) error {
	if m.engine == nil {
		return ErrNoEngine
	}
	if len(items) > 0 {
		m.engine.AddNext(items...)
	}
	return nil
}

func (m *Model) suggestion(index int) (media.Item, error) {
	if m.engine == nil {
		return media.Item{}, ErrNoEngine
	}
	items := m.Suggestions()
	if index < 0 || index >= len(items) {
		return media.Item{}, ErrNoSuggestion
	}
	return items[index], nil
}

// ShuffleQueue shuffles the queue, keeping the active entry first.
func (m *Model) ShuffleQueue() error {
	if m.engine == nil {
		return ErrNoEngine
	}
	if m.drag.Dragging() {
		return ErrDragInProgress
	}
	m.engine.Shuffle()
	return nil
}

// Loop reports whether the whole queue repeats.
func (m *Model) Loop() bool {
	return m.engine != nil && m.engine.RepeatMode() == player.RepeatAll
}

// ToggleLoop switches between repeating the queue and not repeating.
// Repeating a single entry counts as not looping.
func (m *Model) ToggleLoop() (bool, error) {
	if m.engine == nil {
		return false, ErrNoEngine
	}
	mode := player.RepeatAll
	if m.engine.RepeatMode() == player.RepeatAll {
		mode = player.RepeatOff
	}
	m.engine.SetRepeatMode(mode)
	return mode == player.RepeatAll, nil
}

// Scope selects what AddToPlaylist writes.
type Scope struct {
	whole bool
	index int
}

// WholeQueue selects every queued entry in order.
func WholeQueue() Scope {
	return Scope{whole: true}
}

// Suggestion selects one visible suggestion.
func Suggestion(index int) Scope {
	return Scope{index: index}
}

// Job is a playlist write prepared on the UI goroutine.
type Job func(ctx context.Context) (playlists.Result, error)

// AddToPlaylist resolves scope against the current view and returns the
// write for target. The items are captured now, so the job can run on any
// goroutine.
func (m *Model) AddToPlaylist(target playlists.Target, scope Scope) (Job, error) {
	if m.sink == nil {
		return nil, ErrNoPlaylistStore
	}

	var items []media.Item
	if scope.whole {
		items = m.snap.Items()
		if len(items) == 0 && !target.Creates() {
			return nil, ErrNothingToAdd
		}
	} else {
		sugg := m.Suggestions()
		if scope.index < 0 || scope.index >= len(sugg) {
			return nil, ErrNoSuggestion
		}
		items = []media.Item{sugg[scope.index]}
	}

	sink := m.sink
	return func(ctx context.Context) (playlists.Result, error) {
		return sink.Add(ctx, target, items)
	}, nil
}
