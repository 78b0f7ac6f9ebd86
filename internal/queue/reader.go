package queue

import (
	"github.com/llehouerou/upnext/internal/player"
)

// Reader builds snapshots from an engine. A nil engine yields empty snapshots.
type Reader struct {
	engine player.Engine
}

// NewReader creates a reader over e (which may be nil while unbound).
func NewReader(e player.Engine) *Reader {
	return &Reader{engine: e}
}

// Read returns the current snapshot in one pass over the engine.
func (r *Reader) Read() Snapshot {
	if r == nil || r.engine == nil {
		return Empty()
	}
	return FromWindows(r.engine.Timeline())
}

// ShouldBePlaying returns the engine's should-be-playing flag.
func (r *Reader) ShouldBePlaying() bool {
	if r == nil || r.engine == nil {
		return false
	}
	return player.ShouldBePlaying(r.engine.PlayWhenReady(), r.engine.State())
}

// FromWindows builds a snapshot from a window list and current index.
// An empty list or an index outside it yields NoActive.
func FromWindows(ws []player.Window, current int) Snapshot {
	entries := make([]Entry, len(ws))
	for i, w := range ws {
		entries[i] = Entry{Item: w.Item, UID: w.UID, Position: i}
	}
	active := current
	if len(entries) == 0 || current < 0 || current >= len(entries) {
		active = NoActive
	}
	return Snapshot{Entries: entries, Active: active}
}

// Attach calls onChange with a fresh snapshot now and on every timeline
// change or media item transition, until the handle is released.
func (r *Reader) Attach(onChange func(Snapshot)) *player.Handle {
	if r == nil || r.engine == nil {
		onChange(Empty())
		return player.NopHandle()
	}

	emit := func() { onChange(r.Read()) }
	h := r.engine.AddListener(player.Listener{
		TimelineChanged:     func([]player.Window) { emit() },
		MediaItemTransition: func(*player.Window) { emit() },
	})
	emit()
	return h
}

// AttachPlayback calls onChange with the should-be-playing flag now and
// whenever play-when-ready or the playback state changes.
func (r *Reader) AttachPlayback(onChange func(bool)) *player.Handle {
	if r == nil || r.engine == nil {
		onChange(false)
		return player.NopHandle()
	}

	emit := func() { onChange(r.ShouldBePlaying()) }
	h := r.engine.AddListener(player.Listener{
		PlayWhenReadyChanged: func(bool) { emit() },
		PlaybackStateChanged: func(player.State) { emit() },
	})
	emit()
	return h
}

// Notify calls onChange on every timeline, transition or playback event
// without reading the engine. Callers re-read when they are ready.
func (r *Reader) Notify(onChange func()) *player.Handle {
	if r == nil || r.engine == nil {
		return player.NopHandle()
	}
	return r.engine.AddListener(player.Listener{
		TimelineChanged:      func([]player.Window) { onChange() },
		MediaItemTransition:  func(*player.Window) { onChange() },
		PlayWhenReadyChanged: func(bool) { onChange() },
		PlaybackStateChanged: func(player.State) { onChange() },
	})
}

// AttachErrors forwards player errors to onError until released.
func (r *Reader) AttachErrors(onError func(error)) *player.Handle {
	if r == nil || r.engine == nil {
		return player.NopHandle()
	}
	return r.engine.AddListener(player.Listener{PlayerError: onError})
}
