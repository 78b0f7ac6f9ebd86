package library

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/llehouerou/upnext/internal/media"
)

// PlayTracker records what the player plays: each newly active item is
// stored in the library and songs are credited with the time they spent
// playing.
type PlayTracker struct {
	lib    *Library
	logger zerolog.Logger
	now    func() time.Time

	mu      sync.Mutex
	current media.Item
	active  bool
	playing bool
	since   time.Time
	elapsed time.Duration
}

func NewPlayTracker(lib *Library, logger zerolog.Logger) *PlayTracker {
	return &PlayTracker{
		lib:    lib,
		logger: logger.With().Str("component", "playtime").Logger(),
		now:    lib.now,
	}
}

// SetActive switches the tracked item. ok is false when nothing is active.
// Re-reporting the same item is a no-op.
func (t *PlayTracker) SetActive(ctx context.Context, it media.Item, ok bool) {
	t.mu.Lock()
	if ok == t.active && (!ok || it.ID == t.current.ID) {
		t.mu.Unlock()
		return
	}
	prev, spent := t.takeLocked()
	t.current, t.active = it, ok
	t.mu.Unlock()

	t.credit(ctx, prev, spent)

	if !ok {
		return
	}
	if err := t.lib.Upsert(ctx, it); err != nil {
		t.logger.Warn().Err(err).Str("item", it.ID).Msg("store played item")
	}
}

// SetPlaying starts or stops the clock for the active item.
func (t *PlayTracker) SetPlaying(playing bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if playing == t.playing {
		return
	}
	if t.playing {
		t.elapsed += t.now().Sub(t.since)
	}
	t.playing = playing
	t.since = t.now()
}

// Flush credits the time accumulated so far, e.g. on exit.
func (t *PlayTracker) Flush(ctx context.Context) {
	t.mu.Lock()
	prev, spent := t.takeLocked()
	t.mu.Unlock()
	t.credit(ctx, prev, spent)
}

func (t *PlayTracker) takeLocked() (media.Item, time.Duration) {
	spent := t.elapsed
	if t.playing {
		spent += t.now().Sub(t.since)
		t.since = t.now()
	}
	t.elapsed = 0
	if !t.active {
		return media.Item{}, 0
	}
	return t.current, spent
}

func (t *PlayTracker) credit(ctx context.Context, it media.Item, spent time.Duration) {
	if spent <= 0 {
		return
	}
	switch it.Kind {
	case media.KindMusic:
		if err := t.lib.AddPlayTime(ctx, it.ID, spent); err != nil {
			t.logger.Warn().Err(err).Str("item", it.ID).Msg("add play time")
		}
	case media.KindEpisode:
	default:
		t.logger.Warn().Str("item", it.ID).Msg("play time for unknown kind")
	}
}
