// Package suggest fetches and merges "up next" suggestions for the active
// queue entry.
package suggest

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/llehouerou/upnext/internal/catalog"
	"github.com/llehouerou/upnext/internal/media"
)

// Ticket identifies one fetch. Only the most recent ticket can be accepted.
type Ticket struct {
	Gen  uint64
	Seed media.Item
}

// Result is the outcome of a fetch.
// Items is the raw candidate list; Err is set when the catalog failed.
type Result struct {
	Ticket Ticket
	Items  []media.Item
	Err    error
}

// Fetcher runs catalog lookups for the active entry and rejects results
// that arrive after the active entry changed.
type Fetcher struct {
	client catalog.Client
	logger zerolog.Logger

	mu       sync.Mutex
	gen      uint64
	activeID string
}

// NewFetcher creates a fetcher. A nil client yields empty results.
func NewFetcher(client catalog.Client, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		logger: logger.With().Str("component", "suggest").Logger(),
	}
}

// Begin records seed as the active entry and returns the ticket for its
// fetch. Every earlier ticket becomes stale.
func (f *Fetcher) Begin(seed media.Item) Ticket {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.activeID = seed.ID
	return Ticket{Gen: f.gen, Seed: seed}
}

// Invalidate marks every outstanding ticket stale, e.g. when the queue
// emptied.
func (f *Fetcher) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	f.activeID = ""
}

// Fetch resolves t. It is safe to call from any goroutine.
// Episodes never reach the catalog.
func (f *Fetcher) Fetch(ctx context.Context, t Ticket) Result {
	res := Result{Ticket: t}

	switch t.Seed.Kind {
	case media.KindEpisode:
		return res
	case media.KindMusic:
	default:
		res.Err = fmt.Errorf("fetch suggestions for %s: %w", t.Seed.ID, media.ErrUnknownKind)
		return res
	}

	if f.client == nil {
		return res
	}

	items, err := f.client.Next(ctx, t.Seed)
	if err != nil {
		f.logger.Warn().Err(err).
			Str("seed", t.Seed.ID).
			Uint64("gen", t.Gen).
			Msg("fetch suggestions")
		res.Err = err
		return res
	}
	res.Items = items
	return res
}

// Accept reports whether r belongs to the latest ticket and its seed is
// still the active entry.
func (f *Fetcher) Accept(r Result) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	ok := r.Ticket.Gen == f.gen && r.Ticket.Seed.ID == f.activeID
	if !ok {
		f.logger.Debug().
			Str("seed", r.Ticket.Seed.ID).
			Uint64("gen", r.Ticket.Gen).
			Uint64("current", f.gen).
			Msg("discard stale suggestions")
	}
	return ok
}
