package suggest

import (
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/queue"
)

// Status is the lifecycle of a suggestion set.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusReady:
		return "Ready"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Set holds the suggestions fetched for one active entry.
type Set struct {
	Status Status
	SeedID string
	Kind   media.Kind
	Raw    []media.Item
	Err    error
}

// Pending returns the set shown while the fetch for seed is outstanding.
func Pending(seed media.Item) Set {
	return Set{Status: StatusPending, SeedID: seed.ID, Kind: seed.Kind}
}

// FromResult builds the set for an accepted fetch result.
// A failed fetch degrades to an empty set.
func FromResult(r Result) Set {
	s := Set{SeedID: r.Ticket.Seed.ID, Kind: r.Ticket.Seed.Kind}
	if r.Err != nil {
		s.Status = StatusFailed
		s.Err = r.Err
		return s
	}
	s.Status = StatusReady
	s.Raw = r.Items
	return s
}

// Items returns the visible suggestions against the current snapshot.
// Only a ready set whose seed is still active yields items.
func (s Set) Items(snap queue.Snapshot) []media.Item {
	if s.Status != StatusReady || s.SeedID != snap.ActiveID() {
		return nil
	}
	return Merge(snap, s.Raw)
}
