// Package queue turns the engine's timeline into immutable snapshots.
package queue

import "github.com/llehouerou/upnext/internal/media"

// NoActive is the active index of a snapshot without a current entry.
const NoActive = -1

// Entry is one queued item as seen by the queue screen.
type Entry struct {
	media.Item
	UID      string
	Position int
}

// Snapshot is an immutable view of the queue.
// Active is either NoActive or a valid index into Entries.
type Snapshot struct {
	Entries []Entry
	Active  int
}

// Empty returns the snapshot of an empty (or absent) queue.
func Empty() Snapshot {
	return Snapshot{Active: NoActive}
}

// Len returns the number of entries.
func (s Snapshot) Len() int {
	return len(s.Entries)
}

// Valid reports whether Active satisfies the snapshot invariant.
func (s Snapshot) Valid() bool {
	return s.Active == NoActive || (s.Active >= 0 && s.Active < len(s.Entries))
}

// ActiveEntry returns the current entry.
func (s Snapshot) ActiveEntry() (Entry, bool) {
	if s.Active < 0 || s.Active >= len(s.Entries) {
		return Entry{}, false
	}
	return s.Entries[s.Active], true
}

// ActiveID returns the current entry's identifier, "" if none.
func (s Snapshot) ActiveID() string {
	e, ok := s.ActiveEntry()
	if !ok {
		return ""
	}
	return e.ID
}

// Kind returns the kind of the current entry.
func (s Snapshot) Kind() (media.Kind, bool) {
	e, ok := s.ActiveEntry()
	if !ok {
		return media.KindMusic, false
	}
	return e.Kind, true
}

// Contains reports whether an entry with the given identifier is queued.
func (s Snapshot) Contains(id string) bool {
	for i := range s.Entries {
		if s.Entries[i].ID == id {
			return true
		}
	}
	return false
}

// IDs returns the set of queued identifiers.
func (s Snapshot) IDs() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Entries))
	for i := range s.Entries {
		set[s.Entries[i].ID] = struct{}{}
	}
	return set
}

// IndexOfUID returns the position of the entry with the given UID, -1 if absent.
func (s Snapshot) IndexOfUID(uid string) int {
	for i := range s.Entries {
		if s.Entries[i].UID == uid {
			return i
		}
	}
	return -1
}

// Items returns the queued items in order.
func (s Snapshot) Items() []media.Item {
	items := make([]media.Item, len(s.Entries))
	for i := range s.Entries {
		items[i] = s.Entries[i].Item
	}
	return items
}
