// Package media defines the playable item shared by the player, the queue
// and the persistence layer.
package media

import (
	"errors"
	"fmt"
	"time"
)

// Kind tags an item as a music track or a podcast episode.
//
// Every switch over Kind must be exhaustive. A value outside the declared
// constants is rejected with ErrUnknownKind rather than treated as music.
type Kind int

const (
	KindMusic Kind = iota
	KindEpisode
)

var (
	ErrUnknownKind      = errors.New("unknown item kind")
	ErrMissingID        = errors.New("item has no id")
	ErrMissingPodcastID = errors.New("episode has no podcast id")
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindMusic:
		return "music"
	case KindEpisode:
		return "episode"
	default:
		return "unknown"
	}
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindMusic, KindEpisode:
		return true
	default:
		return false
	}
}

// Item is one playable piece of content.
type Item struct {
	ID           string
	Title        string
	Artist       string
	Album        string
	ArtworkURL   string
	DurationText string // as displayed by the catalog, e.g. "3:45"
	Duration     time.Duration
	Kind         Kind
	PodcastID    string // episodes only
	Explicit     bool
}

// IsEpisode returns true for podcast episodes.
func (it Item) IsEpisode() bool {
	return it.Kind == KindEpisode
}

// Validate checks the metadata required to persist the item.
func (it Item) Validate() error {
	if it.ID == "" {
		return ErrMissingID
	}
	switch it.Kind {
	case KindMusic:
		return nil
	case KindEpisode:
		if it.PodcastID == "" {
			return fmt.Errorf("%s: %w", it.ID, ErrMissingPodcastID)
		}
		return nil
	default:
		return fmt.Errorf("%s: %w (%d)", it.ID, ErrUnknownKind, it.Kind)
	}
}

// DisplayDuration returns the duration text, deriving it from Duration when
// the catalog did not provide one.
func (it Item) DisplayDuration() string {
	if it.DurationText != "" {
		return it.DurationText
	}
	if it.Duration > 0 {
		return FormatDuration(it.Duration)
	}
	return ""
}
