// internal/player/interface.go
package player

import (
	"errors"

	"github.com/llehouerou/upnext/internal/media"
)

// ErrIndexOutOfRange is returned when a window index does not exist.
var ErrIndexOutOfRange = errors.New("window index out of range")

// Window is one entry of the engine's timeline.
type Window struct {
	UID   string // stable for the lifetime of the enqueued entry
	Index int
	Item  media.Item
}

// Engine is the playback engine contract consumed by the queue screen.
// Implementations deliver Listener callbacks outside of their own locks.
type Engine interface {
	Play()
	Pause()
	SeekToDefaultPosition(index int) error
	Next() error
	Previous() error

	AddItems(items ...media.Item)
	AddNext(items ...media.Item)
	SetItems(items []media.Item, current int)
	RemoveAt(index int) error
	Move(from, to int) error
	Shuffle()

	SetRepeatMode(mode RepeatMode)
	RepeatMode() RepeatMode

	Windows() []Window
	CurrentIndex() int
	// Timeline returns the windows and the current index as one consistent read.
	Timeline() ([]Window, int)
	PlayWhenReady() bool
	State() State

	AddListener(l Listener) *Handle
}

// Verify Memory implements Engine at compile time.
var _ Engine = (*Memory)(nil)
