// Package reorder implements the drag gesture over the queue list.
//
// While a drag runs, the snapshot is left untouched; only the source and
// live target indices are tracked and the display order is derived from
// them. Ending the drag issues at most one move.
//
//	Idle --Start--> Dragging --Commit/Cancel--> Idle
//	                   |  ^
//	                   +--+ Drag/Shift/Rebase
package reorder

import (
	"errors"

	"github.com/llehouerou/upnext/internal/queue"
)

var (
	ErrNotDragging     = errors.New("no drag in progress")
	ErrAlreadyDragging = errors.New("drag already in progress")
	ErrInvalidSource   = errors.New("drag source out of range")
)

// Mover applies a reorder to the queue owner.
type Mover interface {
	Move(from, to int) error
}

// State of the controller.
type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Dragging:
		return "Dragging"
	default:
		return "Unknown"
	}
}

// Controller tracks one drag at a time.
type Controller struct {
	state  State
	n      int
	source int
	target int
	uid    string
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Dragging reports whether a drag is in progress.
func (c *Controller) Dragging() bool {
	return c.state == Dragging
}

// Source returns the index the drag started at.
func (c *Controller) Source() int {
	return c.source
}

// Target returns the live drop index.
func (c *Controller) Target() int {
	return c.target
}

// Start begins dragging the entry at source.
func (c *Controller) Start(s queue.Snapshot, source int) error {
	if c.state == Dragging {
		return ErrAlreadyDragging
	}
	if source < 0 || source >= s.Len() {
		return ErrInvalidSource
	}
	c.state = Dragging
	c.n = s.Len()
	c.source = source
	c.target = source
	c.uid = s.Entries[source].UID
	return nil
}

// Drag moves the live target, clamped to the list bounds.
func (c *Controller) Drag(target int) {
	if c.state != Dragging {
		return
	}
	c.target = clamp(target, c.n)
}

// Shift moves the live target by delta rows.
func (c *Controller) Shift(delta int) {
	c.Drag(c.target + delta)
}

// Order returns the display permutation: Order()[i] is the snapshot index
// shown at row i. Identity when idle.
func (c *Controller) Order(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if c.state != Dragging || n != c.n || c.source == c.target {
		return order
	}

	if c.source < c.target {
		copy(order[c.source:c.target], order[c.source+1:c.target+1])
	} else {
		copy(order[c.target+1:c.source+1], order[c.target:c.source])
	}
	order[c.target] = c.source
	return order
}

// Commit ends the drag. One move is issued when the target differs from
// the source, none otherwise. The controller is idle afterwards even when
// the move fails.
func (c *Controller) Commit(m Mover) (bool, error) {
	if c.state != Dragging {
		return false, ErrNotDragging
	}
	from, to := c.source, c.target
	c.reset()
	if from == to {
		return false, nil
	}
	if err := m.Move(from, to); err != nil {
		return false, err
	}
	return true, nil
}

// Cancel ends the drag without issuing a move.
func (c *Controller) Cancel() {
	c.reset()
}

// Rebase follows the dragged entry into a new snapshot. The drag is
// cancelled when the entry is gone; otherwise the source is remapped and
// the target clamped to the new length. Returns whether the drag survives.
func (c *Controller) Rebase(s queue.Snapshot) bool {
	if c.state != Dragging {
		return false
	}
	idx := s.IndexOfUID(c.uid)
	if idx < 0 {
		c.reset()
		return false
	}
	offset := c.target - c.source
	c.n = s.Len()
	c.source = idx
	c.target = clamp(idx+offset, c.n)
	return true
}

func (c *Controller) reset() {
	*c = Controller{}
}

func clamp(i, n int) int {
	if n <= 0 {
		return 0
	}
	return max(0, min(i, n-1))
}
