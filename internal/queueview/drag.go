package queueview

import (
	"github.com/llehouerou/upnext/internal/queue"
	"github.com/llehouerou/upnext/internal/reorder"
)

// Row is one queue line as displayed.
type Row struct {
	queue.Entry
	Index   int // position in the snapshot
	Active  bool
	Played  bool // before the active entry
	Dragged bool
}

// Dragging reports whether a drag is in progress.
func (m *Model) Dragging() bool {
	return m.drag.Dragging()
}

// DragTarget returns the live drop row of the current drag.
func (m *Model) DragTarget() int {
	return m.drag.Target()
}

// StartDrag grabs the entry at index.
func (m *Model) StartDrag(index int) error {
	if m.engine == nil {
		return ErrNoEngine
	}
	return m.drag.Start(m.snap, index)
}

// DragTo moves the dragged entry to row target.
func (m *Model) DragTo(target int) {
	m.drag.Drag(target)
}

// ShiftDrag moves the dragged entry by delta rows.
func (m *Model) ShiftDrag(delta int) {
	m.drag.Shift(delta)
}

// Drop ends the drag, issuing at most one move to the engine.
func (m *Model) Drop() (bool, error) {
	if m.engine == nil {
		m.drag.Cancel()
		return false, ErrNoEngine
	}
	return m.drag.Commit(m.engine)
}

// CancelDrag ends the drag without moving anything.
func (m *Model) CancelDrag() {
	m.drag.Cancel()
}

// DragState returns the drag controller's state.
func (m *Model) DragState() reorder.State {
	return m.drag.State()
}

// Rows returns the queue in display order. During a drag the dragged entry
// is shown at its live target; the snapshot itself is unchanged.
func (m *Model) Rows() []Row {
	n := m.snap.Len()
	order := m.drag.Order(n)
	rows := make([]Row, n)
	for i, idx := range order {
		rows[i] = Row{
			Entry:   m.snap.Entries[idx],
			Index:   idx,
			Active:  idx == m.snap.Active,
			Played:  m.snap.Active != queue.NoActive && idx < m.snap.Active,
			Dragged: m.drag.Dragging() && idx == m.drag.Source(),
		}
	}
	return rows
}
