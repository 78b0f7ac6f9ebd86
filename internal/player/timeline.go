package player

import (
	"github.com/google/uuid"

	"github.com/llehouerou/upnext/internal/media"
)

// timeline holds the ordered windows of the engine.
type timeline struct {
	windows []Window
}

func newWindows(items []media.Item) []Window {
	ws := make([]Window, len(items))
	for i, it := range items {
		ws[i] = Window{UID: uuid.NewString(), Item: it}
	}
	return ws
}

// insert places items at index (clamped to the timeline bounds).
func (t *timeline) insert(index int, items ...media.Item) {
	index = max(0, min(index, len(t.windows)))
	ws := newWindows(items)
	t.windows = append(t.windows[:index], append(ws, t.windows[index:]...)...)
}

// remove removes the window at the given index.
// Returns false if index is out of bounds.
func (t *timeline) remove(index int) bool {
	if index < 0 || index >= len(t.windows) {
		return false
	}
	t.windows = append(t.windows[:index], t.windows[index+1:]...)
	return true
}

// move moves the window at from to to.
// Returns false if either index is out of bounds.
func (t *timeline) move(from, to int) bool {
	if from < 0 || from >= len(t.windows) {
		return false
	}
	if to < 0 || to >= len(t.windows) {
		return false
	}
	if from == to {
		return true
	}

	w := t.windows[from]
	t.windows = append(t.windows[:from], t.windows[from+1:]...)
	t.windows = append(t.windows[:to], append([]Window{w}, t.windows[to:]...)...)
	return true
}

func (t *timeline) clear() {
	t.windows = t.windows[:0]
}

func (t *timeline) len() int {
	return len(t.windows)
}

func (t *timeline) at(index int) *Window {
	if index < 0 || index >= len(t.windows) {
		return nil
	}
	w := t.windows[index]
	w.Index = index
	return &w
}

// copyWindows returns the windows with their current indices filled in.
func (t *timeline) copyWindows() []Window {
	out := make([]Window, len(t.windows))
	copy(out, t.windows)
	for i := range out {
		out[i].Index = i
	}
	return out
}
