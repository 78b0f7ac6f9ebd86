package queuepanel

import (
	"github.com/llehouerou/upnext/internal/suggest"
	"github.com/llehouerou/upnext/internal/ui"
)

// The list is laid out as: one line per queued entry, a divider, then the
// suggestion section (suggestions, loading placeholders, or a notice).
// Queue entries and suggestions are selectable; the rest is not.

// sectionLines returns the number of lines after the divider, 0 when the
// section is hidden because nothing is active.
func (m Model) sectionLines() int {
	status, ok := m.view.SuggestionStatus()
	if !ok {
		return 0
	}
	if status == suggest.StatusPending {
		return ui.PlaceholderRows
	}
	return max(len(m.view.Suggestions()), 1)
}

// lineCount returns the total number of list lines.
func (m Model) lineCount() int {
	n := m.view.Snapshot().Len()
	if sec := m.sectionLines(); sec > 0 {
		return n + 1 + sec
	}
	return n
}

// itemCount returns the number of selectable items.
func (m Model) itemCount() int {
	return m.view.Snapshot().Len() + len(m.view.Suggestions())
}

// lineOf returns the list line of item pos.
func (m Model) lineOf(pos int) int {
	n := m.view.Snapshot().Len()
	if pos < n {
		return pos
	}
	return pos + 1
}

// selected returns the queue index or the suggestion index under the cursor.
func (m Model) selected() (queueIdx, suggestionIdx int) {
	pos := m.cursor.Pos()
	n := m.view.Snapshot().Len()
	if pos < n {
		return pos, -1
	}
	if s := pos - n; s < len(m.view.Suggestions()) {
		return -1, s
	}
	return -1, -1
}

// scroll keeps the cursor line on screen and tells the view whether the
// suggestion section is visible.
func (m *Model) scroll() {
	height := m.listHeight()
	lines := m.lineCount()
	line := m.lineOf(m.cursor.Pos())
	if m.view.Dragging() {
		line = m.view.DragTarget()
	}
	m.cursor.Scroll(line, lines, height)

	n := m.view.Snapshot().Len()
	start, end := m.cursor.VisibleRange(lines, height)
	m.view.SetWantSuggestions(m.sectionLines() > 0 && start < lines && end > n)
}
