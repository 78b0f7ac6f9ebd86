package queuepanel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/queueview"
	"github.com/llehouerou/upnext/internal/suggest"
	"github.com/llehouerou/upnext/internal/ui"
	"github.com/llehouerou/upnext/internal/ui/render"
	"github.com/llehouerou/upnext/internal/ui/styles"
)

// View renders the queue panel.
func (m Model) View() string {
	if m.Width() == 0 || m.Height() == 0 {
		return ""
	}

	innerWidth := m.InnerWidth()
	separator := render.Separator(innerWidth)

	content := strings.Join([]string{
		m.renderHeader(innerWidth),
		separator,
		m.renderList(innerWidth, m.listHeight()),
		separator,
		footerStyle().Render(render.TruncateAndPad(m.footerText(), innerWidth)),
	}, "\n")

	return styles.PanelStyle(m.IsFocused()).
		Width(innerWidth).
		Render(content)
}

// renderHeader renders "Queue (current/total)" with the playback and loop
// markers on the right.
func (m Model) renderHeader(innerWidth int) string {
	snap := m.view.Snapshot()
	title := fmt.Sprintf("Queue (%d/%d)", snap.Active+1, snap.Len())

	var marks []string
	if m.view.Loop() {
		marks = append(marks, loopSymbol)
	}
	if snap.Active >= 0 {
		if m.view.Playing() {
			marks = append(marks, playingSymbol)
		} else {
			marks = append(marks, pausedSymbol)
		}
	}
	return headerStyle().Render(render.Columns(title, strings.Join(marks, " "), innerWidth))
}

// footerText returns the entry count and flags.
func (m Model) footerText() string {
	if m.view.Dragging() {
		return dragSymbol + " j/k: move  enter: drop  esc: cancel"
	}

	songs, episodes := m.view.Counts()
	var parts []string
	if songs > 0 {
		parts = append(parts, plural(songs, "song", "songs"))
	}
	if episodes > 0 {
		parts = append(parts, plural(episodes, "episode", "episodes"))
	}
	if len(parts) == 0 {
		parts = append(parts, "empty")
	}
	if m.view.Loop() {
		parts = append(parts, "loop")
	}
	return strings.Join(parts, " · ")
}

// renderList renders the visible window of queue rows and the suggestion
// section.
func (m Model) renderList(width, height int) string {
	lines := m.buildLines(width)
	start, end := m.cursor.VisibleRange(len(lines), height)

	out := make([]string, 0, height)
	out = append(out, lines[start:end]...)
	for len(out) < height {
		out = append(out, render.EmptyLine(width))
	}
	return strings.Join(out, "\n")
}

func (m Model) buildLines(width int) []string {
	rows := m.view.Rows()
	lines := make([]string, 0, m.lineCount())
	cursorLine := m.lineOf(m.cursor.Pos())

	for i, row := range rows {
		lines = append(lines, m.renderRow(row, i == cursorLine, width))
	}

	status, ok := m.view.SuggestionStatus()
	if !ok {
		if len(rows) == 0 {
			lines = append(lines, dividerStyle().Render(render.TruncateAndPad("  Nothing queued", width)))
		}
		return lines
	}

	lines = append(lines, dividerStyle().Render(render.Divider("Up next", width)))

	suggestions := m.view.Suggestions()
	switch {
	case status == suggest.StatusPending:
		for _, st := range placeholderStyles(ui.PlaceholderRows) {
			lines = append(lines, st.Render(render.TruncateAndPad("  "+strings.Repeat("░", width/2), width)))
		}
	case len(suggestions) == 0:
		lines = append(lines, dividerStyle().Render(render.TruncateAndPad("  No suggestions", width)))
	default:
		n := len(rows)
		for i, it := range suggestions {
			lines = append(lines, m.renderSuggestion(it, n+1+i == cursorLine, width))
		}
	}
	return lines
}

func (m Model) renderRow(row queueview.Row, isCursor bool, width int) string {
	prefix := "  "
	switch {
	case row.Dragged:
		prefix = dragSymbol + " "
	case row.Active:
		prefix = activeSymbol + " "
	}
	line := prefix + m.columns(row.Item, width-2)
	return m.rowStyle(row, isCursor && m.IsFocused()).Render(line)
}

func (m Model) renderSuggestion(it media.Item, isCursor bool, width int) string {
	s := styles.T().S()
	style := s.Suggestion
	if isCursor && m.IsFocused() {
		style = s.Cursor.Inherit(s.Suggestion)
	}
	return style.Render("+ " + m.columns(it, width-2))
}

// columns lays out title and artist side by side with the duration on
// the right.
func (m Model) columns(it media.Item, width int) string {
	duration := it.DisplayDuration()
	if duration == media.UnknownDuration {
		duration = ""
	}
	dw := lipgloss.Width(duration)
	if dw > 0 {
		dw++
	}
	textWidth := max(width-dw, 0)
	titleWidth := textWidth / 2
	text := render.TruncateAndPad(it.Title, titleWidth) + render.TruncateAndPad(it.Artist, textWidth-titleWidth)
	return render.Columns(text, duration, width)
}

func (m Model) rowStyle(row queueview.Row, isCursor bool) lipgloss.Style {
	s := styles.T().S()
	switch {
	case row.Dragged:
		return s.Dragged
	case isCursor && row.Active:
		return s.Cursor.Inherit(s.Playing)
	case isCursor && row.Played:
		return s.Cursor.Inherit(s.Muted)
	case isCursor:
		return s.Cursor
	case row.Active:
		return s.Playing
	case row.Played:
		return s.Muted
	default:
		return s.Base
	}
}
