package localsongs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/upnext/internal/library"
	"github.com/llehouerou/upnext/internal/media"
	"github.com/llehouerou/upnext/internal/ui/render"
	"github.com/llehouerou/upnext/internal/ui/styles"
)

// View implements popup.Popup.
func (m *Model) View() string {
	width := max(m.Width(), 10)
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.T().Primary).
		Render(render.Truncate(fmt.Sprintf("Local songs (%d)", len(m.songs)), width))
	hint := styles.T().S().Subtle

	lines := []string{title, ""}
	switch {
	case !m.loaded:
		lines = append(lines, hint.Render("Loading…"))
	case len(m.songs) == 0:
		lines = append(lines, hint.Render(render.Truncate("No local songs yet. Press m on a queue entry to keep it.", width)))
	default:
		start, end := m.cursor.VisibleRange(len(m.songs), m.listHeight())
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i, width))
		}
	}

	lines = append(lines, "", hint.Render(
		fmt.Sprintf("enter: queue  n: next  x: forget  o: order  S: sort (%s)  esc: close", m.sortBy)))
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(i, width int) string {
	s := styles.T().S()
	style := s.Base
	if i == m.cursor.Pos() {
		style = s.Cursor
	}
	song := m.songs[i]
	left := "  " + song.Title
	if song.Artists != "" {
		left += " · " + song.Artists
	}
	return style.Render(render.Columns(left, describe(song), width))
}

// describe returns the length and listening time of a song.
func describe(s library.Song) string {
	text := s.DurationText
	if s.TotalPlayTime > 0 {
		text += " · played " + media.FormatDuration(s.TotalPlayTime)
	}
	return text
}
