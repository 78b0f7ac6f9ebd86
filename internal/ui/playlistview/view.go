package playlistview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/upnext/internal/ui/render"
	"github.com/llehouerou/upnext/internal/ui/styles"
)

// View implements popup.Popup.
func (m *Model) View() string {
	width := max(m.Width(), 10)
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.T().Primary).
		Render(render.Truncate(m.name, width))
	hint := styles.T().S().Subtle

	lines := []string{title, hint.Render(m.summary()), ""}
	switch {
	case !m.loaded:
		lines = append(lines, hint.Render("Loading…"))
	case m.rowCount() == 0:
		lines = append(lines, hint.Render("This playlist is empty."))
	default:
		start, end := m.cursor.VisibleRange(m.rowCount(), m.listHeight())
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(i, width))
		}
	}

	lines = append(lines, "", hint.Render("enter: queue  n: next  a: queue all  d: remove  K/J: move  esc: back"))
	return strings.Join(lines, "\n")
}

func (m *Model) summary() string {
	return fmt.Sprintf("%s, %s", count(len(m.songs), "song"), count(len(m.episodes), "episode"))
}

func (m *Model) renderRow(i, width int) string {
	s := styles.T().S()
	style := s.Base
	if i == m.cursor.Pos() {
		style = s.Cursor
	}
	e, episode, _ := m.entryAt(i)
	left := "  " + e.Item.Title
	if e.Item.Artist != "" {
		left += " · " + e.Item.Artist
	}
	right := e.Item.DisplayDuration()
	if episode {
		right = "episode · " + right
	}
	return style.Render(render.Columns(left, right, width))
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
