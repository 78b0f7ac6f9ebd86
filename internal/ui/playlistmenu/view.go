package playlistmenu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/llehouerou/upnext/internal/playlists"
	"github.com/llehouerou/upnext/internal/ui/render"
	"github.com/llehouerou/upnext/internal/ui/styles"
)

func titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(styles.T().Primary)
}

func hintStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// View implements popup.Popup.
func (m *Model) View() string {
	width := max(m.Width(), 10)
	heading := "Add " + m.title + " to playlist"
	if m.browse {
		heading = "Playlists"
	}
	title := titleStyle().Render(render.Truncate(heading, width))

	if m.creating {
		prompt, hint := "New playlist", "enter: create  esc: back"
		if m.renaming != nil {
			prompt, hint = "Rename "+m.renaming.Name, "enter: rename  esc: back"
		}
		return strings.Join([]string{
			title,
			"",
			render.Truncate(prompt, width),
			m.input.View(),
			"",
			hintStyle().Render(hint),
		}, "\n")
	}

	lines := []string{title, ""}
	height := m.listHeight()
	start, end := m.cursor.VisibleRange(m.rowCount(), height)
	for i := start; i < end; i++ {
		lines = append(lines, m.renderRow(i, width))
	}
	lines = append(lines, "", hintStyle().Render(m.hint()))
	return strings.Join(lines, "\n")
}

func (m *Model) hint() string {
	if p, ok := m.selected(); ok && m.deleting == p.ID {
		return "press D again to delete " + p.Name
	}
	choose := "enter: add  v: show"
	if m.browse {
		choose = "enter: show"
	}
	return fmt.Sprintf("%s  r: rename  D: delete  o: order  S: sort (%s)  esc: close", choose, m.sortBy)
}

func (m *Model) renderRow(i, width int) string {
	s := styles.T().S()
	style := s.Base
	if i == m.cursor.Pos() {
		style = s.Cursor
	}
	if i == 0 {
		return style.Render(render.TruncateAndPad("+ New playlist", width))
	}
	p := m.previews[i-1]
	return style.Render(render.Columns("  "+p.Name, m.describe(p), width))
}

// describe returns the entry counts and age of a playlist.
func (m *Model) describe(p playlists.Preview) string {
	var counts []string
	if p.SongCount > 0 || p.EpisodeCount == 0 {
		counts = append(counts, count(p.SongCount, "song"))
	}
	if p.EpisodeCount > 0 {
		counts = append(counts, count(p.EpisodeCount, "episode"))
	}
	added := humanize.RelTime(p.Created(), m.now(), "ago", "from now")
	return strings.Join(counts, ", ") + " · added " + added
}

func count(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
