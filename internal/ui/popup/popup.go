// Package popup draws modal boxes over the queue screen.
package popup

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/upnext/internal/ui/styles"
)

// Popup is a modal component. View renders the content only; Render adds
// the border and placement.
type Popup interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Popup, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Render wraps content in the popup border and centers it on a
// screenW x screenH canvas.
func Render(content string, width, screenW, screenH int) string {
	width = min(width, screenW-4)
	return Center(styles.PopupStyle(width).Render(content), screenW, screenH)
}

// Center pads box so that it sits in the middle of the screen.
func Center(box string, screenW, screenH int) string {
	lines := strings.Split(box, "\n")
	boxW := 0
	for _, l := range lines {
		boxW = max(boxW, lipgloss.Width(l))
	}

	padTop := max((screenH-len(lines))/2, 0)
	padLeft := strings.Repeat(" ", max((screenW-boxW)/2, 0))

	var b strings.Builder
	for range padTop {
		b.WriteString("\n")
	}
	for i, l := range lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(padLeft + l)
	}
	return b.String()
}

// Compose draws overlay on top of base. Leading and trailing blanks of each
// overlay line let the base show through; styled text is cut ANSI-aware.
func Compose(base, overlay string, width int) string {
	baseLines := strings.Split(base, "\n")

	for i, line := range strings.Split(overlay, "\n") {
		if i >= len(baseLines) {
			break
		}
		plain := ansi.Strip(line)
		trimmed := strings.TrimLeft(plain, " ")
		if strings.TrimSpace(trimmed) == "" {
			continue
		}

		start := len(plain) - len(trimmed)
		end := start + ansi.StringWidth(strings.TrimRight(trimmed, " "))

		under := baseLines[i]
		if w := ansi.StringWidth(under); w < width {
			under += strings.Repeat(" ", width-w)
		}

		out := ansi.Cut(under, 0, start) + ansi.Cut(line, start, end)
		if end < width {
			out += ansi.Cut(under, end, width)
		}
		baseLines[i] = out
	}
	return strings.Join(baseLines, "\n")
}
