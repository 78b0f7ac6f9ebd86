package queuepanel

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/upnext/internal/ui/styles"
)

const (
	activeSymbol  = "▶"
	playingSymbol = "♪"
	pausedSymbol  = "⏸"
	loopSymbol    = "↻"
	dragSymbol    = "≡"
)

func headerStyle() lipgloss.Style {
	return styles.T().S().Title
}

func footerStyle() lipgloss.Style {
	return styles.T().S().Muted
}

func dividerStyle() lipgloss.Style {
	return styles.T().S().Subtle
}

// placeholderStyles returns one style per placeholder row, fading out.
func placeholderStyles(n int) []lipgloss.Style {
	t := styles.T()
	out := make([]lipgloss.Style, n)
	for i, c := range styles.Fade(n, t.FgSubtle, t.BgBase) {
		out[i] = lipgloss.NewStyle().Foreground(c)
	}
	return out
}
