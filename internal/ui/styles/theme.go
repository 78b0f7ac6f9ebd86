package styles

import "github.com/charmbracelet/lipgloss"

// Theme is the color palette of the queue screen.
type Theme struct {
	Primary   lipgloss.Color // active entry, focused border
	Secondary lipgloss.Color // suggestions accent

	FgBase   lipgloss.Color
	FgMuted  lipgloss.Color // played entries
	FgSubtle lipgloss.Color // hints, dividers

	BgBase   lipgloss.Color
	BgCursor lipgloss.Color
	BgDrag   lipgloss.Color // row being dragged

	Border      lipgloss.Color
	BorderFocus lipgloss.Color

	Success lipgloss.Color
	Error   lipgloss.Color

	styles *Styles
}

// Styles are the lipgloss styles built from a Theme.
type Styles struct {
	Base       lipgloss.Style
	Muted      lipgloss.Style
	Subtle     lipgloss.Style
	Title      lipgloss.Style
	Playing    lipgloss.Style
	Cursor     lipgloss.Style
	Dragged    lipgloss.Style
	Suggestion lipgloss.Style
	Success    lipgloss.Style
	Error      lipgloss.Style
}

var defaultTheme = Theme{
	Primary:   lipgloss.Color("#a78bfa"),
	Secondary: lipgloss.Color("#f1a208"),

	FgBase:   lipgloss.Color("#c0c0c0"),
	FgMuted:  lipgloss.Color("#808080"),
	FgSubtle: lipgloss.Color("#585858"),

	BgBase:   lipgloss.Color("#1a1a1a"),
	BgCursor: lipgloss.Color("#303030"),
	BgDrag:   lipgloss.Color("#3b3252"),

	Border:      lipgloss.Color("#585858"),
	BorderFocus: lipgloss.Color("#a78bfa"),

	Success: lipgloss.Color("#42b883"),
	Error:   lipgloss.Color("#ff5555"),
}

// T returns the default theme.
func T() *Theme {
	return &defaultTheme
}

// S returns the styles of the theme, built on first use.
func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().Foreground(t.FgBase)

	return &Styles{
		Base:   base,
		Muted:  lipgloss.NewStyle().Foreground(t.FgMuted),
		Subtle: lipgloss.NewStyle().Foreground(t.FgSubtle),
		Title:  base.Bold(true),
		Playing: lipgloss.NewStyle().
			Foreground(t.Primary).
			Bold(true),
		Cursor: lipgloss.NewStyle().
			Background(t.BgCursor).
			Foreground(t.FgBase),
		Dragged: lipgloss.NewStyle().
			Background(t.BgDrag).
			Foreground(t.FgBase).
			Bold(true),
		Suggestion: lipgloss.NewStyle().Foreground(t.Secondary),
		Success:    lipgloss.NewStyle().Foreground(t.Success),
		Error:      lipgloss.NewStyle().Foreground(t.Error),
	}
}
