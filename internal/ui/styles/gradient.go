package styles

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// ApplyBoldGradient renders bold text with a horizontal color gradient,
// one color per grapheme cluster.
func ApplyBoldGradient(text string, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}

	switch len(clusters) {
	case 0:
		return ""
	case 1:
		return lipgloss.NewStyle().Bold(true).Foreground(from).Render(text)
	}

	var b strings.Builder
	for i, c := range Fade(len(clusters), from, to) {
		b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(c).Render(clusters[i]))
	}
	return b.String()
}

// Fade returns steps colors going from from to to, blended in HCL space.
// Loading placeholders use it to fade out row by row.
func Fade(steps int, from, to lipgloss.Color) []lipgloss.Color {
	if steps <= 0 {
		return nil
	}
	if steps == 1 {
		return []lipgloss.Color{from}
	}

	c1 := toColorful(from)
	c2 := toColorful(to)
	out := make([]lipgloss.Color, steps)
	for i := range steps {
		t := float64(i) / float64(steps-1)
		out[i] = lipgloss.Color(c1.BlendHcl(c2, t).Clamped().Hex())
	}
	out[0] = lipgloss.Color(c1.Hex())
	out[steps-1] = lipgloss.Color(c2.Hex())
	return out
}

// toColorful parses a "#rrggbb" color; ANSI color numbers fall back to gray.
func toColorful(c lipgloss.Color) colorful.Color {
	if col, err := colorful.Hex(string(c)); err == nil {
		return col
	}
	col, _ := colorful.MakeColor(color.RGBA{R: 128, G: 128, B: 128, A: 255})
	return col
}
