package styles

import "github.com/charmbracelet/lipgloss"

// PanelStyle returns the rounded panel border for the focus state.
func PanelStyle(focused bool) lipgloss.Style {
	border := T().Border
	if focused {
		border = T().BorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border)
}

// PopupStyle returns the bordered box drawn around popups.
func PopupStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(T().BorderFocus).
		Padding(0, 1).
		Width(width)
}
