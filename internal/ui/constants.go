// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for consistent sizing across UI components.
const (
	// ScrollMargin is the number of rows kept visible above/below the cursor.
	ScrollMargin = 2

	// BorderHeight is the vertical space consumed by a standard panel border.
	BorderHeight = 2

	// HeaderHeight is the space for header + separator in panels.
	HeaderHeight = 2

	// FooterHeight is the space for separator + footer line in panels.
	FooterHeight = 2

	// PanelOverhead is the vertical overhead of a panel with header and footer.
	// listHeight = panelHeight - PanelOverhead
	PanelOverhead = BorderHeight + HeaderHeight + FooterHeight

	// PlaceholderRows is the number of fading rows shown while suggestions load.
	PlaceholderRows = 3

	// MinPopupWidth is the narrowest popup that still fits a playlist name.
	MinPopupWidth = 30
)
