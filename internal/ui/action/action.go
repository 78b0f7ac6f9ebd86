// Package action defines how UI components report requests to the app.
package action

import tea "github.com/charmbracelet/bubbletea"

// Action is a request from a UI component. ActionType names it for logs.
type Action interface {
	ActionType() string
}

// Msg wraps an action with the name of the component that raised it.
type Msg struct {
	Source string // "queuepanel", "playlistmenu"
	Action Action
}

var _ tea.Msg = Msg{}
