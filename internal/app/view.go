package app

import (
	"github.com/llehouerou/upnext/internal/ui/popup"
	"github.com/llehouerou/upnext/internal/ui/render"
	"github.com/llehouerou/upnext/internal/ui/styles"
)

const (
	statusHeight = 1
	popupPadding = 2 // horizontal padding inside the popup border
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	base := m.Queue.View() + "\n" + m.renderStatus()
	p := m.activePopup()
	if p == nil {
		return base
	}

	w, _ := m.popupSize()
	box := popup.Render(p.View(), w, m.width, m.height)
	return popup.Compose(base, box, m.width)
}

func (m Model) renderStatus() string {
	line := render.TruncateAndPad(" "+m.status, m.width)
	s := styles.T().S()
	if m.statusErr {
		return s.Error.Render(line)
	}
	return s.Success.Render(line)
}
