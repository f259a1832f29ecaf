package shell

import (
	"github.com/charmbracelet/lipgloss"

	"ayosnow/cmd/ayosnow/ui"
	"ayosnow/internal/session"
)

// View composes the frame: logo header, the active page, and the toast
// line when one is showing.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var page string
	snap := m.store.Snapshot()
	switch {
	case snap.View == session.ViewLogin:
		page = m.login.View()
	case snap.View == session.ViewRegister:
		page = m.register.View()
	case snap.View.Dashboard() && snap.User != nil:
		page = m.dash.View()
	}

	sections := []string{ui.Logo(m.styles), page}
	if m.toast.Visible() {
		sections = append(sections, m.toast.View())
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if m.width > 0 {
		body = lipgloss.NewStyle().MaxWidth(m.width).Render(body)
	}
	return body
}
