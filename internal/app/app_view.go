package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/shieldai/shield/internal/ui"
)

func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.MainWidth, ctx.ContentHeight)
	m.predict.SetSize(ctx.MainWidth, ctx.ContentHeight)
}

// View renders the model
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.render())
	return v
}

func (m *Model) render() string {
	if m.modal.IsVisible() {
		return m.modal.View(ui.GetViewContext().TerminalWidth, ui.GetViewContext().TerminalHeight)
	}

	main := m.chat.View()
	if m.tab == TabPredict {
		main = m.predict.View()
	}

	panels := lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), main)
	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), panels, m.footer.View())
}

// RenderToString renders the current view as a string.
// This is useful for testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.render()
}
