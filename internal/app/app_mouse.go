package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/ui"
)

// routeMouseToChat forwards click, motion and release events over the chat
// panel, shifted into panel coordinates. Clicks elsewhere are dropped.
func (m *Model) routeMouseToChat(msg tea.MouseMsg) tea.Cmd {
	if m.tab != TabChat || m.modal.IsVisible() {
		return nil
	}

	mouse := msg.Mouse()
	originX, originY := ui.GetViewContext().MainOrigin()
	if mouse.X < originX || mouse.Y < originY {
		return nil
	}
	mouse.X -= originX
	mouse.Y -= originY

	var adjusted tea.Msg
	switch msg.(type) {
	case tea.MouseClickMsg:
		adjusted = tea.MouseClickMsg(mouse)
	case tea.MouseMotionMsg:
		adjusted = tea.MouseMotionMsg(mouse)
	case tea.MouseReleaseMsg:
		adjusted = tea.MouseReleaseMsg(mouse)
	default:
		return nil
	}

	_, cmd := m.chat.Update(adjusted)
	return cmd
}

// handleSelectionCopy writes selected transcript text to the native
// clipboard. The chat has already sent it over OSC 52.
func (m *Model) handleSelectionCopy(msg ui.SelectionCopyMsg) tea.Cmd {
	return m.copyWithFlash(msg.Text, "selection")
}
