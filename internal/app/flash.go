package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/logger"
	"github.com/shieldai/shield/internal/ui"
)

// flash shows text in the footer in place of the key hints until it expires.
func (m *Model) flash(kind ui.FlashType, text string) tea.Cmd {
	m.footer.SetFlash(text, kind)
	return ui.FlashTick()
}

// copyWithFlash writes text to the native clipboard and reports the
// outcome in the footer. what names the copied thing.
func (m *Model) copyWithFlash(text, what string) tea.Cmd {
	if err := m.copyText(text); err != nil {
		logger.WithComponent("app").Warn("clipboard write failed", "what", what, "error", err)
		return m.flash(ui.FlashError, "Could not copy to clipboard")
	}
	return m.flash(ui.FlashSuccess, "Copied "+what+" to clipboard")
}

func (m *Model) handleFlashTick() tea.Cmd {
	m.footer.ClearIfExpired()
	if m.footer.HasFlash() {
		return ui.FlashTick()
	}
	return nil
}
