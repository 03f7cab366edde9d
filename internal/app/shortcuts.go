package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/keys"
	"github.com/shieldai/shield/internal/logger"
	"github.com/shieldai/shield/internal/ui"
)

// Shortcut is a global key binding and its handler.
type Shortcut struct {
	Key         string
	Description string
	Handler     func(m *Model) tea.Cmd
	Condition   func(m *Model) bool // Optional guard; the key falls through when false
}

// ShortcutRegistry holds the keys handled before the active panel sees them.
var ShortcutRegistry = []Shortcut{
	{
		Key:         keys.CtrlT,
		Description: "Switch tab",
		Handler:     shortcutToggleTab,
	},
	{
		Key:         keys.Alt1,
		Description: "Open AI Assistant",
		Handler:     func(m *Model) tea.Cmd { m.switchTab(TabChat); return nil },
	},
	{
		Key:         keys.Alt2,
		Description: "Open Premium Calculator",
		Handler:     func(m *Model) tea.Cmd { m.switchTab(TabPredict); return nil },
	},
	{
		Key:         keys.CtrlY,
		Description: "Copy latest answer",
		Handler:     shortcutCopyAnswer,
		Condition:   func(m *Model) bool { return m.tab == TabChat },
	},
}

// ExecuteShortcut runs the shortcut bound to key. The bool reports whether
// the key was consumed.
func (m *Model) ExecuteShortcut(key string) (tea.Cmd, bool) {
	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if s.Condition != nil && !s.Condition(m) {
			logger.WithComponent("shortcuts").Debug("guard failed", "key", key)
			return nil, false
		}
		return s.Handler(m), true
	}
	return nil, false
}

func shortcutToggleTab(m *Model) tea.Cmd {
	if m.tab == TabChat {
		m.switchTab(TabPredict)
	} else {
		m.switchTab(TabChat)
	}
	return nil
}

func shortcutCopyAnswer(m *Model) tea.Cmd {
	answer, ok := m.assistant.LastAnswer()
	if !ok {
		return m.flash(ui.FlashWarning, "No answer to copy yet")
	}
	return m.copyWithFlash(answer, "answer")
}
