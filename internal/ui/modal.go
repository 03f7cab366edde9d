package ui

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/shieldai/shield/internal/keys"
)

// ModalDismissedMsg is sent when the user closes the alert.
type ModalDismissedMsg struct{}

// Alert is a blocking notice shown over the whole screen.
type Alert struct {
	Title   string
	Message string
}

const alertHelp = "Enter or Esc to dismiss"

func (a *Alert) render() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		ModalTitleStyle.Render(a.Title),
		StatusErrorStyle.Render(a.Message),
		ModalHelpStyle.Render(alertHelp),
	)
}

// Modal holds at most one alert. While an alert is showing it takes all
// key input and the rest of the screen is hidden.
type Modal struct {
	alert *Alert
}

func NewModal() *Modal {
	return &Modal{}
}

// ShowAlert replaces any visible alert.
func (m *Modal) ShowAlert(title, message string) {
	m.alert = &Alert{Title: title, Message: message}
}

// Alert returns the visible alert, or nil.
func (m *Modal) Alert() *Alert { return m.alert }

func (m *Modal) Hide() { m.alert = nil }

func (m *Modal) IsVisible() bool { return m.alert != nil }

// Update hides the alert on ModalDismissedMsg and answers Enter or Esc
// with one. Other input is swallowed.
func (m *Modal) Update(msg tea.Msg) tea.Cmd {
	if m.alert == nil {
		return nil
	}
	switch msg := msg.(type) {
	case ModalDismissedMsg:
		m.Hide()
	case tea.KeyPressMsg:
		if k := msg.String(); k == keys.Enter || k == keys.Escape {
			return func() tea.Msg { return ModalDismissedMsg{} }
		}
	}
	return nil
}

// View centers the alert in a screen of the given size.
func (m *Modal) View(width, height int) string {
	if m.alert == nil {
		return ""
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		ModalAlertStyle.Render(m.alert.render()))
}
