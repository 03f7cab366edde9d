package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/estimator"
	"github.com/shieldai/shield/internal/keys"
	"github.com/shieldai/shield/internal/lifecycle"
	"github.com/shieldai/shield/internal/logger"
	"github.com/shieldai/shield/internal/ui"
)

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		if msg.String() == keys.CtrlC {
			logger.WithComponent("app").Info("quit requested")
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKeyPress(msg))

	case lifecycle.SettledMsg:
		cmds = append(cmds, m.handleSettled(msg))

	case ui.ModalDismissedMsg:
		cmds = append(cmds, m.modal.Update(msg))

	case ui.FlashTickMsg:
		cmds = append(cmds, m.handleFlashTick())

	case ui.SidebarTickMsg:
		_, cmd := m.sidebar.Update(msg)
		cmds = append(cmds, cmd)

	case ui.TypingTickMsg, ui.ScrollStepMsg, ui.ScrollToLatestMsg, ui.SelectionFlashTickMsg:
		_, cmd := m.chat.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseWheelMsg:
		if m.tab == TabChat && !m.modal.IsVisible() {
			_, cmd := m.chat.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg:
		cmds = append(cmds, m.routeMouseToChat(msg.(tea.MouseMsg)))

	case ui.SelectionCopyMsg:
		cmds = append(cmds, m.handleSelectionCopy(msg))

	default:
		// Cursor blinks and form-internal messages.
		_, cmd := m.chat.Update(msg)
		cmds = append(cmds, cmd)
		cmds = append(cmds, m.updatePredict(msg))
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	key := msg.String()

	// The alert blocks everything else until it is dismissed.
	if m.modal.IsVisible() {
		return m.modal.Update(msg)
	}

	if cmd, ok := m.ExecuteShortcut(key); ok {
		return cmd
	}

	switch m.tab {
	case TabPredict:
		if key == keys.Enter {
			return m.computePremium()
		}
		return m.updatePredict(msg)
	default:
		switch key {
		case keys.Enter:
			return m.submitQuestion()
		case keys.ShiftEnter:
			return nil
		}
		_, cmd := m.chat.Update(msg)
		return cmd
	}
}

func (m *Model) updatePredict(msg tea.Msg) tea.Cmd {
	_, cmd := m.predict.Update(msg)
	m.estimator.SetForm(m.predict.Form())
	return cmd
}

func (m *Model) submitQuestion() tea.Cmd {
	accepted, cmd := m.assistant.Submit(m.chat.GetInput())
	if accepted {
		m.chat.ClearInput()
	}
	return cmd
}

func (m *Model) computePremium() tea.Cmd {
	m.estimator.SetForm(m.predict.Form())
	cmd := m.estimator.Compute()
	if cmd == nil {
		logger.WithComponent("app").Debug("calculate ignored while a request is in flight")
	}
	return cmd
}

// handleSettled releases the slot and hands the outcome to the feature
// that started the request.
func (m *Model) handleSettled(msg lifecycle.SettledMsg) tea.Cmd {
	m.slot.Settle(msg)

	switch msg.Kind {
	case lifecycle.KindChat:
		m.assistant.HandleSettled(msg)
		return nil

	case lifecycle.KindPredict:
		if err := m.estimator.HandleSettled(msg); err != nil {
			// The alert is the only failure notice; the desktop stays quiet.
			m.modal.ShowAlert("Calculation failed", estimator.FailureNotice)
			return nil
		}
		premium, _ := m.estimator.Result()
		return m.notify(func(n Notifier) error { return n.PremiumReady(premium) })
	}

	logger.WithComponent("app").Warn("settled request with unknown kind", "kind", msg.Kind, "requestID", msg.ID)
	return nil
}

// notify sends a desktop notification off the event loop when enabled.
func (m *Model) notify(send func(Notifier) error) tea.Cmd {
	if !m.cfg.GetNotificationsEnabled() || m.notifier == nil {
		return nil
	}
	n := m.notifier
	return func() tea.Msg {
		if err := send(n); err != nil {
			logger.WithComponent("app").Warn("notification failed", "error", err)
		}
		return nil
	}
}
