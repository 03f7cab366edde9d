package ui

import (
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// TypingTickMsg advances the typing indicator
type TypingTickMsg time.Time

// ScrollStepMsg advances a smooth scroll; stale sequences are ignored
type ScrollStepMsg struct {
	Seq int
}

// thinkingVerbs cycle in the typing indicator while an answer is pending
var thinkingVerbs = []string{
	"Thinking",
	"Reviewing",
	"Checking the policy",
	"Looking it up",
	"Considering",
	"Analyzing",
	"Formulating",
}

// randomThinkingVerb returns a random verb from the list
func randomThinkingVerb() string {
	return thinkingVerbs[rand.Intn(len(thinkingVerbs))]
}

// spinnerFrames is the shimmering glyph shown before the verb
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// typingDots is the three-dot bubble from the web client
var typingDots = []string{"●∙∙", "∙●∙", "∙∙●", "∙●∙"}

// TypingTick returns a command that advances the typing indicator
func TypingTick() tea.Cmd {
	return tea.Tick(TypingTickInterval, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

func scrollStep(seq int) tea.Cmd {
	return tea.Tick(ScrollTickInterval, func(time.Time) tea.Msg {
		return ScrollStepMsg{Seq: seq}
	})
}

// renderTypingIndicator renders the spinner, the verb and the dots
func renderTypingIndicator(verb string, frame int) string {
	spinnerStyle := lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)
	verbStyle := lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Italic(true)

	return spinnerStyle.Render(spinnerFrames[frame%len(spinnerFrames)]) + " " +
		verbStyle.Render(verb) + " " +
		StatusLoadingStyle.Render(typingDots[frame%len(typingDots)])
}

// handleTypingTick redraws the indicator and schedules the next tick while busy
func (c *Chat) handleTypingTick() tea.Cmd {
	if !c.busy {
		return nil
	}
	c.typingFrame++
	c.updateContent()
	return TypingTick()
}
