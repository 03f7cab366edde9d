package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ScrollToLatestMsg asks the chat panel to bring the newest content into
// view. It is produced one frame after the update that changed the
// transcript or the busy state, so the panel already holds the new lines.
type ScrollToLatestMsg struct {
	Length int
	Busy   bool
}

// Autoscroll watches the (transcript length, busy) pair and emits a
// ScrollToLatestMsg whenever either changes.
type Autoscroll struct {
	length   int
	busy     bool
	observed bool
	delay    time.Duration
}

// NewAutoscroll creates a notifier that fires after one render frame.
func NewAutoscroll() *Autoscroll {
	return &Autoscroll{delay: ScrollTickInterval}
}

// Observe records the current pair and returns a command when it differs
// from the previous observation. The first observation always fires.
func (a *Autoscroll) Observe(length int, busy bool) tea.Cmd {
	if a.observed && a.length == length && a.busy == busy {
		return nil
	}
	a.length, a.busy, a.observed = length, busy, true

	msg := ScrollToLatestMsg{Length: length, Busy: busy}
	return tea.Tick(a.delay, func(time.Time) tea.Msg {
		return msg
	})
}
