// Package assistant manages the question-and-answer conversation with the
// insurance assistant.
package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/lifecycle"
	"github.com/shieldai/shield/internal/logger"
)

// FallbackAnswer replaces the answer whenever a chat request fails, for
// any reason.
const FallbackAnswer = "Sorry, I couldn't process your request."

// Asker answers questions. gateway.Client implements it.
type Asker interface {
	Chat(ctx context.Context, question string) (string, error)
}

// Manager owns the transcript and submits questions through the shared
// request slot.
type Manager struct {
	asker      Asker
	slot       *lifecycle.Controller
	transcript Transcript
	now        func() time.Time
}

// New creates a Manager with an empty transcript.
func New(asker Asker, slot *lifecycle.Controller) *Manager {
	return &Manager{
		asker: asker,
		slot:  slot,
		now:   time.Now,
	}
}

// Transcript returns the conversation so far.
func (m *Manager) Transcript() []Message {
	return m.transcript.Messages()
}

// Len returns the number of messages in the transcript.
func (m *Manager) Len() int {
	return m.transcript.Len()
}

// Busy reports whether the shared request slot is held by either feature.
func (m *Manager) Busy() bool {
	return m.slot.Busy()
}

// CanSubmit reports whether Submit(text) would dispatch a request.
func (m *Manager) CanSubmit(text string) bool {
	return strings.TrimSpace(text) != "" && !m.slot.Busy()
}

// Submit appends the trimmed question to the transcript and dispatches it.
// Blank input, or input arriving while the slot is busy, is ignored: the
// transcript is untouched and accepted is false. When accepted, the caller
// clears its input buffer.
func (m *Manager) Submit(text string) (accepted bool, cmd tea.Cmd) {
	question := strings.TrimSpace(text)
	if question == "" || m.slot.Busy() {
		return false, nil
	}

	// The question is shown before the request is even dispatched.
	msg := newMessage(RoleUser, question, m.now())
	m.transcript.append(msg)

	cmd = m.slot.Start(lifecycle.KindChat, func(ctx context.Context) (any, error) {
		return m.asker.Chat(ctx, question)
	})
	logger.WithComponent("assistant").Debug("question submitted", "messageID", msg.ID, "chars", len(question))
	return true, cmd
}

// HandleSettled appends the bot's reply for a settled chat request: the
// answer on success, FallbackAnswer on any failure. The slot has already
// been released by the time this runs.
func (m *Manager) HandleSettled(msg lifecycle.SettledMsg) Message {
	log := logger.WithComponent("assistant")

	text := FallbackAnswer
	switch answer, ok := msg.Value.(string); {
	case msg.Failed():
		log.Warn("chat request failed", "requestID", msg.ID, "error", msg.Err)
	case !ok:
		log.Error("chat request returned unexpected value", "requestID", msg.ID,
			"error", fmt.Errorf("got %T, want string", msg.Value))
	default:
		text = answer
		log.Debug("answer received", "requestID", msg.ID, "chars", len(answer), "elapsed", msg.Elapsed)
	}

	reply := newMessage(RoleBot, text, m.now())
	m.transcript.append(reply)
	return reply
}

// LastAnswer returns the text of the most recent bot message.
func (m *Manager) LastAnswer() (string, bool) {
	msgs := m.transcript.messages
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == RoleBot {
			return msgs[i].Text, true
		}
	}
	return "", false
}
