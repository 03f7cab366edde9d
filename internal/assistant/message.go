package assistant

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who wrote a message.
type Role int

const (
	RoleUser Role = iota
	RoleBot
)

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Message is one transcript entry. Messages are never modified after
// they are appended.
type Message struct {
	ID   string
	Role Role
	Text string
	At   time.Time
}

func newMessage(role Role, text string, at time.Time) Message {
	return Message{
		ID:   uuid.New().String(),
		Role: role,
		Text: text,
		At:   at,
	}
}

// Transcript is the append-only, ordered conversation history.
type Transcript struct {
	messages []Message
}

func (t *Transcript) append(msg Message) {
	t.messages = append(t.messages, msg)
}

// Len returns the number of messages.
func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy of the history in display order.
func (t *Transcript) Messages() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Last returns the most recent message.
func (t *Transcript) Last() (Message, bool) {
	if len(t.messages) == 0 {
		return Message{}, false
	}
	return t.messages[len(t.messages)-1], true
}
