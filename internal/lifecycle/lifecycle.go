// Package lifecycle owns the single request slot shared by the assistant
// and the premium estimator.
//
// One slot serves both features: while a chat request is outstanding the
// estimator cannot dispatch, and vice versa. Per-feature flags would let a
// chat and a prediction overlap.
//
// The slot is claimed on the Bubble Tea event loop by Start and released on
// the same loop by Settle when the SettledMsg comes back. Nothing times out
// and nothing is cancelled: an operation that never returns keeps the slot
// busy for the rest of the session.
package lifecycle

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/shieldai/shield/internal/logger"
)

// Kind identifies which feature owns a request.
type Kind string

const (
	KindChat    Kind = "chat"
	KindPredict Kind = "predict"
)

// Operation is the asynchronous work performed while the slot is held.
// It runs off the event loop and must not touch UI state.
type Operation func(ctx context.Context) (any, error)

// Request describes the request currently holding the slot.
type Request struct {
	ID      string
	Kind    Kind
	Started time.Time
}

// SettledMsg is delivered to Update when an operation finishes, whether it
// returned a value, an error, or panicked.
type SettledMsg struct {
	Request
	Value   any
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the operation ended without a value.
func (m SettledMsg) Failed() bool {
	return m.Err != nil
}

// Controller holds the busy flag. All methods must be called from the
// event loop; only the returned commands run elsewhere.
type Controller struct {
	ctx     context.Context
	busy    bool
	current Request
	now     func() time.Time
}

// New creates an idle Controller. Operations receive ctx unchanged; pass
// context.Background() to keep requests uncancellable.
func New(ctx context.Context) *Controller {
	return &Controller{ctx: ctx, now: time.Now}
}

// Busy reports whether a request is outstanding. Both features' triggers
// are disabled while this is true.
func (c *Controller) Busy() bool {
	return c.busy
}

// InFlight returns the request holding the slot, if any.
func (c *Controller) InFlight() (Request, bool) {
	return c.current, c.busy
}

// Start claims the slot for op and returns the command that runs it.
// It returns nil, leaving state untouched, if the slot is already held.
func (c *Controller) Start(kind Kind, op Operation) tea.Cmd {
	if c.busy {
		logger.WithComponent("lifecycle").Debug("start refused, slot busy",
			"kind", kind, "holder", c.current.Kind, "holderID", c.current.ID)
		return nil
	}

	req := Request{ID: uuid.New().String(), Kind: kind, Started: c.now()}
	c.busy = true
	c.current = req
	logger.WithComponent("lifecycle").Debug("slot acquired", "kind", kind, "requestID", req.ID)

	ctx := c.ctx
	now := c.now
	return func() tea.Msg {
		return run(ctx, req, op, now)
	}
}

func run(ctx context.Context, req Request, op Operation, now func() time.Time) (msg SettledMsg) {
	msg.Request = req
	defer func() {
		if r := recover(); r != nil {
			msg.Value = nil
			msg.Err = fmt.Errorf("%s request panicked: %v", req.Kind, r)
		}
		msg.Elapsed = now().Sub(req.Started)
	}()
	msg.Value, msg.Err = op(ctx)
	return msg
}

// Settle releases the slot. Release is unconditional: a settlement that
// does not match the recorded request still frees the slot, since at most
// one request can ever be outstanding.
func (c *Controller) Settle(msg SettledMsg) {
	log := logger.WithComponent("lifecycle")
	if !c.busy || msg.ID != c.current.ID {
		log.Warn("settlement for unknown request", "requestID", msg.ID, "holderID", c.current.ID, "busy", c.busy)
	}
	c.busy = false
	c.current = Request{}
	log.Debug("slot released", "kind", msg.Kind, "requestID", msg.ID,
		"elapsed", msg.Elapsed, "failed", msg.Failed())
}
