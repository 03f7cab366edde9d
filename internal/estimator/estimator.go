// Package estimator holds the premium calculator's state: the applicant
// form and the last successfully computed premium.
package estimator

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/lifecycle"
	"github.com/shieldai/shield/internal/logger"
)

// FailureNotice is shown to the user when a calculation fails.
const FailureNotice = "Failed to calculate premium. Please try again."

// Predictor computes a premium for a form. gateway.Client implements it.
type Predictor interface {
	Predict(ctx context.Context, form FormState) (float64, error)
}

// Estimator owns FormState and PredictionResult.
type Estimator struct {
	predictor Predictor
	slot      *lifecycle.Controller

	form       FormState
	premium    float64
	hasPremium bool
}

// New creates an Estimator showing DefaultForm and no result.
func New(predictor Predictor, slot *lifecycle.Controller) *Estimator {
	return &Estimator{
		predictor: predictor,
		slot:      slot,
		form:      DefaultForm(),
	}
}

// Form returns the current form value.
func (e *Estimator) Form() FormState {
	return e.form
}

// SetForm replaces the whole form. Editing is allowed while a request is
// outstanding; the in-flight request keeps the value it was dispatched with.
func (e *Estimator) SetForm(f FormState) {
	if f != e.form {
		logger.WithComponent("estimator").Debug("form replaced", "form", fmt.Sprintf("%+v", f))
	}
	e.form = f
}

// Result returns the last successfully computed premium, if any.
func (e *Estimator) Result() (float64, bool) {
	return e.premium, e.hasPremium
}

// CanCompute reports whether the calculate trigger is enabled.
func (e *Estimator) CanCompute() bool {
	return !e.slot.Busy()
}

// Compute dispatches the current form to the predictor. It returns nil
// when the shared request slot is busy.
func (e *Estimator) Compute() tea.Cmd {
	if !e.CanCompute() {
		return nil
	}
	form := e.form
	if out := form.OutOfRange(); len(out) > 0 {
		logger.WithComponent("estimator").Info("submitting form with values outside advisory ranges", "fields", out)
	}
	return e.slot.Start(lifecycle.KindPredict, func(ctx context.Context) (any, error) {
		return e.predictor.Predict(ctx, form)
	})
}

// HandleSettled applies a settled predict request. On success the result
// is replaced; on failure it is left as it was and the error is returned so
// the caller can raise the blocking notice. The slot has already been
// released by the time this runs.
func (e *Estimator) HandleSettled(msg lifecycle.SettledMsg) error {
	log := logger.WithComponent("estimator")
	if msg.Failed() {
		log.Warn("premium calculation failed", "requestID", msg.ID, "error", msg.Err)
		return msg.Err
	}
	premium, ok := msg.Value.(float64)
	if !ok {
		err := fmt.Errorf("predict settled with %T, want float64", msg.Value)
		log.Error("premium calculation returned unexpected value", "requestID", msg.ID, "error", err)
		return err
	}
	e.premium = premium
	e.hasPremium = true
	log.Info("premium calculated", "requestID", msg.ID, "premium", premium, "elapsed", msg.Elapsed)
	return nil
}
