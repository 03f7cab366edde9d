package demo

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/shieldai/shield/internal/estimator"
	"github.com/shieldai/shield/internal/mockserver"
)

var errInjected = errors.New("demo failure")

// Service answers in-process with the mock service's data.
type Service struct {
	Latency     time.Duration
	FailChat    bool
	FailPredict bool

	// FailPredictAfter > 0 lets that many predictions succeed before the
	// rest fail.
	FailPredictAfter int

	predictions atomic.Int32
}

func (s *Service) wait(ctx context.Context) {
	if s.Latency <= 0 {
		return
	}
	t := time.NewTimer(s.Latency)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// Chat returns the canned answer for question.
func (s *Service) Chat(ctx context.Context, question string) (string, error) {
	s.wait(ctx)
	if s.FailChat {
		return "", errInjected
	}
	return mockserver.Answer(question), nil
}

// Predict prices form with the mock heuristic.
func (s *Service) Predict(ctx context.Context, form estimator.FormState) (float64, error) {
	s.wait(ctx)
	n := int(s.predictions.Add(1))
	if s.FailPredict || (s.FailPredictAfter > 0 && n > s.FailPredictAfter) {
		return 0, errInjected
	}
	return float64(mockserver.Premium(form)), nil
}
