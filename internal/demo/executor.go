package demo

import (
	"fmt"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/app"
	"github.com/shieldai/shield/internal/config"
	"github.com/shieldai/shield/internal/keys"
	"github.com/shieldai/shield/internal/logger"
)

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every step (default: false)
	CaptureEveryStep bool

	// TypeDelay is the frame delay between characters when typing (default: 50ms)
	TypeDelay time.Duration

	// KeyDelay is how long the program runs after a key press (default: 100ms)
	KeyDelay time.Duration

	// SettleTimeout bounds a Settle step (default: 10s)
	SettleTimeout time.Duration

	// TimeScale multiplies every real wait, including service latency.
	// Frame delays are recorded unscaled. Default 1.
	TimeScale float64
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		TypeDelay:        50 * time.Millisecond,
		KeyDelay:         100 * time.Millisecond,
		SettleTimeout:    10 * time.Second,
		TimeScale:        1,
	}
}

// Executor runs demo scenarios and captures frames. It plays the part of
// the Bubble Tea runtime: commands run on goroutines and their messages
// are fed back into Update from the executor's goroutine.
type Executor struct {
	config ExecutorConfig
	model  *app.Model
	frames []Frame

	currentAnnotation string

	msgs      chan tea.Msg
	done      chan struct{}
	closeOnce sync.Once
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.TimeScale <= 0 {
		cfg.TimeScale = 1
	}
	return &Executor{
		config: cfg,
		frames: []Frame{},
	}
}

// Cleanup stops any commands still running after Run.
func (e *Executor) Cleanup() {
	e.closeOnce.Do(func() {
		if e.done != nil {
			close(e.done)
		}
	})
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	e.setup(scenario)
	defer e.Cleanup()

	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d failed: %w", i, err)
		}
	}

	return e.frames, nil
}

// setup initializes the model for the scenario.
func (e *Executor) setup(scenario *Scenario) {
	cfg := &config.Config{
		BaseURL: config.DefaultBaseURL,
		Theme:   scenario.Setup.Theme,
	}
	svc := &Service{
		Latency:          e.scale(scenario.Setup.Latency),
		FailChat:         scenario.Setup.FailChat,
		FailPredict:      scenario.Setup.FailPredict,
		FailPredictAfter: scenario.Setup.FailPredictAfter,
	}

	e.msgs = make(chan tea.Msg, 64)
	e.done = make(chan struct{})
	e.model = app.New(cfg, svc, "demo",
		app.WithClipboard(func(string) error { return nil }),
		app.WithNotifier(nil),
	)

	logger.WithComponent("demo").Info("running scenario", "name", scenario.Name, "steps", len(scenario.Steps))
	e.dispatch(e.model.Init())
	e.send(tea.WindowSizeMsg{Width: scenario.Width, Height: scenario.Height})
}

func (e *Executor) scale(d time.Duration) time.Duration {
	return time.Duration(float64(d) * e.config.TimeScale)
}

// executeStep executes a single step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.pump(e.scale(step.Duration))
		e.captureFrame(index, step.Duration)

	case StepKey:
		e.sendKey(step.Key)
		e.pump(e.scale(e.config.KeyDelay))
		if e.config.CaptureEveryStep {
			e.captureFrame(index, e.config.KeyDelay)
		}

	case StepTypeText:
		for _, ch := range step.Text {
			key := string(ch)
			if ch == ' ' {
				key = keys.Space
			}
			e.sendKey(key)
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.TypeDelay)
			}
		}
		e.pump(e.scale(e.config.KeyDelay))

	case StepSettle:
		if err := e.settle(); err != nil {
			return err
		}
		e.pump(e.scale(e.config.KeyDelay))
		e.captureFrame(index, 200*time.Millisecond)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation

	case StepCapture:
		e.captureFrame(index, 0)
	}

	return nil
}

// dispatch runs cmd on its own goroutine and queues its message.
func (e *Executor) dispatch(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	go func() {
		msg := cmd()
		switch msg := msg.(type) {
		case nil:
			return
		case tea.BatchMsg:
			for _, c := range msg {
				e.dispatch(c)
			}
			return
		case tea.QuitMsg:
			return
		}
		select {
		case e.msgs <- msg:
		case <-e.done:
		}
	}()
}

// send delivers msg to the model on the executor's goroutine.
func (e *Executor) send(msg tea.Msg) {
	result, cmd := e.model.Update(msg)
	e.model = result.(*app.Model)
	e.dispatch(cmd)
}

// pump processes queued messages for d.
func (e *Executor) pump(d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case msg := <-e.msgs:
			e.send(msg)
		case <-timer.C:
			return
		}
	}
}

// settle processes messages until no request is outstanding.
func (e *Executor) settle() error {
	timeout := time.NewTimer(e.config.SettleTimeout)
	defer timeout.Stop()
	for e.model.Busy() {
		select {
		case msg := <-e.msgs:
			e.send(msg)
		case <-timeout.C:
			return fmt.Errorf("request did not settle within %v", e.config.SettleTimeout)
		}
	}
	return nil
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	e.frames = append(e.frames, Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	})
	e.currentAnnotation = ""
}

// sendKey sends a key press to the model.
func (e *Executor) sendKey(key string) {
	e.send(keyPress(key))
}

// keyPress converts a key string to a tea.KeyPressMsg.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.Left:
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	case keys.Alt1:
		return tea.KeyPressMsg{Code: '1', Mod: tea.ModAlt}
	case keys.Alt2:
		return tea.KeyPressMsg{Code: '2', Mod: tea.ModAlt}
	default:
		runes := []rune(key)
		if len(runes) == 1 {
			return tea.KeyPressMsg{Code: runes[0], Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
