package app

import (
	"context"
	"errors"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/charmbracelet/x/ansi"

	"github.com/shieldai/shield/internal/config"
	"github.com/shieldai/shield/internal/estimator"
	"github.com/shieldai/shield/internal/keys"
)

var errBackend = errors.New("backend unavailable")

// fakeService answers from canned values and records what it was asked.
type fakeService struct {
	mu        sync.Mutex
	answer    string
	chatErr   error
	premium   float64
	predErr   error
	questions []string
	forms     []estimator.FormState
}

func (f *fakeService) Chat(ctx context.Context, question string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.questions = append(f.questions, question)
	return f.answer, f.chatErr
}

func (f *fakeService) Predict(ctx context.Context, form estimator.FormState) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forms = append(f.forms, form)
	return f.premium, f.predErr
}

// fakeNotifier counts notifications instead of raising them.
type fakeNotifier struct {
	mu    sync.Mutex
	ready []float64
}

func (n *fakeNotifier) PremiumReady(premium float64) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ready = append(n.ready, premium)
	return nil
}

// testConfig creates a minimal config for testing.
func testConfig() *config.Config {
	return &config.Config{
		BaseURL: "http://127.0.0.1:8000",
		Theme:   "shield",
	}
}

// testModel creates a test Model backed by svc, with the clipboard and
// notifications stubbed out.
func testModel(svc *fakeService, opts ...Option) *Model {
	opts = append([]Option{
		WithClipboard(func(string) error { return nil }),
		WithNotifier(&fakeNotifier{}),
	}, opts...)
	return New(testConfig(), svc, "0.0.0-test", opts...)
}

// testModelWithSize creates a test Model and sets its size.
func testModelWithSize(svc *fakeService, width, height int) *Model {
	m := testModel(svc)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
// Examples: "a", "enter", "tab", "esc", "ctrl+t"
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.ShiftEnter:
		return tea.KeyPressMsg{Code: tea.KeyEnter, Mod: tea.ModShift}
	case keys.Tab:
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case keys.ShiftTab:
		return tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Backspace:
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case keys.Right:
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	case keys.Alt1:
		return tea.KeyPressMsg{Code: '1', Mod: tea.ModAlt}
	case keys.Alt2:
		return tea.KeyPressMsg{Code: '2', Mod: tea.ModAlt}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press through Update.
func sendKey(m *Model, key string) *Model {
	result, _ := m.Update(keyPress(key))
	return result.(*Model)
}

// typeText simulates typing a string one key at a time.
func typeText(m *Model, text string) *Model {
	for _, ch := range text {
		if ch == ' ' {
			m = sendKey(m, keys.Space)
			continue
		}
		m = sendKey(m, string(ch))
	}
	return m
}

// press routes a key the way Update does and returns only the command the
// key itself produced, without the redraw ticks Update batches in.
func press(m *Model, key string) tea.Cmd {
	cmd := m.handleKeyPress(keyPress(key))
	m.sync()
	return cmd
}

// settle runs a request command and feeds its result back into the model.
func settle(m *Model, cmd tea.Cmd) {
	m.Update(cmd())
}

// plainView renders the model without escape sequences. The input cursor
// styles the first placeholder cell on its own, so raw views never contain
// the placeholder as one run.
func plainView(m *Model) string {
	return ansi.Strip(m.RenderToString())
}

// formCmdWait bounds how long runFormCmd waits on a command. Field focus
// changes answer at once; cursor blinks sleep and are dropped.
const formCmdWait = 50 * time.Millisecond

// runFormCmd feeds the immediate results of cmd back through Update, the
// way the runtime would deliver them.
func runFormCmd(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	select {
	case msg := <-done:
		switch msg := msg.(type) {
		case nil:
		case tea.BatchMsg:
			for _, c := range msg {
				runFormCmd(m, c)
			}
		default:
			m.Update(msg)
		}
	case <-time.After(formCmdWait):
	}
}

// pressForm sends key to the calculator form and runs what the form asks
// for in return.
func pressForm(m *Model, key string) {
	runFormCmd(m, press(m, key))
}
