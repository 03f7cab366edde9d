// Package app wires the assistant and the premium estimator into a single
// Bubble Tea program.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/shieldai/shield/internal/assistant"
	"github.com/shieldai/shield/internal/clipboard"
	"github.com/shieldai/shield/internal/config"
	"github.com/shieldai/shield/internal/estimator"
	"github.com/shieldai/shield/internal/lifecycle"
	"github.com/shieldai/shield/internal/logger"
	"github.com/shieldai/shield/internal/notification"
	"github.com/shieldai/shield/internal/ui"
)

// Tab identifies one of the two feature panels.
type Tab int

const (
	TabChat Tab = iota
	TabPredict
)

func (t Tab) String() string {
	switch t {
	case TabPredict:
		return "Premium Calculator"
	default:
		return "AI Assistant"
	}
}

// Service is everything the program needs from the backend.
// gateway.Client implements it.
type Service interface {
	assistant.Asker
	estimator.Predictor
}

// Notifier reports premium results outside the terminal.
type Notifier interface {
	PremiumReady(premium float64) error
}

type desktopNotifier struct{}

func (desktopNotifier) PremiumReady(premium float64) error { return notification.PremiumReady(premium) }

// Option configures a Model.
type Option func(*Model)

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Model) { m.notifier = n }
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(text string) error) Option {
	return func(m *Model) { m.copyText = write }
}

// Model is the main application model
type Model struct {
	cfg     *config.Config
	version string

	slot      *lifecycle.Controller
	assistant *assistant.Manager
	estimator *estimator.Estimator

	header     *ui.Header
	sidebar    *ui.Sidebar
	footer     *ui.Footer
	chat       *ui.Chat
	predict    *ui.Predict
	modal      *ui.Modal
	autoscroll *ui.Autoscroll

	tab    Tab
	width  int
	height int

	// renderedLen is the transcript length last pushed into the chat panel.
	renderedLen int

	notifier Notifier
	copyText func(text string) error
}

// New creates a new app model
func New(cfg *config.Config, svc Service, version string, opts ...Option) *Model {
	ui.SetThemeByName(cfg.GetTheme())

	slot := lifecycle.New(context.Background())
	predict := ui.NewPredict(estimator.DefaultForm())

	m := &Model{
		cfg:       cfg,
		version:   version,
		slot:      slot,
		assistant: assistant.New(svc, slot),
		estimator: estimator.New(svc, slot),
		header:    ui.NewHeader(),
		sidebar: ui.NewSidebar(
			ui.NavItem{Icon: "✨", Label: TabChat.String()},
			ui.NavItem{Icon: "💳", Label: TabPredict.String()},
		),
		footer:     ui.NewFooter(),
		chat:       ui.NewChat(),
		predict:    predict,
		modal:      ui.NewModal(),
		autoscroll: ui.NewAutoscroll(),
		notifier:   desktopNotifier{},
		copyText:   clipboard.WriteText,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.estimator.SetForm(predict.Form())
	m.header.SetOrigin(cfg.GetBaseURL())
	m.switchTab(TabChat)

	logger.WithComponent("app").Info("app initialized",
		"version", version, "baseURL", cfg.GetBaseURL(), "theme", ui.CurrentThemeName())
	return m
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return m.sync()
}

// ActiveTab returns the visible panel.
func (m *Model) ActiveTab() Tab {
	return m.tab
}

// Busy reports whether a request is outstanding.
func (m *Model) Busy() bool {
	return m.slot.Busy()
}

func (m *Model) switchTab(t Tab) {
	m.tab = t
	m.chat.SetFocused(t == TabChat)
	m.predict.SetFocused(t == TabPredict)
	m.sidebar.Select(int(t))
	m.header.SetSection(t.String())
}

// sync pushes domain state into the panels. It runs after every update.
func (m *Model) sync() tea.Cmd {
	busy := m.slot.Busy()

	if n := m.assistant.Len(); n != m.renderedLen {
		m.chat.SetMessages(m.assistant.Transcript())
		m.renderedLen = n
	}
	cmds := []tea.Cmd{m.chat.SetBusy(busy)}

	m.predict.SetBusy(busy)
	m.predict.SetResult(m.estimator.Result())

	busyIdx := -1
	if req, ok := m.slot.InFlight(); ok {
		busyIdx = int(tabFor(req.Kind))
	}
	cmds = append(cmds, m.sidebar.SetBusy(busyIdx))

	view := ui.FooterChat
	switch {
	case m.modal.IsVisible():
		view = ui.FooterModal
	case m.tab == TabPredict:
		view = ui.FooterPredict
	}
	m.footer.SetContext(view, busy)

	cmds = append(cmds, m.autoscroll.Observe(m.assistant.Len(), busy))
	return tea.Batch(cmds...)
}

func tabFor(kind lifecycle.Kind) Tab {
	if kind == lifecycle.KindPredict {
		return TabPredict
	}
	return TabChat
}
