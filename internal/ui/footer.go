package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the color of a transient footer message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays up
const DefaultFlashDuration = 3 * time.Second

// FlashMessage is a transient status line that replaces the keybindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// Expired reports whether the message has outlived its duration
func (f *FlashMessage) Expired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg is sent to check whether the flash message has expired
type FlashTickMsg time.Time

// FlashTick returns a command that fires once a second while a flash is shown
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// FooterView selects which set of bindings the footer shows
type FooterView int

const (
	FooterChat FooterView = iota
	FooterPredict
	FooterModal
)

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	view         FooterView
	busy         bool
	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates which bindings are shown
func (f *Footer) SetContext(view FooterView, busy bool) {
	f.view = view
	f.busy = busy
}

// SetFlash shows a message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a message for the given duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes any flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.Expired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the keybindings for the current context
func (f *Footer) Bindings() []KeyBinding {
	switch f.view {
	case FooterModal:
		return []KeyBinding{
			{Key: "enter/esc", Desc: "dismiss"},
		}
	case FooterPredict:
		calc := "calculate"
		if f.busy {
			calc = "calculating..."
		}
		return []KeyBinding{
			{Key: "enter", Desc: calc},
			{Key: "tab/shift+tab", Desc: "field"},
			{Key: "←/→", Desc: "option"},
			{Key: "ctrl+t", Desc: "switch tab"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	default:
		send := "send"
		if f.busy {
			send = "waiting..."
		}
		return []KeyBinding{
			{Key: "enter", Desc: send},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+y", Desc: "copy answer"},
			{Key: "ctrl+t", Desc: "switch tab"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(f.renderFlash())
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}

func (f *Footer) renderFlash() string {
	var style lipgloss.Style
	switch f.flashMessage.Type {
	case FlashSuccess:
		style = lipgloss.NewStyle().Foreground(ColorSuccess)
	case FlashWarning:
		style = lipgloss.NewStyle().Foreground(ColorWarning)
	case FlashError:
		style = StatusErrorStyle
	default:
		style = lipgloss.NewStyle().Foreground(ColorText)
	}
	return style.Render(f.flashMessage.Text)
}
