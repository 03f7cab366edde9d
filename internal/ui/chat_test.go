package ui

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/shieldai/shield/internal/assistant"
)

func newTestChat() *Chat {
	GetViewContext().UpdateTerminalSize(120, 40)
	c := NewChat()
	c.SetSize(80, 20)
	c.SetFocused(true)
	return c
}

func userMsg(text string) assistant.Message {
	return assistant.Message{Role: assistant.RoleUser, Text: text}
}

func botMsg(text string) assistant.Message {
	return assistant.Message{Role: assistant.RoleBot, Text: text}
}

func TestWrapText(t *testing.T) {
	text := "this is a longer text that needs wrapping"
	wrapped := wrapText(text, 20)

	for _, line := range strings.Split(wrapped, "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Errorf("line %q is %d cells wide", line, w)
		}
	}
	if got := strings.Join(strings.Fields(wrapped), " "); got != text {
		t.Errorf("wrapping lost words: %q", got)
	}
	if wrapText(text, 0) != text {
		t.Error("zero width should return the original text")
	}
}

func TestRenderMarkdown(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		notWant []string
	}{
		{"bold", "Your **deductible** applies", []string{"deductible"}, []string{"**"}},
		{"inline code", "Use `policy_id` here", []string{"policy_id"}, []string{"`"}},
		{"bullet", "- dental\n- vision", []string{"• dental", "• vision"}, nil},
		{"numbered", "1. file a claim\n2. wait", []string{"1. file a claim", "2. wait"}, nil},
		{"heading", "## Coverage", []string{"Coverage"}, []string{"##"}},
		{"code block", "```json\n{\"a\": 1}\n```", []string{"\"a\""}, []string{"```"}},
		{"unterminated fence", "```\nraw", []string{"raw"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripANSI(renderMarkdown(tt.input, 60))
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("renderMarkdown(%q) = %q, want it to contain %q", tt.input, got, w)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(got, nw) {
					t.Errorf("renderMarkdown(%q) = %q, should not contain %q", tt.input, got, nw)
				}
			}
		})
	}
}

func TestChat_EmptyState(t *testing.T) {
	c := newTestChat()

	view := stripANSI(c.View())
	if !strings.Contains(view, "How can I help you today?") {
		t.Errorf("empty chat should show the welcome hint:\n%s", view)
	}
	if !strings.Contains(view, "Online") {
		t.Error("panel header should show the online badge")
	}
}

func TestChat_RendersTranscriptInOrder(t *testing.T) {
	c := newTestChat()
	c.SetMessages([]assistant.Message{
		userMsg("What is covered?"),
		botMsg("Hospital stays are covered."),
	})

	view := stripANSI(c.View())
	q := strings.Index(view, "What is covered?")
	a := strings.Index(view, "Hospital stays are covered.")
	if q < 0 || a < 0 || q > a {
		t.Errorf("question should render above answer:\n%s", view)
	}
	if strings.Contains(view, "How can I help you today?") {
		t.Error("empty-state hint should disappear once there are messages")
	}
	if !strings.Contains(view, "You:") || !strings.Contains(view, "Assistant:") {
		t.Error("messages should carry role labels")
	}
}

func TestChat_SetBusyShowsTypingIndicator(t *testing.T) {
	c := newTestChat()
	c.SetMessages([]assistant.Message{userMsg("hi")})

	if cmd := c.SetBusy(true); cmd == nil {
		t.Error("becoming busy should start the typing tick")
	}
	if cmd := c.SetBusy(true); cmd != nil {
		t.Error("repeating SetBusy(true) should not start a second tick")
	}
	if !strings.Contains(stripANSI(c.View()), "∙") {
		t.Error("typing dots should render while busy")
	}

	c.SetBusy(false)
	if strings.Contains(stripANSI(c.View()), "∙") {
		t.Error("typing dots should disappear when idle")
	}
	if _, cmd := c.Update(TypingTickMsg{}); cmd != nil {
		t.Error("typing tick should stop once idle")
	}
}

func TestChat_InputDisabledWhileBusy(t *testing.T) {
	c := newTestChat()

	c.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	if c.GetInput() != "a" {
		t.Fatalf("input = %q, want %q", c.GetInput(), "a")
	}

	c.SetBusy(true)
	c.Update(tea.KeyPressMsg{Code: 'b', Text: "b"})
	if c.GetInput() != "a" {
		t.Errorf("typing while busy should be ignored, input = %q", c.GetInput())
	}

	c.SetBusy(false)
	c.Update(tea.KeyPressMsg{Code: 'c', Text: "c"})
	if c.GetInput() != "ac" {
		t.Errorf("input = %q, want %q", c.GetInput(), "ac")
	}
}

func TestChat_UnfocusedIgnoresKeys(t *testing.T) {
	c := newTestChat()
	c.SetFocused(false)

	c.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	if c.GetInput() != "" {
		t.Errorf("hidden chat should not take input, got %q", c.GetInput())
	}
}

func TestChat_ClearInput(t *testing.T) {
	c := newTestChat()
	c.SetInput("pending question")
	c.ClearInput()
	if c.GetInput() != "" {
		t.Errorf("ClearInput left %q", c.GetInput())
	}
}

func TestChat_SmoothScrollReachesBottom(t *testing.T) {
	c := newTestChat()

	var msgs []assistant.Message
	for i := 0; i < 40; i++ {
		msgs = append(msgs, userMsg("question"), botMsg("answer"))
	}
	c.SetMessages(msgs)

	if c.AtBottom() {
		t.Fatal("a long transcript should start scrolled to the top")
	}

	cmd := c.ScrollToLatest()
	if cmd == nil || !c.IsScrolling() {
		t.Fatal("ScrollToLatest should start stepping")
	}

	steps := 0
	for c.IsScrolling() {
		steps++
		if steps > 200 {
			t.Fatal("smooth scroll did not terminate")
		}
		c.Update(ScrollStepMsg{Seq: c.scrollSeq})
	}
	if steps < 2 {
		t.Errorf("scroll should take several animated steps, took %d", steps)
	}
	if !c.AtBottom() {
		t.Error("smooth scroll should end at the bottom")
	}
}

func TestChat_StaleScrollStepIgnored(t *testing.T) {
	c := newTestChat()
	var msgs []assistant.Message
	for i := 0; i < 40; i++ {
		msgs = append(msgs, userMsg("q"), botMsg("a"))
	}
	c.SetMessages(msgs)

	c.ScrollToLatest()
	stale := c.scrollSeq
	c.ScrollToLatest()

	if _, cmd := c.Update(ScrollStepMsg{Seq: stale}); cmd != nil {
		t.Error("a step from a superseded scroll should be dropped")
	}
}

func TestChat_ScrollToLatestAtBottomIsNoop(t *testing.T) {
	c := newTestChat()
	c.SetMessages([]assistant.Message{userMsg("short")})

	if cmd := c.ScrollToLatest(); cmd != nil {
		t.Error("nothing to scroll when everything fits")
	}
	if c.IsScrolling() {
		t.Error("should not be scrolling")
	}
}
