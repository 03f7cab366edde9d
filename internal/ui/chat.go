package ui

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/shieldai/shield/internal/assistant"
	"github.com/shieldai/shield/internal/keys"
)

// Chat is the assistant panel: transcript viewport above a one-line input.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool
	messages []assistant.Message

	// busy mirrors the shared request slot: the typing indicator shows and
	// the input is disabled whenever any request is outstanding.
	busy        bool
	typingVerb  string
	typingFrame int

	scrollSeq int
	scrolling bool

	selection *TextSelection
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Type your message here..."
	ti.CharLimit = ChatInputCharLimit
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// Single-line input: enter belongs to the app.
	ti.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:  vp,
		input:     ti,
		selection: NewTextSelection(),
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()

	viewportHeight := ctx.TranscriptHeight(height)

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(ctx.InnerWidth(width) - InputPaddingWidth)

	ctx.Log("Chat.SetSize", "width", width, "height", height, "viewportHeight", viewportHeight)
	c.updateContent()
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	c.syncInputFocus()
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// syncInputFocus focuses the input only when the panel is visible and idle
func (c *Chat) syncInputFocus() {
	if c.focused && !c.busy {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// SetMessages replaces the rendered transcript
func (c *Chat) SetMessages(messages []assistant.Message) {
	c.messages = messages
	c.selection.Clear()
	c.updateContent()
}

// SetBusy shows or hides the typing indicator and enables or disables the
// input. It returns the indicator's tick command when it starts.
func (c *Chat) SetBusy(busy bool) tea.Cmd {
	if busy == c.busy {
		return nil
	}
	c.busy = busy
	c.syncInputFocus()
	var cmd tea.Cmd
	if busy {
		c.typingVerb = randomThinkingVerb()
		c.typingFrame = 0
		cmd = TypingTick()
	}
	c.updateContent()
	return cmd
}

// IsBusy reports whether the input is currently disabled
func (c *Chat) IsBusy() bool {
	return c.busy
}

// GetInput returns the pending input buffer
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput empties the input buffer
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput replaces the input buffer
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// ScrollToLatest starts a smooth scroll toward the newest content
func (c *Chat) ScrollToLatest() tea.Cmd {
	c.scrollSeq++
	if c.viewport.AtBottom() {
		c.scrolling = false
		return nil
	}
	c.scrolling = true
	return scrollStep(c.scrollSeq)
}

// IsScrolling reports whether a smooth scroll is in progress
func (c *Chat) IsScrolling() bool {
	return c.scrolling
}

// AtBottom reports whether the newest content is in view
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

func (c *Chat) handleScrollStep(msg ScrollStepMsg) tea.Cmd {
	if msg.Seq != c.scrollSeq || !c.scrolling {
		return nil
	}
	step := c.viewport.Height() / ScrollStepDivisor
	if step < 1 {
		step = 1
	}
	c.viewport.ScrollDown(step)
	if c.viewport.AtBottom() {
		c.scrolling = false
		return nil
	}
	return scrollStep(c.scrollSeq)
}

func (c *Chat) renderPanelHeader(width int) string {
	title := PanelTitleStyle.Render("Insurance Assistant")
	badge := StatusOnlineStyle.Render("● Online")
	gap := width - lipgloss.Width(title) - lipgloss.Width(badge)
	if gap < 1 {
		gap = 1
	}
	subtitle := PanelSubtitleStyle.Render(runewidth.Truncate("Ask me anything about your insurance policy", width, "…"))
	return title + strings.Repeat(" ", gap) + badge + "\n" + subtitle
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if len(c.messages) == 0 && !c.busy {
		sb.WriteString(renderEmptyState(wrapWidth))
	}

	for i, msg := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		if msg.Role == assistant.RoleUser {
			sb.WriteString(ChatUserStyle.Render("You:"))
			sb.WriteString("\n")
			sb.WriteString(ChatMessageStyle.Render(wrapText(msg.Text, wrapWidth)))
		} else {
			sb.WriteString(ChatAssistantStyle.Render("🤖 Assistant:"))
			sb.WriteString("\n")
			sb.WriteString(renderMarkdown(strings.TrimSpace(msg.Text), wrapWidth))
		}
	}

	if c.busy {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(ChatAssistantStyle.Render("🤖 Assistant:"))
		sb.WriteString("\n")
		sb.WriteString(renderTypingIndicator(c.typingVerb, c.typingFrame))
	}

	// The offset is kept; ScrollToLatest moves it.
	c.viewport.SetContent(sb.String())
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	switch msg := msg.(type) {
	case TypingTickMsg:
		return c, c.handleTypingTick()
	case ScrollStepMsg:
		return c, c.handleScrollStep(msg)
	case ScrollToLatestMsg:
		return c, c.ScrollToLatest()
	case SelectionFlashTickMsg:
		c.handleSelectionFlashTick()
		return c, nil
	case tea.MouseClickMsg, tea.MouseMotionMsg, tea.MouseReleaseMsg:
		return c, c.handleMouse(msg.(tea.MouseMsg))
	case tea.MouseWheelMsg:
		c.selection.Clear()
	}

	var cmds []tea.Cmd

	if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
		if !c.focused {
			return c, nil
		}
		switch key := keyMsg.String(); {
		case key == keys.Escape:
			c.selection.Clear()
			return c, nil
		case slices.Contains(keys.TranscriptScroll, key):
			c.scrolling = false
			c.selection.Clear()
			var cmd tea.Cmd
			c.viewport, cmd = c.viewport.Update(msg)
			return c, cmd
		}
		// Typing is disabled while a request is outstanding.
		if c.busy {
			return c, nil
		}
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	if c.focused && !c.busy {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	// Mouse wheel and other non-key events scroll the transcript
	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
	}

	ctx := GetViewContext()
	header := c.renderPanelHeader(ctx.InnerWidth(c.width))
	chatPanelHeight := c.height - InputTotalHeight
	chatPanel := panelStyle.Width(c.width).Height(chatPanelHeight).
		Render(lipgloss.JoinVertical(lipgloss.Left, header, c.selectionView(c.viewport.View())))

	inputStyle := ChatInputStyle
	switch {
	case c.busy:
		inputStyle = ChatInputDisabledStyle
	case c.focused:
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
