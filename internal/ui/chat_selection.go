package ui

// Transcript selection works in viewport cells: (0,0) is the first cell of
// the first visible transcript line. The app hands the chat mouse events in
// panel coordinates, and toViewport removes the border and panel header.

import (
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"
)

// SelectionCopyMsg carries selected transcript text to be written to the
// native clipboard.
type SelectionCopyMsg struct {
	Text string
}

// SelectionFlashTickMsg ends the copy flash
type SelectionFlashTickMsg time.Time

const (
	doubleClickThreshold = 500 * time.Millisecond
	clickTolerance       = 2 // cells
	selectionFlashTime   = 150 * time.Millisecond
)

// TextSelection tracks mouse-based text selection in the transcript.
type TextSelection struct {
	StartCol, StartLine int
	EndCol, EndLine     int
	Active              bool // true while dragging

	lastClickTime time.Time
	lastClickX    int
	lastClickY    int
	clickCount    int

	// FlashFrame is -1 when idle and 0 while the copy flash is visible.
	FlashFrame int
}

// NewTextSelection creates an empty selection.
func NewTextSelection() *TextSelection {
	return &TextSelection{FlashFrame: -1}
}

// HasSelection reports whether the selection covers at least one cell.
func (s *TextSelection) HasSelection() bool {
	return s.StartLine != s.EndLine || s.StartCol != s.EndCol
}

// Clear resets the selection.
func (s *TextSelection) Clear() {
	s.StartCol, s.StartLine = 0, 0
	s.EndCol, s.EndLine = 0, 0
	s.Active = false
	s.FlashFrame = -1
}

// area returns the selection in reading order.
func (s *TextSelection) area() (startCol, startLine, endCol, endLine int) {
	startCol, startLine = s.StartCol, s.StartLine
	endCol, endLine = s.EndCol, s.EndLine
	if startLine > endLine || (startLine == endLine && startCol > endCol) {
		startCol, endCol = endCol, startCol
		startLine, endLine = endLine, startLine
	}
	return
}

// SelectionFlashTick returns a command that ends the copy flash
func SelectionFlashTick() tea.Cmd {
	return tea.Tick(selectionFlashTime, func(t time.Time) tea.Msg {
		return SelectionFlashTickMsg(t)
	})
}

// toViewport converts panel coordinates to viewport cells. ok is false for
// points outside the transcript.
func (c *Chat) toViewport(x, y int) (col, line int, ok bool) {
	originCol, originLine := GetViewContext().TranscriptOrigin()
	col, line = x-originCol, y-originLine
	if col < 0 || line < 0 || col >= c.viewport.Width() || line >= c.viewport.Height() {
		return col, line, false
	}
	return col, line, true
}

// HasTextSelection reports whether part of the transcript is selected
func (c *Chat) HasTextSelection() bool {
	return c.selection.HasSelection()
}

func (c *Chat) handleMouse(msg tea.MouseMsg) tea.Cmd {
	m := msg.Mouse()
	col, line, inside := c.toViewport(m.X, m.Y)

	switch msg.(type) {
	case tea.MouseClickMsg:
		if m.Button != tea.MouseLeft {
			return nil
		}
		if !inside {
			c.selection.Clear()
			return nil
		}
		return c.handleMouseClick(col, line)

	case tea.MouseMotionMsg:
		if !c.selection.Active {
			return nil
		}
		c.selection.EndCol, c.selection.EndLine = c.clampToViewport(col, line)

	case tea.MouseReleaseMsg:
		if !c.selection.Active {
			return nil
		}
		c.selection.Active = false
		return c.CopySelectedText()
	}
	return nil
}

func (c *Chat) clampToViewport(col, line int) (int, int) {
	col = max(0, min(col, c.viewport.Width()))
	line = max(0, min(line, c.viewport.Height()-1))
	return col, line
}

// handleMouseClick starts a drag on a single click, selects a word on a
// double click and a paragraph on a triple click.
func (c *Chat) handleMouseClick(col, line int) tea.Cmd {
	s := c.selection
	now := time.Now()

	if now.Sub(s.lastClickTime) <= doubleClickThreshold &&
		abs(col-s.lastClickX) <= clickTolerance &&
		abs(line-s.lastClickY) <= clickTolerance {
		s.clickCount++
	} else {
		s.clickCount = 1
	}
	s.lastClickTime = now
	s.lastClickX, s.lastClickY = col, line

	switch s.clickCount {
	case 1:
		s.StartCol, s.StartLine = col, line
		s.EndCol, s.EndLine = col, line
		s.Active = true
		s.FlashFrame = -1
		return nil
	case 2:
		c.SelectWord(col, line)
	default:
		c.SelectParagraph(line)
		s.clickCount = 0
	}
	return c.CopySelectedText()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func (c *Chat) visibleLines() []string {
	return strings.Split(c.viewport.View(), "\n")
}

// SelectWord selects the word under the given cell
func (c *Chat) SelectWord(col, line int) {
	lines := c.visibleLines()
	if line < 0 || line >= len(lines) {
		return
	}

	text := ansi.Strip(lines[line])
	start, end, found := wordAt(text, col)
	if !found {
		return
	}
	s := c.selection
	s.StartCol, s.StartLine = start, line
	s.EndCol, s.EndLine = end, line
	s.Active = false
}

// wordAt returns the cell span of the word covering col. Whitespace is not
// a word.
func wordAt(text string, col int) (start, end int, ok bool) {
	state := -1
	pos := 0
	rest := text
	for len(rest) > 0 {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		w := uniseg.StringWidth(word)
		if col >= pos && col < pos+w {
			if strings.TrimSpace(word) == "" {
				return 0, 0, false
			}
			return pos, pos + w, true
		}
		pos += w
	}
	return 0, 0, false
}

// SelectParagraph selects the block of non-blank lines around line
func (c *Chat) SelectParagraph(line int) {
	lines := c.visibleLines()
	if line < 0 || line >= len(lines) {
		return
	}
	blank := func(i int) bool { return strings.TrimSpace(ansi.Strip(lines[i])) == "" }
	if blank(line) {
		return
	}

	start, end := line, line
	for start > 0 && !blank(start-1) {
		start--
	}
	for end < len(lines)-1 && !blank(end+1) {
		end++
	}

	s := c.selection
	s.StartCol, s.StartLine = 0, start
	s.EndCol, s.EndLine = ansi.StringWidth(lines[end]), end
	s.Active = false
}

// GetSelectedText returns the plain text under the selection
func (c *Chat) GetSelectedText() string {
	if !c.selection.HasSelection() {
		return ""
	}

	lines := c.visibleLines()
	startCol, startLine, endCol, endLine := c.selection.area()

	var out []string
	for y := startLine; y <= endLine && y < len(lines); y++ {
		left, right := 0, ansi.StringWidth(lines[y])
		if y == startLine {
			left = startCol
		}
		if y == endLine {
			right = min(right, endCol)
		}
		if left >= right {
			out = append(out, "")
			continue
		}
		out = append(out, strings.TrimRight(ansi.Strip(ansi.Cut(lines[y], left, right)), " "))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// CopySelectedText copies the selection through the terminal (OSC 52) and
// asks the app to write it to the native clipboard, then flashes it.
func (c *Chat) CopySelectedText() tea.Cmd {
	text := c.GetSelectedText()
	if text == "" {
		return nil
	}
	c.selection.FlashFrame = 0
	return tea.Batch(
		tea.SetClipboard(text),
		func() tea.Msg { return SelectionCopyMsg{Text: text} },
		SelectionFlashTick(),
	)
}

// handleSelectionFlashTick clears the selection once the flash is over
func (c *Chat) handleSelectionFlashTick() {
	if c.selection.FlashFrame < 0 {
		return
	}
	c.selection.Clear()
}

// selectionView highlights the selected cells of the rendered viewport
func (c *Chat) selectionView(view string) string {
	if !c.selection.HasSelection() {
		return view
	}

	width, height := c.viewport.Width(), c.viewport.Height()
	if width <= 0 || height <= 0 {
		return view
	}

	area := uv.Rect(0, 0, width, height)
	scr := uv.NewScreenBuffer(area.Dx(), area.Dy())
	uv.NewStyledString(view).Draw(scr, area)

	style := TextSelectionStyle
	if c.selection.FlashFrame == 0 {
		style = TextSelectionFlashStyle
	}
	var bg, fg color.Color = style.GetBackground(), style.GetForeground()

	startCol, startLine, endCol, endLine := c.selection.area()
	for y := startLine; y <= endLine && y < height; y++ {
		xStart, xEnd := 0, width
		if y == startLine {
			xStart = startCol
		}
		if y == endLine {
			xEnd = endCol
		}
		for x := xStart; x < xEnd && x < width; x++ {
			cell := scr.CellAt(x, y)
			if cell == nil {
				continue
			}
			cell = cell.Clone()
			cell.Style.Bg = bg
			cell.Style.Fg = fg
			scr.SetCell(x, y, cell)
		}
	}

	return scr.Render()
}
