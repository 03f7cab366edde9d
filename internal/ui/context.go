package ui

import (
	"sync"

	"github.com/shieldai/shield/internal/logger"
)

// ViewContext is the one place layout is computed. Panels and mouse
// routing ask it for sizes and origins instead of doing border math.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int // rows between header and footer
	SidebarWidth  int
	MainWidth     int // width of the chat or calculator panel

	mu sync.Mutex
}

var (
	ctx     *ViewContext
	ctxOnce sync.Once
)

// GetViewContext returns the shared ViewContext
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// Log writes a layout debug line.
func (v *ViewContext) Log(msg string, args ...any) {
	logger.WithComponent("layout").Debug(msg, args...)
}

// UpdateTerminalSize recomputes the layout for a new terminal size. Sizes
// below the minimum are clamped; the program renders clipped rather than
// collapsing panels.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	width = max(width, MinTerminalWidth)
	height = max(height, MinTerminalHeight)

	v.TerminalWidth = width
	v.TerminalHeight = height
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight

	v.SidebarWidth = max(width/SidebarWidthRatio, MinSidebarWidth)
	v.MainWidth = width - v.SidebarWidth

	v.Log("terminal resized",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"mainWidth", v.MainWidth,
	)
}

// InnerWidth returns the usable width inside a bordered panel
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a bordered panel
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}

// MainOrigin is the terminal cell at the top-left corner of the main panel.
func (v *ViewContext) MainOrigin() (x, y int) {
	return v.SidebarWidth, v.HeaderHeight
}

// TranscriptOrigin is the first transcript cell relative to the chat
// panel's top-left corner: inside the border, below the panel header.
func (v *ViewContext) TranscriptOrigin() (col, line int) {
	return BorderSize / 2, BorderSize/2 + PanelHeaderHeight
}

// TranscriptHeight is the number of transcript rows in a chat panel of
// the given height. It is never less than one.
func (v *ViewContext) TranscriptHeight(chatHeight int) int {
	return max(v.InnerHeight(chatHeight-InputTotalHeight)-PanelHeaderHeight, 1)
}

// CalculatorColumns splits a calculator panel. When the premium fits beside
// the form, beside is true and formWidth leaves room for it; otherwise the
// form takes the full inner width.
func (v *ViewContext) CalculatorColumns(panelWidth int) (formWidth int, beside bool) {
	inner := v.InnerWidth(panelWidth)
	if inner >= ResultColumnWidth*2+ResultColumnGap {
		return inner - ResultColumnWidth - ResultColumnGap, true
	}
	return inner, false
}
