// Package ui provides constants for layout calculations and configuration.
package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/4 of total width)
	SidebarWidthRatio = 4

	// MinSidebarWidth keeps the logo and tab labels readable on narrow terminals
	MinSidebarWidth = 24

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 1

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// PanelHeaderHeight is the title line plus subtitle line at the top of each panel
	PanelHeaderHeight = 2

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight clamp layout math
	MinTerminalWidth  = 60
	MinTerminalHeight = 16
)

// Modal dimensions
const (
	// ModalWidth is the outer width of the alert box
	ModalWidth = 56
)

// Animation timing
const (
	// TypingTickInterval paces the typing indicator
	TypingTickInterval = 120 * time.Millisecond

	// ScrollTickInterval paces smooth scrolling steps
	ScrollTickInterval = 16 * time.Millisecond

	// ScrollStepDivisor controls how much of the remaining distance each smooth step covers
	ScrollStepDivisor = 3
)

// Input limits
const (
	// ChatInputCharLimit caps a single question
	ChatInputCharLimit = 2000

	// NumericInputCharLimit caps the numeric form inputs
	NumericInputCharLimit = 6

	// ResultColumnWidth is the width of the premium box beside the form
	ResultColumnWidth = 34

	// ResultColumnGap separates the form and the premium box
	ResultColumnGap = 2
)
