package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, set from the current theme by regenerateStyles.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorMuted       color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorUser        color.Color
	ColorAssistant   color.Color
	ColorWarning     color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle         lipgloss.Style
	PanelFocusedStyle  lipgloss.Style
	PanelTitleStyle    lipgloss.Style
	PanelSubtitleStyle lipgloss.Style
)

// Navigation (tab list) styles
var (
	NavItemStyle     lipgloss.Style
	NavSelectedStyle lipgloss.Style
	NavTaglineStyle  lipgloss.Style
)

// Chat styles
var (
	ChatUserStyle          lipgloss.Style
	ChatAssistantStyle     lipgloss.Style
	ChatMessageStyle       lipgloss.Style
	ChatInputStyle         lipgloss.Style
	ChatInputFocusedStyle  lipgloss.Style
	ChatInputDisabledStyle lipgloss.Style

	// TextSelectionStyle highlights mouse-selected transcript text
	TextSelectionStyle lipgloss.Style
	// TextSelectionFlashStyle is used briefly when a selection is copied
	TextSelectionFlashStyle lipgloss.Style
)

// Status styles
var (
	StatusOnlineStyle  lipgloss.Style
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

// Premium calculator styles
var (
	ButtonStyle         lipgloss.Style
	ButtonDisabledStyle lipgloss.Style
	ResultBoxStyle      lipgloss.Style
	ResultAmountStyle   lipgloss.Style
	HintWarningStyle    lipgloss.Style
)

// Alert modal styles
var (
	ModalAlertStyle lipgloss.Style
	ModalTitleStyle lipgloss.Style
	ModalHelpStyle  lipgloss.Style
)

// Markdown rendering styles
var (
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownHeadingStyle    lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
)
