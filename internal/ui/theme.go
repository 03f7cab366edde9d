// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (focus, active tab, header)
	Primary string
	// Secondary is the secondary accent color (bot messages, key hints)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	User      string // User message labels
	Assistant string // Bot message labels
	Warning   string // Out-of-range hints
	Error     string // Failure notices
	Success   string // Premium result, online badge

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Markdown colors
	MarkdownCode   string // Inline code
	MarkdownCodeBg string // Code background
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeShield     ThemeName = "shield"
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeShield

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeShield: {
		Name:           "Shield",
		Primary:        "#4F46E5",
		Secondary:      "#14B8A6",
		Bg:             "#0F172A",
		BgSelected:     "#4338CA",
		Text:           "#F8FAFC",
		TextMuted:      "#94A3B8",
		TextInverse:    "#0F172A",
		User:           "#A5B4FC",
		Assistant:      "#2DD4BF",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Success:        "#22C55E",
		Border:         "#334155",
		MarkdownCode:   "#5EEAD4",
		MarkdownCodeBg: "#1E293B",
	},
	ThemeDarkPurple: {
		Name:           "Dark Purple",
		Primary:        "#7C3AED",
		Secondary:      "#06B6D4",
		Bg:             "#1F2937",
		Text:           "#F9FAFB",
		TextMuted:      "#9CA3AF",
		TextInverse:    "#1F2937",
		User:           "#A78BFA",
		Assistant:      "#22D3EE",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Success:        "#10B981",
		Border:         "#374151",
		MarkdownCode:   "#67E8F9",
		MarkdownCodeBg: "#1E1E2E",
	},
	ThemeNord: {
		Name:           "Nord",
		Primary:        "#88C0D0",
		Secondary:      "#81A1C1",
		Bg:             "#2E3440",
		Text:           "#ECEFF4",
		TextMuted:      "#D8DEE9",
		TextInverse:    "#2E3440",
		User:           "#A3BE8C",
		Assistant:      "#88C0D0",
		Warning:        "#EBCB8B",
		Error:          "#BF616A",
		Success:        "#A3BE8C",
		Border:         "#4C566A",
		MarkdownCode:   "#A3BE8C",
		MarkdownCodeBg: "#242933",
	},
	ThemeDracula: {
		Name:           "Dracula",
		Primary:        "#BD93F9",
		Secondary:      "#8BE9FD",
		Bg:             "#282A36",
		Text:           "#F8F8F2",
		TextMuted:      "#6272A4",
		TextInverse:    "#282A36",
		User:           "#FF79C6",
		Assistant:      "#8BE9FD",
		Warning:        "#FFB86C",
		Error:          "#FF5555",
		Success:        "#50FA7B",
		Border:         "#44475A",
		MarkdownCode:   "#50FA7B",
		MarkdownCodeBg: "#21222C",
	},
	ThemeGruvbox: {
		Name:           "Gruvbox Dark",
		Primary:        "#FE8019",
		Secondary:      "#83A598",
		Bg:             "#282828",
		Text:           "#EBDBB2",
		TextMuted:      "#A89984",
		TextInverse:    "#282828",
		User:           "#FABD2F",
		Assistant:      "#83A598",
		Warning:        "#FE8019",
		Error:          "#FB4934",
		Success:        "#B8BB26",
		Border:         "#504945",
		MarkdownCode:   "#B8BB26",
		MarkdownCodeBg: "#1D2021",
	},
	ThemeLight: {
		Name:           "Light",
		Primary:        "#4F46E5",
		Secondary:      "#0891B2",
		Bg:             "#FFFFFF",
		BgSelected:     "#E0E7FF",
		Text:           "#111827",
		TextMuted:      "#6B7280",
		TextInverse:    "#FFFFFF",
		User:           "#4338CA",
		Assistant:      "#0E7490",
		Warning:        "#B45309",
		Error:          "#DC2626",
		Success:        "#15803D",
		Border:         "#D1D5DB",
		MarkdownCode:   "#0E7490",
		MarkdownCodeBg: "#F3F4F6",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeShield,
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to Shield if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

func init() {
	regenerateStyles()
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary)

	PanelSubtitleStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	NavItemStyle = lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1)

	NavSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)

	NavTaglineStyle = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Italic(true)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ChatInputDisabledStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Foreground(ColorMuted).
		Padding(0, 1)

	StatusOnlineStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	ButtonStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 2)

	ButtonDisabledStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Background(ColorBorder).
		Padding(0, 2)

	ResultBoxStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess).
		Padding(0, 2)

	ResultAmountStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	HintWarningStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)

	ModalAlertStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorError).
		Padding(1, 2).
		Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorError).
		MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)

	TextSelectionStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(ColorTextInverse)

	TextSelectionFlashStyle = lipgloss.NewStyle().
		Background(ColorSuccess).
		Foreground(ColorTextInverse)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	MarkdownHeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
}
