package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
)

// AppTitle is shown at the left edge of the header.
const AppTitle = " 🛡 Shield AI"

// Header is the one-line bar above the panels: app title and the visible
// section on the left, the service origin on the right, over a background
// that fades from the theme's primary color into the page.
type Header struct {
	width   int
	section string
	origin  string
}

func NewHeader() *Header {
	return &Header{}
}

func (h *Header) SetWidth(width int) { h.width = width }

// SetSection names the visible feature, e.g. "AI Assistant".
func (h *Header) SetSection(name string) { h.section = name }

// SetOrigin sets the service origin shown on the right.
func (h *Header) SetOrigin(origin string) { h.origin = origin }

func (h *Header) View() string {
	left := AppTitle
	if h.section != "" {
		left += " · " + h.section
	}
	right := ""
	if h.origin != "" {
		right = h.origin + " "
	}

	// Widths are in cells: the shield emoji and the middle dot are not one
	// byte each.
	if h.width > 0 {
		if runewidth.StringWidth(left)+runewidth.StringWidth(right) > h.width {
			right = ""
		}
		left = runewidth.Truncate(left, h.width, "")
	}
	gap := max(h.width-runewidth.StringWidth(left)-runewidth.StringWidth(right), 0)

	return h.paint(left+strings.Repeat(" ", gap)+right,
		len([]rune(AppTitle)), len([]rune(left))+gap)
}

// paint renders line over the header gradient. Runes before boldEnd are
// bold and runes from mutedFrom on use the muted text color.
func (h *Header) paint(line string, boldEnd, mutedFrom int) string {
	runes := []rune(line)
	if len(runes) == 0 {
		return ""
	}

	theme := CurrentTheme()
	text := lipgloss.Color(theme.Text)
	muted := lipgloss.Color(theme.TextMuted)
	bgs := gradient(theme.Primary, theme.Bg, len(runes))

	var b strings.Builder
	for i, r := range runes {
		style := lipgloss.NewStyle().Foreground(text).Bold(i < boldEnd)
		if i >= mutedFrom {
			style = style.Foreground(muted)
		}
		if bgs != nil {
			style = style.Background(bgs[i])
		}
		b.WriteString(style.Render(string(r)))
	}
	return b.String()
}

// gradient returns n colors blended in Lab space from one hex color to
// another. It returns nil when either color does not parse.
func gradient(fromHex, toHex string, n int) []colorful.Color {
	from, err := colorful.Hex(fromHex)
	if err != nil {
		return nil
	}
	to, err := colorful.Hex(toHex)
	if err != nil {
		return nil
	}
	out := make([]colorful.Color, n)
	for i := range out {
		out[i] = from.BlendLab(to, float64(i)/float64(n)).Clamped()
	}
	return out
}
