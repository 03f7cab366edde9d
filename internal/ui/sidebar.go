package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// sidebarSpinnerFrames uses the same shimmering spinner as the chat panel
var sidebarSpinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// SidebarTickMsg is sent to advance the spinner animation
type SidebarTickMsg time.Time

// SidebarTick returns a command that advances the spinner
func SidebarTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return SidebarTickMsg(t)
	})
}

// NavItem is one entry in the feature list
type NavItem struct {
	Icon  string
	Label string
}

// Tagline is shown under the logo.
const Tagline = "Smart Insurance Solutions"

// Sidebar is the left panel with the logo and the feature tabs
type Sidebar struct {
	items       []NavItem
	selectedIdx int
	busyIdx     int // index of the tab whose request is in flight, or -1
	width       int
	height      int
	spinner     int
}

// NewSidebar creates a sidebar listing items, with the first selected
func NewSidebar(items ...NavItem) *Sidebar {
	return &Sidebar{items: items, busyIdx: -1}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Select highlights the item at idx
func (s *Sidebar) Select(idx int) {
	if idx >= 0 && idx < len(s.items) {
		s.selectedIdx = idx
	}
}

// SelectedIndex returns the highlighted item
func (s *Sidebar) SelectedIndex() int {
	return s.selectedIdx
}

// SetBusy marks the item owning the in-flight request; -1 clears it.
// It returns a tick command when the spinner needs to start.
func (s *Sidebar) SetBusy(idx int) tea.Cmd {
	wasIdle := s.busyIdx < 0
	s.busyIdx = idx
	if idx >= 0 && wasIdle {
		s.spinner = 0
		return SidebarTick()
	}
	return nil
}

// Update advances the spinner while a request is in flight
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	if _, ok := msg.(SidebarTickMsg); ok && s.busyIdx >= 0 {
		s.spinner = (s.spinner + 1) % len(sidebarSpinnerFrames)
		return s, SidebarTick()
	}
	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	inner := s.width - BorderSize
	if inner < 1 {
		inner = 1
	}

	var lines []string
	lines = append(lines, PanelTitleStyle.Render(strings.TrimSpace(AppTitle)))
	lines = append(lines, NavTaglineStyle.Render(runewidth.Truncate(Tagline, inner, "…")))
	lines = append(lines, "")

	for i, item := range s.items {
		label := item.Icon + " " + item.Label
		marker := "  "
		if i == s.busyIdx {
			marker = sidebarSpinnerFrames[s.spinner] + " "
		}
		// NavItemStyle pads one cell on each side.
		text := runewidth.Truncate(label, inner-2-runewidth.StringWidth(marker), "…")
		text = runewidth.FillRight(text, inner-2-runewidth.StringWidth(marker)) + marker

		style := NavItemStyle
		if i == s.selectedIdx {
			style = NavSelectedStyle
		}
		lines = append(lines, style.Render(text))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)
	return PanelStyle.Width(s.width).Height(s.height).Render(content)
}
