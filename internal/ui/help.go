package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay displays keyboard shortcuts in a centered box
type HelpOverlay struct {
	model   help.Model
	keys    KeyMap
	visible bool
	footer  string
	width   int
	height  int
}

// NewHelpOverlay creates a new help overlay component
func NewHelpOverlay(keys KeyMap) HelpOverlay {
	m := help.New()
	m.ShowAll = true
	m.Styles.FullKey = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	m.Styles.FullDesc = lipgloss.NewStyle().Foreground(ColorText)
	m.Styles.FullSeparator = lipgloss.NewStyle().Foreground(ColorMuted)
	return HelpOverlay{model: m, keys: keys}
}

// Toggle toggles the visibility of the help overlay
func (h *HelpOverlay) Toggle() {
	h.visible = !h.visible
}

// SetVisible sets the visibility of the help overlay
func (h *HelpOverlay) SetVisible(visible bool) {
	h.visible = visible
}

// IsVisible returns whether the help overlay is visible
func (h HelpOverlay) IsVisible() bool {
	return h.visible
}

// SetSize sets the dimensions of the help overlay
func (h *HelpOverlay) SetSize(w, ht int) {
	h.width = w
	h.height = ht
	h.model.Width = w
}

// WithFooter returns a copy showing footer below the shortcuts
func (h HelpOverlay) WithFooter(footer string) HelpOverlay {
	h.footer = footer
	return h
}

// View renders the help overlay
func (h HelpOverlay) View() string {
	if !h.visible {
		return ""
	}
	sections := []string{
		HelpTitleStyle.Render("Keyboard Shortcuts"),
		h.model.View(h.keys),
	}
	if h.footer != "" {
		sections = append(sections, "", HelpFooterStyle.Render(h.footer))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	return lipgloss.Place(h.width, h.height, lipgloss.Center, lipgloss.Center, HelpBoxStyle.Render(content))
}
