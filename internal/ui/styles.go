package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/lumipallolabs/duview/internal/model"
)

// Colors
var (
	ColorPrimary = lipgloss.Color("#7D56F4")
	ColorSuccess = lipgloss.Color("#73F59F")
	ColorDanger  = lipgloss.Color("#F56565")
	ColorMuted   = lipgloss.Color("#6B7280")
	ColorCyan    = lipgloss.Color("#00D4FF")
	ColorText    = lipgloss.Color("#E4E4E7")

	// Entry classes use the basic ANSI palette so they follow the
	// terminal theme
	ColorDirectory  = lipgloss.Color("4")
	ColorExecutable = lipgloss.Color("2")
	ColorSymlink    = lipgloss.Color("6")
	ColorDevice     = lipgloss.Color("3")
	ColorSocket     = lipgloss.Color("5")
)

// Styles
var (
	ScanBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 3)

	HelpBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			MarginBottom(1)

	HelpFooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorDanger).
			Padding(0, 1)
)

// NewPalette returns entry styles, colored unless color is false
func NewPalette(color bool) Palette {
	p := Palette{plain: lipgloss.NewStyle()}
	if !color {
		return p
	}
	p.classes = map[model.ColorClass]lipgloss.Style{
		model.ColorDirectory:  lipgloss.NewStyle().Foreground(ColorDirectory).Bold(true),
		model.ColorExecutable: lipgloss.NewStyle().Foreground(ColorExecutable),
		model.ColorSymlink:    lipgloss.NewStyle().Foreground(ColorSymlink),
		model.ColorDevice:     lipgloss.NewStyle().Foreground(ColorDevice),
		model.ColorSocket:     lipgloss.NewStyle().Foreground(ColorSocket),
	}
	return p
}

// FormatSize formats bytes with SI units
func FormatSize(bytes int64) string {
	if bytes < 0 {
		return "-" + humanize.Bytes(uint64(-bytes))
	}
	return humanize.Bytes(uint64(bytes))
}
