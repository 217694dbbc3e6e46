package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette, OMEGA lab blues with a warm accent
var (
	Primary   = lipgloss.Color("#2563EB") // Royal Blue
	Secondary = lipgloss.Color("#0EA5E9") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		Underline(true)

	Quote = lipgloss.NewStyle().
		Foreground(Text).
		Italic(true).
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(Accent).
		PaddingLeft(1)

	Label = lipgloss.NewStyle().
		Foreground(TextDim).
		Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Focused = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	Blurred = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	ButtonDisabled = lipgloss.NewStyle().
			Background(BgCard).
			Foreground(TextDim).
			Padding(0, 2)
)
