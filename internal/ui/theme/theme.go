package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/lashpop/stylematch/internal/style"
)

// Color palette: warm salon tones on a dark background
var (
	Primary   = lipgloss.Color("#E11D74") // Lash Pink
	Secondary = lipgloss.Color("#D4A373") // Champagne
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#10B981") // Emerald
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#FAF5F0") // Cream
	TextDim   = lipgloss.Color("#A8A29E") // Stone
	BgDark    = lipgloss.Color("#1C1917") // Espresso
	BgCard    = lipgloss.Color("#292524") // Dark Stone
	Border    = lipgloss.Color("#44403C") // Stone Border
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Photo cards
var (
	CardActive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.ThickBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	CardInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(1, 2)
)

// StyleColor returns the accent color used for a lash style.
func StyleColor(c style.Category) color.Color {
	switch c {
	case style.Classic:
		return Secondary
	case style.WetAngel:
		return lipgloss.Color("#38BDF8") // Sky
	case style.Hybrid:
		return Accent
	case style.Volume:
		return Primary
	default:
		return Text
	}
}
