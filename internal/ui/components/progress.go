package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/lashpop/stylematch/internal/ui/theme"
)

// ScoreBar displays a labelled horizontal bar for a score out of a maximum.
type ScoreBar struct {
	Label      string
	LabelWidth int
	Value      int
	Max        int
	Width      int
	Color      color.Color
}

// Fraction returns Value/Max clamped to [0, 1].
func (p ScoreBar) Fraction() float64 {
	if p.Max <= 0 || p.Value <= 0 {
		return 0
	}
	if p.Value >= p.Max {
		return 1
	}
	return float64(p.Value) / float64(p.Max)
}

// View renders the bar.
func (p ScoreBar) View() string {
	label := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(p.LabelWidth).
		Render(p.Label)
	value := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %d", p.Value))

	barWidth := p.Width - lipgloss.Width(label) - lipgloss.Width(value) - 2
	if barWidth < 4 {
		barWidth = 4
	}
	filled := int(float64(barWidth) * p.Fraction())

	fill := p.Color
	if fill == nil {
		fill = theme.Secondary
	}
	filledStr := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	emptyStr := lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return label + "  " + filledStr + emptyStr + value
}
