package components

import (
	"charm.land/lipgloss/v2"

	"github.com/lashpop/stylematch/internal/ui/theme"
)

// PhotoCard renders one side of a comparison round. The style name is
// never shown so the pick is made on the look alone.
type PhotoCard struct {
	Heading string
	Source  string
	Hint    string
	Width   int
	Active  bool
}

// View renders the card.
func (c PhotoCard) View() string {
	width := c.Width
	if width < 20 {
		width = 20
	}

	heading := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(c.Heading)
	source := lipgloss.NewStyle().Foreground(theme.Text).Render(c.Source)
	hint := theme.Hint.Render(c.Hint)
	body := lipgloss.JoinVertical(lipgloss.Center, heading, "", source, "", hint)

	card := theme.CardInactive
	if c.Active {
		card = theme.CardActive
	}
	return card.Width(width).Align(lipgloss.Center).Render(body)
}
