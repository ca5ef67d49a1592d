package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/lashpop/stylematch/internal/ui/theme"
)

// Tagline is shown under the banner.
const Tagline = "Find the lash style made for you"

const bannerArt = `
 ╔═╗┬┌┐┌┌┬┐  ╦ ╦┌─┐┬ ┬┬─┐  ╦  ┌─┐┌─┐┬┌─
 ╠╣ ││││ ││  ╚╦╝│ ││ │├┬┘  ║  │ ││ │├┴┐
 ╚  ┴┘└┘─┴┘   ╩ └─┘└─┘┴└─  ╩═╝└─┘└─┘┴ ┴`

const bannerCompact = "F I N D   Y O U R   L O O K"

// RenderBanner returns the title banner styled in the primary color.
// Uses a compact fallback for terminals narrower than 48 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 48 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
