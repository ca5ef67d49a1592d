package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/lashpop/stylematch/internal/ui/layout"
)

// Screen is one page of the quiz player.
type Screen interface {
	// Init returns an initial command when the screen becomes active.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens that show their
// own footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// ProgressProvider is an optional interface for screens that report quiz
// progress in the header. total <= 0 hides the counter.
type ProgressProvider interface {
	Progress() (round, total int)
}
