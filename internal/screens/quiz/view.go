package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/ui/components"
	"github.com/lashpop/stylematch/internal/ui/layout"
	"github.com/lashpop/stylematch/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	if s.errMsg != "" {
		return renderError(width, s.errMsg)
	}
	if s.session == nil {
		return ""
	}
	if s.saving {
		return renderSaving(width)
	}

	switch s.session.State() {
	case engine.StateAwaitingQ1:
		return renderQuestion(width, 1, s.q1)
	case engine.StateAwaitingQ2:
		return renderQuestion(width, 2, s.q2)
	case engine.StateInComparison:
		return s.renderRound(width)
	}
	return ""
}

func renderQuestion(width, n int, list components.ChoiceList) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Question %d of 2", n)))
	b.WriteString("\n\n")
	b.WriteString(layout.Center(width, list.View()))
	return b.String()
}

func (s *Screen) renderRound(width int) string {
	round, ok := s.session.CurrentRound()
	if !ok {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(ComparisonPrompt))
	b.WriteString("\n\n")

	compact := layout.IsCompactWidth(width)
	cardWidth := (width - 12) / 2
	if compact {
		cardWidth = min(width-8, 60)
	}

	left := components.PhotoCard{
		Heading: "Look 1",
		Source:  round.Left.Photo.DisplayPath(),
		Hint:    "press 1",
		Width:   cardWidth,
		Active:  s.focus == engine.Left,
	}.View()
	right := components.PhotoCard{
		Heading: "Look 2",
		Source:  round.Right.Photo.DisplayPath(),
		Hint:    "press 2",
		Width:   cardWidth,
		Active:  s.focus == engine.Right,
	}.View()

	var cards string
	if compact {
		cards = lipgloss.JoinVertical(lipgloss.Center, left, right)
	} else {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right)
	}
	b.WriteString(layout.Center(width, cards))
	return b.String()
}

func renderSaving(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Finding your perfect match...")
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  The quiz cannot continue: %s\n\n  Press any key to exit.", errMsg))
}
