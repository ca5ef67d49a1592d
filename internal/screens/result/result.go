package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/screen"
	"github.com/lashpop/stylematch/internal/style"
	"github.com/lashpop/stylematch/internal/ui/components"
	"github.com/lashpop/stylematch/internal/ui/layout"
	"github.com/lashpop/stylematch/internal/ui/theme"
)

// PlayAgainMsg asks the app to start a fresh quiz.
type PlayAgainMsg struct{}

// ShowHistoryMsg asks the app to open the past results list.
type ShowHistoryMsg struct{}

// Outcome is a finished quiz and what happened when it was recorded.
type Outcome struct {
	Summary engine.Summary
	// RecordID is the result log id, 0 when the result was not stored.
	RecordID int64
	SaveErr  error
}

// Screen shows the recommended lash style.
type Screen struct {
	outcome    Outcome
	details    style.Details
	categories []style.Category
	menu       components.Menu
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the result screen. categories sets the order of the score
// bars; nil uses the standard enumeration.
func New(o Outcome, categories []style.Category) *Screen {
	if categories == nil {
		categories = style.All()
	}
	d, ok := style.DetailsFor(o.Summary.Result)
	if !ok {
		d = style.Details{
			Name:        o.Summary.Result.DisplayName(),
			DisplayName: o.Summary.Result.DisplayName(),
		}
	}
	items := []components.MenuItem{
		{Label: "Take the quiz again", Action: func() tea.Cmd {
			return func() tea.Msg { return PlayAgainMsg{} }
		}},
	}
	if o.RecordID > 0 {
		items = append(items, components.MenuItem{Label: "Past results", Action: func() tea.Cmd {
			return func() tea.Msg { return ShowHistoryMsg{} }
		}})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})

	return &Screen{
		outcome:    o,
		details:    d,
		categories: categories,
		menu:       components.NewMenu(items),
	}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Your Match" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	inner := min(width-8, 76)
	sum := s.outcome.Summary

	var b strings.Builder
	b.WriteString("\n")
	if s.details.Tagline != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Secondary).
			Render(s.details.Tagline))
		b.WriteString("\n")
	}
	b.WriteString(theme.Subtitle.Width(width).Render("Your perfect lash match is"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.StyleColor(sum.Result)).
		Bold(true).
		Render(s.details.DisplayName))
	b.WriteString("\n\n")

	if s.details.Description != "" {
		desc := theme.Body.Width(inner).Render(s.details.Description)
		b.WriteString(layout.Center(width, desc))
		b.WriteString("\n\n")
	}

	if len(s.details.BestFor) > 0 {
		var best strings.Builder
		best.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("Best for"))
		for _, item := range s.details.BestFor {
			best.WriteString("\n  • " + item)
		}
		b.WriteString(layout.Center(width, theme.Body.Width(inner).Render(best.String())))
		b.WriteString("\n\n")
	}

	b.WriteString(layout.Center(width, s.renderScores(inner)))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Width(width).Align(lipgloss.Center).Render(decidedLine(sum)))
	b.WriteString("\n")
	if line := s.savedLine(); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.details.BookingLabel != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Accent).
			Bold(true).
			Render(s.details.BookingLabel))
		b.WriteString("\n")
		b.WriteString(layout.Center(width, theme.Hint.Width(inner).Align(lipgloss.Center).Render(style.FinePrint)))
		b.WriteString("\n\n")
	}
	b.WriteString(layout.Center(width, s.menu.View()))
	return b.String()
}

func (s *Screen) renderScores(width int) string {
	sum := s.outcome.Summary
	top := 0
	for _, c := range s.categories {
		top = max(top, sum.Scores[c])
	}

	labelWidth := 0
	for _, c := range s.categories {
		labelWidth = max(labelWidth, lipgloss.Width(c.DisplayName()))
	}

	lines := make([]string, 0, len(s.categories))
	for _, c := range s.categories {
		bar := components.ScoreBar{
			Label:      c.DisplayName(),
			LabelWidth: labelWidth,
			Value:      sum.Scores[c],
			Max:        top,
			Width:      width,
			Color:      theme.StyleColor(c),
		}
		lines = append(lines, bar.View())
	}
	return strings.Join(lines, "\n")
}

func (s *Screen) savedLine() string {
	switch {
	case s.outcome.SaveErr != nil:
		return theme.Warning.Render(fmt.Sprintf("  Result not saved: %v", s.outcome.SaveErr))
	case s.outcome.RecordID > 0:
		return theme.Hint.Render(fmt.Sprintf("  Saved as result #%d", s.outcome.RecordID))
	}
	return ""
}

func decidedLine(sum engine.Summary) string {
	rounds := "rounds"
	if sum.Rounds == 1 {
		rounds = "round"
	}
	switch sum.Reason {
	case engine.StopEarly:
		return fmt.Sprintf("Decided after %d %s with a %d point lead", sum.Rounds, rounds, sum.Margin)
	case engine.StopMaxRounds:
		return fmt.Sprintf("Decided after the full %d %s", sum.Rounds, rounds)
	}
	return fmt.Sprintf("%d %s played", sum.Rounds, rounds)
}
