package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lashpop/stylematch/internal/ui/theme"
)

// Choice is one labelled answer.
type Choice struct {
	Key   string
	Label string
}

// ChoiceList is a single-answer question. Answers can be picked with the
// arrows and Enter, or directly by typing their key.
type ChoiceList struct {
	Question string
	Choices  []Choice
	Selected int
	// Chosen is -1 until an answer is submitted.
	Chosen int
	keys   KeyMap
}

// NewChoiceList creates a choice list with the first answer highlighted.
func NewChoiceList(question string, choices []Choice) ChoiceList {
	return ChoiceList{
		Question: question,
		Choices:  choices,
		Chosen:   -1,
		keys:     DefaultKeyMap(),
	}
}

// Submitted reports whether an answer has been chosen.
func (m ChoiceList) Submitted() bool {
	return m.Chosen >= 0
}

// Answer returns the chosen answer's key.
func (m ChoiceList) Answer() (string, bool) {
	if !m.Submitted() {
		return "", false
	}
	return m.Choices[m.Chosen].Key, true
}

// Update handles keyboard navigation and selection.
func (m ChoiceList) Update(msg tea.Msg) (ChoiceList, tea.Cmd) {
	if m.Submitted() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Up):
		if m.Selected > 0 {
			m.Selected--
		}
	case key.Matches(kmsg, m.keys.Down):
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case key.Matches(kmsg, m.keys.Select):
		if len(m.Choices) > 0 {
			m.Chosen = m.Selected
		}
	default:
		typed := strings.ToUpper(kmsg.String())
		for i, c := range m.Choices {
			if strings.ToUpper(c.Key) == typed {
				m.Selected = i
				m.Chosen = i
				break
			}
		}
	}
	return m, nil
}

// View renders the question and its answers.
func (m ChoiceList) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, c := range m.Choices {
		prefix := "  "
		if i == m.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, c.Key, c.Label)

		switch {
		case i == m.Chosen:
			b.WriteString(theme.Selected.Render(line))
		case m.Submitted():
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(line))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
