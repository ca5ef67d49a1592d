package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func testChoices() ChoiceList {
	return NewChoiceList("Pick one", []Choice{
		{Key: "A", Label: "Minimal"},
		{Key: "B", Label: "Light"},
		{Key: "C", Label: "Full glam"},
	})
}

func TestChoiceList_ArrowsAndEnter(t *testing.T) {
	m := testChoices()
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown}) // clamps at the last answer
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	got, ok := m.Answer()
	if !ok || got != "B" {
		t.Errorf("Answer = %q, %v, want B", got, ok)
	}
}

func TestChoiceList_TypedKey(t *testing.T) {
	m := testChoices()
	m, _ = m.Update(press('c'))
	got, ok := m.Answer()
	if !ok || got != "C" {
		t.Errorf("Answer = %q, %v, want C", got, ok)
	}

	// Further input is ignored once answered.
	m, _ = m.Update(press('a'))
	if got, _ := m.Answer(); got != "C" {
		t.Errorf("Answer changed to %q after submit", got)
	}
}

func TestChoiceList_UnknownKeyIgnored(t *testing.T) {
	m := testChoices()
	m, _ = m.Update(press('z'))
	if m.Submitted() {
		t.Error("unknown key should not submit")
	}
}

func TestChoiceList_View(t *testing.T) {
	view := testChoices().View()
	for _, want := range []string{"Pick one", "A)", "Full glam"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenu(t *testing.T) {
	ran := ""
	m := NewMenu([]MenuItem{
		{Label: "Again", Action: func() tea.Cmd { ran = "again"; return nil }},
		{Label: "Quit", Action: func() tea.Cmd { ran = "quit"; return tea.Quit }},
	})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if ran != "quit" {
		t.Errorf("ran = %q, want quit", ran)
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestScoreBar(t *testing.T) {
	tests := []struct {
		value, max int
		want       float64
	}{
		{0, 10, 0},
		{5, 10, 0.5},
		{12, 10, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		b := ScoreBar{Value: tt.value, Max: tt.max}
		if got := b.Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.value, tt.max, got, tt.want)
		}
	}

	view := ScoreBar{Label: "Classic", LabelWidth: 10, Value: 4, Max: 8, Width: 40}.View()
	if !strings.Contains(view, "Classic") || !strings.Contains(view, "4") {
		t.Errorf("unexpected view %q", view)
	}
}

func TestPhotoCard(t *testing.T) {
	view := PhotoCard{Heading: "Left", Source: "quiz/a.jpg", Hint: "press 1", Width: 30, Active: true}.View()
	if !strings.Contains(view, "quiz/a.jpg") {
		t.Errorf("card missing source: %q", view)
	}
}
