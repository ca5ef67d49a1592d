package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/lashpop/stylematch/internal/router"
	"github.com/lashpop/stylematch/internal/screen"
	"github.com/lashpop/stylematch/internal/screens/history"
	"github.com/lashpop/stylematch/internal/screens/quiz"
	"github.com/lashpop/stylematch/internal/screens/result"
	"github.com/lashpop/stylematch/internal/screens/welcome"
	"github.com/lashpop/stylematch/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   quiz.Deps
	width  int
	height int
}

// newAppModel creates a new AppModel on the welcome screen.
func newAppModel(deps quiz.Deps) AppModel {
	intro := welcome.New(func() screen.Screen { return quiz.New(deps) })
	return AppModel{
		router: router.New(intro),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case result.PlayAgainMsg:
		return m, m.router.Replace(quiz.New(m.deps))

	case result.ShowHistoryMsg:
		if m.deps.Results == nil {
			return m, nil
		}
		return m, m.router.Push(history.New(m.deps.Results))

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := active.Title()

	var round, total int
	if p, ok := active.(screen.ProgressProvider); ok {
		round, total = p.Progress()
	}
	header := layout.RenderHeader(title, round, total, m.width)

	footerHints := []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the quiz player and blocks until the user quits.
func Run(deps quiz.Deps) error {
	p := tea.NewProgram(newAppModel(deps))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running quiz player: %w", err)
	}
	return nil
}
