package quiz

import (
	"context"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/router"
	"github.com/lashpop/stylematch/internal/screen"
	"github.com/lashpop/stylematch/internal/screens/result"
	"github.com/lashpop/stylematch/internal/store"
	"github.com/lashpop/stylematch/internal/ui/components"
	"github.com/lashpop/stylematch/internal/ui/layout"
)

// Observer is told about every session that completes or fails.
type Observer interface {
	Observe(sum engine.Summary)
}

// Deps are the collaborators of a quiz screen.
type Deps struct {
	Rules engine.Config
	Pool  engine.PhotoPool
	// Results stores completed quizzes. Nil skips saving.
	Results  store.ResultRepo
	Observer Observer
	// Rand drives pair sides and photo sampling. Nil uses an unseeded source.
	Rand   engine.Rand
	Logger zerolog.Logger
}

// Screen plays one quiz: two questions, then photo comparison rounds
// until a style is matched.
type Screen struct {
	deps    Deps
	session *engine.Session
	q1      components.ChoiceList
	q2      components.ChoiceList
	keys    components.KeyMap
	focus   engine.Side
	saving  bool
	errMsg  string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.ProgressProvider = (*Screen)(nil)

// New creates a quiz screen and starts a session.
func New(deps Deps) *Screen {
	s := &Screen{
		deps: deps,
		q1:   components.NewChoiceList(RoutineQuestion.Prompt, RoutineQuestion.choices(deps.Rules.Q1)),
		q2:   components.NewChoiceList(LookQuestion.Prompt, LookQuestion.choices(deps.Rules.Q2)),
		keys: components.DefaultKeyMap(),
	}

	opts := []engine.Option{engine.WithLogger(deps.Logger)}
	if deps.Rand != nil {
		opts = append(opts, engine.WithRand(deps.Rand))
	}
	sess, err := engine.New(deps.Rules, deps.Pool, opts...)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	if err := sess.Start(); err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.session = sess
	return s
}

// Session exposes the running session.
func (s *Screen) Session() *engine.Session { return s.session }

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string {
	if s.session == nil {
		return "Find Your Look"
	}
	switch s.session.State() {
	case engine.StateAwaitingQ1:
		return "Your Routine"
	case engine.StateAwaitingQ2:
		return "Your Lash Look"
	case engine.StateInComparison:
		return "Pick a Favorite"
	}
	return "Find Your Look"
}

func (s *Screen) Progress() (int, int) {
	if s.session == nil || s.session.State() != engine.StateInComparison {
		return 0, 0
	}
	r, ok := s.session.CurrentRound()
	if !ok {
		return 0, 0
	}
	return r.Number, s.deps.Rules.MaxRounds
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "any key", Description: "Exit"}}
	}
	if s.session == nil || s.saving {
		return nil
	}
	switch s.session.State() {
	case engine.StateAwaitingQ1, engine.StateAwaitingQ2:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "A-D", Description: "Answer"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case engine.StateInComparison:
		return []layout.KeyHint{
			{Key: "←→", Description: "Move"},
			{Key: "Enter", Description: "Choose"},
			{Key: "1/2", Description: "Pick left/right"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return nil
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case resultSavedMsg:
		return s.handleSaved(msg)
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, tea.Quit
	}
	if s.session == nil || s.saving {
		return s, nil
	}

	switch s.session.State() {
	case engine.StateAwaitingQ1:
		s.q1, _ = s.q1.Update(msg)
		if answer, ok := s.q1.Answer(); ok {
			return s.apply(s.session.ApplyQ1(engine.AnswerKey(answer)))
		}

	case engine.StateAwaitingQ2:
		s.q2, _ = s.q2.Update(msg)
		if answer, ok := s.q2.Answer(); ok {
			return s.apply(s.session.ApplyQ2(engine.AnswerKey(answer)))
		}

	case engine.StateInComparison:
		switch {
		case key.Matches(msg, s.keys.Left):
			s.focus = engine.Left
		case key.Matches(msg, s.keys.Right):
			s.focus = engine.Right
		case key.Matches(msg, s.keys.PickLeft):
			return s.choose(engine.Left)
		case key.Matches(msg, s.keys.PickRight):
			return s.choose(engine.Right)
		case key.Matches(msg, s.keys.Select):
			return s.choose(s.focus)
		}
	}
	return s, nil
}

func (s *Screen) choose(side engine.Side) (screen.Screen, tea.Cmd) {
	s.focus = engine.Left
	return s.apply(s.session.ChooseSide(side))
}

// apply inspects the session after a transition and moves the screen on.
func (s *Screen) apply(err error) (screen.Screen, tea.Cmd) {
	switch s.session.State() {
	case engine.StateFailed:
		s.observe()
		s.errMsg = s.session.Err().Error()
		return s, nil
	case engine.StateCompleted:
		s.observe()
		s.saving = true
		return s, s.saveResult(s.session.Summary())
	}
	if err != nil {
		s.errMsg = err.Error()
	}
	return s, nil
}

func (s *Screen) observe() {
	if s.deps.Observer != nil {
		s.deps.Observer.Observe(s.session.Summary())
	}
}

// saveResult records the summary in the result log.
func (s *Screen) saveResult(sum engine.Summary) tea.Cmd {
	repo := s.deps.Results
	return func() tea.Msg {
		if repo == nil {
			return resultSavedMsg{Summary: sum}
		}
		rec, err := repo.Save(context.Background(), sum)
		return resultSavedMsg{Summary: sum, Record: rec, Err: err}
	}
}

func (s *Screen) handleSaved(msg resultSavedMsg) (screen.Screen, tea.Cmd) {
	s.saving = false
	if msg.Err != nil {
		s.deps.Logger.Error().Err(msg.Err).Str("session_id", msg.Summary.SessionID).Msg("saving quiz result")
	}
	next := result.New(result.Outcome{
		Summary:  msg.Summary,
		RecordID: msg.Record.ID,
		SaveErr:  msg.Err,
	}, s.deps.Rules.Categories)
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}
