package quiz

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/router"
	"github.com/lashpop/stylematch/internal/screens/result"
	"github.com/lashpop/stylematch/internal/store"
	"github.com/lashpop/stylematch/internal/style"
)

// fakeResults implements store.ResultRepo in memory.
type fakeResults struct {
	saved []engine.Summary
	err   error
}

func (f *fakeResults) Save(_ context.Context, sum engine.Summary) (store.ResultRecord, error) {
	if f.err != nil {
		return store.ResultRecord{}, f.err
	}
	f.saved = append(f.saved, sum)
	return store.ResultRecord{ID: int64(len(f.saved)), SessionID: sum.SessionID, Result: sum.Result}, nil
}

func (f *fakeResults) Recent(context.Context, int) ([]store.ResultRecord, error) { return nil, nil }
func (f *fakeResults) Stats(context.Context) (store.ResultStats, error)         { return store.ResultStats{}, nil }

type recordingObserver struct {
	sums []engine.Summary
}

func (o *recordingObserver) Observe(sum engine.Summary) { o.sums = append(o.sums, sum) }

func testPool(n int) engine.StaticPool {
	pool := make(engine.StaticPool)
	for _, c := range style.All() {
		for i := 0; i < n; i++ {
			pool[c] = append(pool[c], engine.Photo{
				ID:       fmt.Sprintf("%s-%d", c, i),
				Category: c,
				Enabled:  true,
				FilePath: fmt.Sprintf("quiz/%s/%d.jpg", c, i),
			})
		}
	}
	return pool
}

func press(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func newTestScreen(t *testing.T, pool engine.PhotoPool) (*Screen, *fakeResults, *recordingObserver) {
	t.Helper()
	results := &fakeResults{}
	obs := &recordingObserver{}
	s := New(Deps{
		Rules:    engine.DefaultConfig(),
		Pool:     pool,
		Results:  results,
		Observer: obs,
		Rand:     engine.NewRand(42),
	})
	require.NotNil(t, s.Session())
	return s, results, obs
}

func answerQuestions(s *Screen) {
	s.Update(press('a'))
	s.Update(press('b'))
}

func TestQuizScreen_Questions(t *testing.T) {
	s, _, _ := newTestScreen(t, testPool(4))

	assert.Equal(t, "Your Routine", s.Title())
	assert.Contains(t, s.View(100, 30), RoutineQuestion.Prompt)

	s.Update(press('c'))
	assert.Equal(t, engine.StateAwaitingQ2, s.Session().State())
	assert.Contains(t, s.View(100, 30), LookQuestion.Prompt)

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Equal(t, engine.StateInComparison, s.Session().State())

	sum := s.Session().Summary()
	assert.Equal(t, engine.AnswerC, sum.Q1)
	assert.Equal(t, engine.AnswerB, sum.Q2)
}

func TestQuizScreen_RoundView(t *testing.T) {
	s, _, _ := newTestScreen(t, testPool(4))
	answerQuestions(s)

	round, total := s.Progress()
	assert.Equal(t, 1, round)
	assert.Equal(t, engine.DefaultMaxRounds, total)

	r, ok := s.Session().CurrentRound()
	require.True(t, ok)
	view := s.View(120, 30)
	assert.Contains(t, view, ComparisonPrompt)
	assert.Contains(t, view, r.Left.Photo.DisplayPath())
	assert.Contains(t, view, r.Right.Photo.DisplayPath())
	// The style names stay hidden during the rounds.
	assert.NotContains(t, view, r.Left.Category.DisplayName())
}

func TestQuizScreen_FocusAndEnter(t *testing.T) {
	s, _, _ := newTestScreen(t, testPool(4))
	answerQuestions(s)

	s.Update(tea.KeyPressMsg{Code: tea.KeyRight})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	history := s.Session().History()
	require.Len(t, history, 1)
	assert.Equal(t, engine.Right, history[0].Chosen)
}

func TestQuizScreen_CompletesAndSaves(t *testing.T) {
	s, results, obs := newTestScreen(t, testPool(4))
	answerQuestions(s)

	var cmd tea.Cmd
	for i := 0; i < engine.DefaultMaxRounds && s.Session().State() == engine.StateInComparison; i++ {
		_, cmd = s.Update(press('1'))
	}
	require.Equal(t, engine.StateCompleted, s.Session().State())
	require.NotNil(t, cmd, "completion should schedule the save")
	assert.Nil(t, s.KeyHints(), "no hints while saving")

	msg := cmd()
	saved, ok := msg.(resultSavedMsg)
	require.True(t, ok, "got %T", msg)
	require.Len(t, results.saved, 1)
	require.Len(t, obs.sums, 1)
	assert.Equal(t, engine.StateCompleted, obs.sums[0].State)

	_, cmd = s.Update(saved)
	require.NotNil(t, cmd)
	replace, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok)
	_, ok = replace.Screen.(*result.Screen)
	assert.True(t, ok, "quiz should hand over to the result screen")

	res, _ := s.Session().Result()
	d, _ := style.DetailsFor(res)
	assert.Contains(t, replace.Screen.View(100, 40), d.DisplayName)
}

func TestQuizScreen_SaveErrorStillShowsResult(t *testing.T) {
	s, results, _ := newTestScreen(t, testPool(4))
	results.err = fmt.Errorf("database is locked")
	answerQuestions(s)

	var cmd tea.Cmd
	for s.Session().State() == engine.StateInComparison {
		_, cmd = s.Update(press('2'))
	}
	_, cmd = s.Update(cmd())
	replace := cmd().(router.ReplaceScreenMsg)
	assert.Contains(t, replace.Screen.View(100, 40), "database is locked")
}

func TestQuizScreen_WithoutResultRepo(t *testing.T) {
	s := New(Deps{Rules: engine.DefaultConfig(), Pool: testPool(3), Rand: engine.NewRand(3)})
	answerQuestions(s)

	var cmd tea.Cmd
	for s.Session().State() == engine.StateInComparison {
		_, cmd = s.Update(press('1'))
	}
	msg := cmd().(resultSavedMsg)
	assert.NoError(t, msg.Err)
	assert.Zero(t, msg.Record.ID)
}

func TestQuizScreen_ShortPoolFails(t *testing.T) {
	pool := testPool(3)
	pool[style.Volume] = pool[style.Volume][:1]
	s, results, obs := newTestScreen(t, pool)
	answerQuestions(s)

	assert.Equal(t, engine.StateFailed, s.Session().State())
	assert.Contains(t, s.View(100, 30), "category volume has 1 enabled photos")
	require.Len(t, obs.sums, 1)
	assert.Equal(t, engine.StateFailed, obs.sums[0].State)
	assert.Empty(t, results.saved)

	_, cmd := s.Update(press('x'))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestQuizScreen_InvalidRules(t *testing.T) {
	rules := engine.DefaultConfig()
	rules.MaxRounds = 0
	s := New(Deps{Rules: rules, Pool: testPool(3)})

	assert.Nil(t, s.Session())
	assert.True(t, strings.Contains(s.View(100, 30), "cannot continue"))
}

func TestQuestionChoicesFollowTable(t *testing.T) {
	table := engine.ScoreTable{
		engine.AnswerA: {style.Classic: 1},
		"E":            {style.Volume: 1},
	}
	choices := RoutineQuestion.choices(table)
	require.Len(t, choices, 2)
	assert.Equal(t, RoutineQuestion.Answers[engine.AnswerA], choices[0].Label)
	assert.Equal(t, "Option E", choices[1].Label)
}
