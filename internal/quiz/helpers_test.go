package quiz

import (
	"fmt"

	"github.com/lashpop/stylematch/internal/style"
)

// seqRand replays a fixed sequence of values, reduced modulo n.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) IntN(n int) int {
	if len(r.vals) == 0 {
		return 0
	}
	v := r.vals[r.i%len(r.vals)] % n
	r.i++
	return v
}

// testPool builds a pool with n enabled photos per category.
func testPool(n int) StaticPool {
	pool := make(StaticPool)
	for _, c := range style.All() {
		for i := 0; i < n; i++ {
			pool[c] = append(pool[c], Photo{
				ID:        fmt.Sprintf("%s-%d", c, i),
				Category:  c,
				Enabled:   true,
				FilePath:  fmt.Sprintf("quiz/%s/%d.jpg", c, i),
				SortOrder: i,
			})
		}
	}
	return pool
}

func newTestSession(pool PhotoPool, seed uint64) *Session {
	s, err := New(DefaultConfig(), pool,
		WithRand(NewRand(seed)),
		WithIDGenerator(func() string { return fmt.Sprintf("session-%d", seed) }),
	)
	if err != nil {
		panic(err)
	}
	return s
}

// favor picks c when it is on screen, the left slot otherwise.
func favor(c style.Category) func(Round) Side {
	return func(r Round) Side {
		if side, ok := r.SideOf(c); ok {
			return side
		}
		return Left
	}
}

// play drives s from NotStarted to a terminal state.
func play(s *Session, q1, q2 AnswerKey, choose func(Round) Side) error {
	if err := s.Start(); err != nil {
		return err
	}
	if err := s.ApplyQ1(q1); err != nil {
		return err
	}
	if err := s.ApplyQ2(q2); err != nil {
		return err
	}
	for s.State() == StateInComparison {
		r, ok := s.CurrentRound()
		if !ok {
			return fmt.Errorf("no current round in state %s", s.State())
		}
		if err := s.ChooseSide(choose(r)); err != nil {
			return err
		}
	}
	return nil
}

var allAnswers = []AnswerKey{AnswerA, AnswerB, AnswerC, AnswerD}
