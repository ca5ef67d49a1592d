package quiz

import (
	"bytes"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/lashpop/stylematch/internal/style"
)

func TestSession_ClassicExample(t *testing.T) {
	s := newTestSession(testPool(4), 7)

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.ApplyQ1(AnswerA); err != nil {
		t.Fatalf("ApplyQ1: %v", err)
	}
	if err := s.ApplyQ2(AnswerA); err != nil {
		t.Fatalf("ApplyQ2: %v", err)
	}

	want := Scores{style.Classic: 4, style.Hybrid: 0, style.WetAngel: 0, style.Volume: 0}
	if got := s.Scores(); !reflect.DeepEqual(got, want) {
		t.Errorf("scores after questions = %v, want %v", got, want)
	}

	r, ok := s.CurrentRound()
	if !ok {
		t.Fatal("expected round 1")
	}
	if r.Number != 1 {
		t.Errorf("round number = %d, want 1", r.Number)
	}
	if r.Key != NewPairKey(style.Classic, style.Volume) {
		t.Errorf("round 1 pair = %s, want classic-volume", r.Key)
	}

	pick := favor(style.Classic)
	for s.State() == StateInComparison {
		r, _ := s.CurrentRound()
		if err := s.ChooseSide(pick(r)); err != nil {
			t.Fatalf("ChooseSide: %v", err)
		}
	}

	res, ok := s.Result()
	if !ok || res != style.Classic {
		t.Errorf("Result = %q, %v; want classic", res, ok)
	}
	if s.RoundsPlayed() != DefaultMinRounds {
		t.Errorf("RoundsPlayed = %d, want %d", s.RoundsPlayed(), DefaultMinRounds)
	}
	if sum := s.Summary(); sum.Reason != StopEarly {
		t.Errorf("Reason = %q, want %q", sum.Reason, StopEarly)
	}
}

func TestSession_InvalidTransitions(t *testing.T) {
	s := newTestSession(testPool(2), 1)

	check := func(name string, err error, state State) {
		t.Helper()
		if !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s: error = %v, want ErrInvalidTransition", name, err)
		}
		var te *TransitionError
		if errors.As(err, &te) && te.State != state {
			t.Errorf("%s: TransitionError.State = %s, want %s", name, te.State, state)
		}
		if s.State() != state {
			t.Errorf("%s: state changed to %s", name, s.State())
		}
	}

	check("q1 before start", s.ApplyQ1(AnswerA), StateNotStarted)
	check("q2 before start", s.ApplyQ2(AnswerA), StateNotStarted)
	check("choose before start", s.ChooseSide(Left), StateNotStarted)

	_ = s.Start()
	check("start twice", s.Start(), StateAwaitingQ1)
	check("q2 before q1", s.ApplyQ2(AnswerA), StateAwaitingQ1)
	check("choose in q1", s.ChooseSide(Left), StateAwaitingQ1)

	_ = s.ApplyQ1(AnswerC)
	check("q1 twice", s.ApplyQ1(AnswerA), StateAwaitingQ2)
	check("choose in q2", s.ChooseSide(Right), StateAwaitingQ2)

	_ = s.ApplyQ2(AnswerD)
	check("start mid quiz", s.Start(), StateInComparison)
	check("q1 mid quiz", s.ApplyQ1(AnswerA), StateInComparison)

	for s.State() == StateInComparison {
		_ = s.ChooseSide(Left)
	}
	check("choose after completion", s.ChooseSide(Left), StateCompleted)
	check("q1 after completion", s.ApplyQ1(AnswerA), StateCompleted)
}

func TestSession_UnknownAnswerLeavesStateUntouched(t *testing.T) {
	s := newTestSession(testPool(2), 1)
	_ = s.Start()

	err := s.ApplyQ1("Z")
	if !errors.Is(err, ErrUnknownAnswer) {
		t.Fatalf("ApplyQ1(Z) = %v, want ErrUnknownAnswer", err)
	}
	if s.State() != StateAwaitingQ1 {
		t.Errorf("state = %s, want awaiting_q1", s.State())
	}
	if !reflect.DeepEqual(s.Scores(), NewScores(style.All())) {
		t.Errorf("scores changed: %v", s.Scores())
	}
}

func TestSession_InvalidSide(t *testing.T) {
	s := newTestSession(testPool(2), 1)
	_ = s.Start()
	_ = s.ApplyQ1(AnswerA)
	_ = s.ApplyQ2(AnswerA)

	if err := s.ChooseSide(Side(5)); !errors.Is(err, ErrInvalidSide) {
		t.Errorf("ChooseSide(5) = %v, want ErrInvalidSide", err)
	}
	if s.RoundsPlayed() != 0 {
		t.Errorf("RoundsPlayed = %d after rejected choice", s.RoundsPlayed())
	}
}

func TestSession_FailsWhenCategoryLacksPhotos(t *testing.T) {
	pool := testPool(2)
	pool[style.WetAngel] = pool[style.WetAngel][:1]
	s := newTestSession(pool, 3)

	_ = s.Start()
	_ = s.ApplyQ1(AnswerB)
	err := s.ApplyQ2(AnswerB)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("ApplyQ2 error = %v, want *ConfigurationError", err)
	}
	if cfgErr.Category != style.WetAngel || cfgErr.Enabled != 1 {
		t.Errorf("ConfigurationError = %+v", cfgErr)
	}
	if s.State() != StateFailed {
		t.Errorf("state = %s, want failed", s.State())
	}
	if s.Err() == nil {
		t.Error("Err() = nil for failed session")
	}
	if _, ok := s.CurrentRound(); ok {
		t.Error("failed session still exposes a round")
	}
	if _, ok := s.Result(); ok {
		t.Error("failed session has a result")
	}
	if sum := s.Summary(); sum.Failure == "" {
		t.Error("Summary.Failure is empty")
	}

	// Failed is terminal; only Start leaves it.
	if err := s.ChooseSide(Left); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("ChooseSide on failed session = %v", err)
	}
	if err := s.Start(); err != nil {
		t.Errorf("Start after failure = %v", err)
	}
	if s.Err() != nil {
		t.Error("Start did not clear the failure")
	}
}

func TestSession_StartResetsCompletedSession(t *testing.T) {
	s := newTestSession(testPool(3), 11)
	if err := play(s, AnswerC, AnswerD, favor(style.Volume)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if s.State() != StateCompleted {
		t.Fatalf("state = %s, want completed", s.State())
	}

	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.State() != StateAwaitingQ1 {
		t.Errorf("state = %s, want awaiting_q1", s.State())
	}
	if !reflect.DeepEqual(s.Scores(), NewScores(style.All())) {
		t.Errorf("scores not reset: %v", s.Scores())
	}
	if s.RoundsPlayed() != 0 || len(s.History()) != 0 {
		t.Errorf("rounds not reset: %d played, %d history", s.RoundsPlayed(), len(s.History()))
	}
	if len(s.usedPairs) != 0 || len(s.usedPhotos) != 0 {
		t.Errorf("usage not reset: %d pairs, %d photos", len(s.usedPairs), len(s.usedPhotos))
	}
	if _, ok := s.Result(); ok {
		t.Error("result not cleared")
	}
}

func TestSession_UsageCommittedWhenRoundStarts(t *testing.T) {
	s := newTestSession(testPool(3), 5)
	_ = s.Start()
	_ = s.ApplyQ1(AnswerD)
	_ = s.ApplyQ2(AnswerC)

	r, _ := s.CurrentRound()
	if !s.usedPairs[r.Key] {
		t.Errorf("pair %s not recorded before a choice was made", r.Key)
	}
	if !s.usedPhotos[r.Left.Photo.ID] || !s.usedPhotos[r.Right.Photo.ID] {
		t.Error("round photos not recorded before a choice was made")
	}
	if r.Left.Category == r.Right.Category {
		t.Errorf("round compares %s with itself", r.Left.Category)
	}
	if r.Left.Photo.Category != r.Left.Category || r.Right.Photo.Category != r.Right.Category {
		t.Error("photo category does not match its slot")
	}
}

func TestSession_DeterministicForSeed(t *testing.T) {
	run := func() Summary {
		s := newTestSession(testPool(5), 42)
		if err := play(s, AnswerB, AnswerC, func(r Round) Side { return Side(r.Number % 2) }); err != nil {
			t.Fatalf("play: %v", err)
		}
		return s.Summary()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different sessions:\n%+v\n%+v", a, b)
	}
}

// The properties below are checked across every answer combination and a
// range of seeds.

func TestProperty_ScoresChangeOnlyByDocumentedDeltas(t *testing.T) {
	cfg := DefaultConfig()
	for seed := uint64(1); seed <= 25; seed++ {
		for _, q1 := range allAnswers {
			for _, q2 := range allAnswers {
				s := newTestSession(testPool(3), seed)
				rng := NewRand(seed * 31)
				err := play(s, q1, q2, func(Round) Side { return Side(rng.IntN(2)) })
				if err != nil {
					t.Fatalf("seed %d %s/%s: %v", seed, q1, q2, err)
				}

				want := NewScores(cfg.Categories)
				_ = cfg.Q1.Apply(want, q1)
				_ = cfg.Q2.Apply(want, q2)
				sum := s.Summary()
				for c, n := range sum.ChoiceCounts() {
					want[c] += n
				}
				if !reflect.DeepEqual(sum.Scores, want) {
					t.Errorf("seed %d %s/%s: scores = %v, want %v", seed, q1, q2, sum.Scores, want)
				}
				for c, v := range sum.Scores {
					if v < 0 {
						t.Errorf("seed %d: negative score %d for %s", seed, v, c)
					}
				}
			}
		}
	}
}

func TestProperty_TerminatesByMaxRounds(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		for _, q1 := range allAnswers {
			for _, q2 := range allAnswers {
				s := newTestSession(testPool(3), seed)
				rng := NewRand(seed + 1000)
				if err := play(s, q1, q2, func(Round) Side { return Side(rng.IntN(2)) }); err != nil {
					t.Fatalf("play: %v", err)
				}
				if s.State() != StateCompleted {
					t.Fatalf("seed %d: state = %s", seed, s.State())
				}
				if s.RoundsPlayed() > DefaultMaxRounds {
					t.Errorf("seed %d: %d rounds, want <= %d", seed, s.RoundsPlayed(), DefaultMaxRounds)
				}
				if s.RoundsPlayed() < DefaultMinRounds {
					t.Errorf("seed %d: %d rounds, want >= %d", seed, s.RoundsPlayed(), DefaultMinRounds)
				}
			}
		}
	}
}

func TestProperty_PairsNotRepeatedUntilExhausted(t *testing.T) {
	total := PairCount(len(style.All()))
	for seed := uint64(1); seed <= 40; seed++ {
		for _, q1 := range allAnswers {
			for _, q2 := range allAnswers {
				s := newTestSession(testPool(3), seed)
				rng := NewRand(seed + 7)
				// Alternating picks keep scores close, producing long sessions.
				if err := play(s, q1, q2, func(r Round) Side {
					if rng.IntN(4) == 0 {
						return Left
					}
					return Side(r.Number % 2)
				}); err != nil {
					t.Fatalf("play: %v", err)
				}

				seen := make(map[PairKey]bool)
				for _, o := range s.History() {
					if seen[o.Round.Key] && len(seen) < total {
						t.Errorf("seed %d %s/%s: pair %s repeated with only %d/%d pairs used",
							seed, q1, q2, o.Round.Key, len(seen), total)
					}
					seen[o.Round.Key] = true
				}
			}
		}
	}
}

func TestProperty_PhotosNotRepeatedWhileUnusedRemain(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		s := newTestSession(testPool(2), seed)
		rng := NewRand(seed)
		if err := play(s, AnswerB, AnswerB, func(Round) Side { return Side(rng.IntN(2)) }); err != nil {
			t.Fatalf("play: %v", err)
		}

		shown := make(map[style.Category]map[string]bool)
		for _, c := range style.All() {
			shown[c] = make(map[string]bool)
		}
		for _, o := range s.History() {
			for _, slot := range []Slot{o.Round.Left, o.Round.Right} {
				ids := shown[slot.Category]
				if ids[slot.Photo.ID] && len(ids) < 2 {
					t.Errorf("seed %d: photo %s repeated while %s had unused photos",
						seed, slot.Photo.ID, slot.Category)
				}
				ids[slot.Photo.ID] = true
			}
		}
	}
}

func TestProperty_ConsistentPickWinsAtMinRounds(t *testing.T) {
	cfg := DefaultConfig()
	for _, c := range style.All() {
		for _, q1 := range allAnswers {
			for _, q2 := range allAnswers {
				initial := NewScores(cfg.Categories)
				_ = cfg.Q1.Apply(initial, q1)
				_ = cfg.Q2.Apply(initial, q2)
				leads := true
				for _, other := range cfg.Categories {
					if initial[other] > initial[c] {
						leads = false
					}
				}
				if !leads {
					continue
				}

				for seed := uint64(1); seed <= 10; seed++ {
					s := newTestSession(testPool(3), seed)
					if err := play(s, q1, q2, favor(c)); err != nil {
						t.Fatalf("play: %v", err)
					}
					present := true
					for _, o := range s.History() {
						if o.Winner() != c {
							present = false
						}
					}
					if !present {
						continue
					}
					res, _ := s.Result()
					if res != c {
						t.Errorf("%s %s/%s seed %d: result = %s", c, q1, q2, seed, res)
					}
					if s.RoundsPlayed() > cfg.MinRounds {
						t.Errorf("%s %s/%s seed %d: %d rounds, want <= %d",
							c, q1, q2, seed, s.RoundsPlayed(), cfg.MinRounds)
					}
				}
			}
		}
	}
}

func TestSession_TieAtMaxRounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Q1 = ScoreTable{AnswerA: {}}
	cfg.Q2 = ScoreTable{AnswerA: {}}
	s, err := New(cfg, testPool(4), WithRand(NewRand(9)))
	if err != nil {
		t.Fatal(err)
	}

	// Alternate between the two categories of the opening round so they
	// stay level through max rounds.
	next := style.Classic
	choose := func(r Round) Side {
		if side, ok := r.SideOf(next); ok {
			if next == style.Classic {
				next = style.Volume
			} else {
				next = style.Classic
			}
			return side
		}
		if side, ok := r.SideOf(style.Hybrid); ok {
			return side
		}
		return Left
	}
	if err := play(s, AnswerA, AnswerA, choose); err != nil {
		t.Fatalf("play: %v", err)
	}

	sum := s.Summary()
	if sum.Reason == StopMaxRounds && sum.Margin == 0 {
		ranked := Rank(sum.Scores, cfg.Categories)
		want := ranked[0]
		if ranked[1] < want {
			want = ranked[1]
		}
		if sum.Result != want {
			t.Errorf("tie result = %s, want %s (scores %v)", sum.Result, want, sum.Scores)
		}
	}
	if s.RoundsPlayed() > cfg.MaxRounds {
		t.Errorf("rounds = %d, want <= %d", s.RoundsPlayed(), cfg.MaxRounds)
	}
}

// drainingPool stops serving photos once drained is set.
type drainingPool struct {
	StaticPool
	drained bool
}

func (p *drainingPool) Photos(c style.Category) []Photo {
	if p.drained {
		return nil
	}
	return p.StaticPool.Photos(c)
}

func TestSession_FailsWhenNextRoundHasNoPhotos(t *testing.T) {
	pool := &drainingPool{StaticPool: testPool(3)}
	s := newTestSession(pool, 5)

	_ = s.Start()
	_ = s.ApplyQ1(AnswerA)
	if err := s.ApplyQ2(AnswerA); err != nil {
		t.Fatalf("ApplyQ2: %v", err)
	}
	if _, ok := s.CurrentRound(); !ok {
		t.Fatal("round 1 not started")
	}

	pool.drained = true
	err := s.ChooseSide(Left)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("ChooseSide error = %v, want *ConfigurationError", err)
	}
	if cfgErr.Enabled != 0 {
		t.Errorf("Enabled = %d, want 0", cfgErr.Enabled)
	}
	if s.State() != StateFailed {
		t.Errorf("state = %s, want failed", s.State())
	}
	if _, ok := s.CurrentRound(); ok {
		t.Error("failed session still exposes a round")
	}
	if s.Err() == nil {
		t.Error("Err() = nil for failed session")
	}
	if s.RoundsPlayed() != 1 {
		t.Errorf("rounds = %d, want 1", s.RoundsPlayed())
	}
}

func TestSession_CompletionLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	s, err := New(DefaultConfig(), testPool(4),
		WithRand(NewRand(11)),
		WithLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := play(s, AnswerA, AnswerA, favor(style.Classic)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if s.State() != StateCompleted {
		t.Fatalf("state = %s, want completed", s.State())
	}
	if buf.Len() != 0 {
		t.Errorf("info log output for a completed session: %s", buf.String())
	}
}
