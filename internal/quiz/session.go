package quiz

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lashpop/stylematch/internal/style"
)

// Session is one run of the style matching quiz. It is not safe for
// concurrent use; callers serialize access to a session.
type Session struct {
	cfg   Config
	pool  PhotoPool
	rng   Rand
	log   zerolog.Logger
	newID func() string

	id         string
	state      State
	scores     Scores
	rounds     int
	usedPairs  map[PairKey]bool
	usedPhotos map[string]bool
	current    *Round
	history    []RoundOutcome
	q1, q2     AnswerKey
	verdict    Verdict
	err        error
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source. Use NewRand for reproducible sessions.
func WithRand(r Rand) Option {
	return func(s *Session) { s.rng = r }
}

// WithLogger sets the logger used for transition and round events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// WithIDGenerator overrides how session ids are created on Start.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// New creates a session in StateNotStarted.
func New(cfg Config, pool PhotoPool, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pool == nil {
		return nil, fmt.Errorf("%w: nil photo pool", ErrInvalidConfig)
	}

	s := &Session{
		cfg:   cfg,
		pool:  pool,
		log:   zerolog.Nop(),
		newID: func() string { return uuid.New().String() },
		state: StateNotStarted,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = newUnseededRand()
	}
	s.reset()
	return s, nil
}

func (s *Session) reset() {
	s.scores = NewScores(s.cfg.Categories)
	s.rounds = 0
	s.usedPairs = make(map[PairKey]bool)
	s.usedPhotos = make(map[string]bool)
	s.current = nil
	s.history = nil
	s.q1, s.q2 = "", ""
	s.verdict = Verdict{}
	s.err = nil
}

// Start begins a fresh quiz. It is valid before the first quiz and after a
// quiz has completed or failed.
func (s *Session) Start() error {
	if s.state != StateNotStarted && !s.state.Terminal() {
		return &TransitionError{Op: "start", State: s.state}
	}
	s.reset()
	s.id = s.newID()
	s.transition(StateAwaitingQ1)
	return nil
}

// ApplyQ1 scores the first question.
func (s *Session) ApplyQ1(key AnswerKey) error {
	if s.state != StateAwaitingQ1 {
		return &TransitionError{Op: "apply q1", State: s.state}
	}
	if err := s.cfg.Q1.Apply(s.scores, key); err != nil {
		return fmt.Errorf("q1: %w", err)
	}
	s.q1 = key
	s.transition(StateAwaitingQ2)
	return nil
}

// ApplyQ2 scores the second question and opens round 1. If the photo
// catalog cannot support the comparison phase the session moves to
// StateFailed and the cause is returned.
func (s *Session) ApplyQ2(key AnswerKey) error {
	if s.state != StateAwaitingQ2 {
		return &TransitionError{Op: "apply q2", State: s.state}
	}
	if err := s.cfg.Q2.Apply(s.scores, key); err != nil {
		return fmt.Errorf("q2: %w", err)
	}
	s.q2 = key

	if err := CheckPool(s.pool, s.cfg.Categories); err != nil {
		return s.fail(err)
	}
	s.transition(StateInComparison)
	return s.nextRound()
}

// ChooseSide records the user's pick for the current round and either
// completes the quiz or opens the next round.
func (s *Session) ChooseSide(side Side) error {
	if s.state != StateInComparison || s.current == nil {
		return &TransitionError{Op: "choose side", State: s.state}
	}
	if side != Left && side != Right {
		return fmt.Errorf("choose side: %w: %s", ErrInvalidSide, side)
	}

	round := *s.current
	winner := round.Slot(side).Category
	s.scores[winner]++
	s.rounds++
	s.history = append(s.history, RoundOutcome{Round: round, Chosen: side})
	s.current = nil

	s.log.Debug().
		Str("session", s.id).
		Int("round", round.Number).
		Str("chosen", string(winner)).
		Msg("round resolved")

	v := Evaluate(s.scores, s.rounds, s.cfg)
	if v.Done() {
		s.verdict = v
		s.log.Debug().
			Str("session", s.id).
			Str("result", string(v.Winner)).
			Str("reason", string(v.Reason)).
			Int("rounds", s.rounds).
			Msg("quiz completed")
		s.transition(StateCompleted)
		return nil
	}
	return s.nextRound()
}

// nextRound selects the pair and photos for the next round and commits
// their usage before exposing the round.
func (s *Session) nextRound() error {
	round, err := s.startRound()
	if err != nil {
		return s.fail(err)
	}
	s.current = &round
	s.log.Debug().
		Str("session", s.id).
		Int("round", round.Number).
		Str("left", string(round.Left.Category)).
		Str("right", string(round.Right.Category)).
		Msg("round started")
	return nil
}

func (s *Session) startRound() (Round, error) {
	sel := PairSelector{Categories: s.cfg.Categories, Extremes: s.cfg.Extremes, Rand: s.rng}
	a, b, ok := sel.Select(s.scores, s.usedPairs, s.rounds == 0)
	if !ok {
		return Round{}, ErrNoPair
	}

	pa, ok := SamplePhoto(s.pool.Photos(a), s.usedPhotos, s.rng)
	if !ok {
		return Round{}, &ConfigurationError{Category: a, Required: MinEnabledPhotos}
	}
	pb, ok := SamplePhoto(s.pool.Photos(b), s.usedPhotos, s.rng)
	if !ok {
		return Round{}, &ConfigurationError{Category: b, Required: MinEnabledPhotos}
	}

	left, right := Slot{Category: a, Photo: pa}, Slot{Category: b, Photo: pb}
	if s.rng.IntN(2) == 1 {
		left, right = right, left
	}

	key := NewPairKey(a, b)
	s.usedPairs[key] = true
	s.usedPhotos[pa.ID] = true
	s.usedPhotos[pb.ID] = true

	return Round{Number: s.rounds + 1, Key: key, Left: left, Right: right}, nil
}

func (s *Session) fail(err error) error {
	s.err = err
	s.current = nil
	s.log.Warn().Str("session", s.id).Err(err).Msg("quiz failed")
	s.transition(StateFailed)
	return err
}

func (s *Session) transition(to State) {
	s.log.Debug().
		Str("session", s.id).
		Stringer("from", s.state).
		Stringer("to", to).
		Msg("state transition")
	s.state = to
}

// State returns the current phase.
func (s *Session) State() State { return s.state }

// ID returns the id assigned by the last Start, or "" before it.
func (s *Session) ID() string { return s.id }

// CurrentRound returns the round awaiting a choice.
func (s *Session) CurrentRound() (Round, bool) {
	if s.current == nil {
		return Round{}, false
	}
	return *s.current, true
}

// Result returns the recommended category once the quiz has completed.
func (s *Session) Result() (style.Category, bool) {
	if s.state != StateCompleted {
		return "", false
	}
	return s.verdict.Winner, true
}

// Err returns the cause of a failed session.
func (s *Session) Err() error { return s.err }

// Scores returns a copy of the current scores.
func (s *Session) Scores() Scores { return s.scores.Clone() }

// RoundsPlayed returns the number of resolved rounds.
func (s *Session) RoundsPlayed() int { return s.rounds }

// History returns the resolved rounds in order.
func (s *Session) History() []RoundOutcome {
	out := make([]RoundOutcome, len(s.history))
	copy(out, s.history)
	return out
}

// Config returns the rules the session was built with.
func (s *Session) Config() Config { return s.cfg }
