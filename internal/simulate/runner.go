package simulate

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lashpop/stylematch/internal/quiz"
)

// chooserSalt separates the chooser's random stream from the session's.
const chooserSalt = 0x2545f4914f6cdd1d

// Observer receives every finished session. It is called from worker
// goroutines and must be safe for concurrent use.
type Observer interface {
	Observe(sum quiz.Summary)
}

// Options configures a batch of simulated sessions.
type Options struct {
	Runs int
	// Workers bounds concurrency; zero means GOMAXPROCS.
	Workers int
	// Seed is the base seed; run i uses Seed+i.
	Seed    uint64
	Rules   quiz.Config
	Pool    quiz.PhotoPool
	Chooser Chooser
	// Q1 and Q2 fix the answers; empty answers are drawn per run.
	Q1, Q2   quiz.AnswerKey
	Observer Observer
	Logger   zerolog.Logger
}

// Result is one simulated session.
type Result struct {
	Index   int
	Seed    uint64
	Summary quiz.Summary
}

// Run plays opts.Runs independent sessions on a bounded worker pool and
// returns them in run order. Sessions that fail for configuration reasons
// are returned as failed results; Run itself only fails on cancellation or
// engine misuse.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Runs <= 0 {
		return nil, errors.New("runs must be positive")
	}
	if opts.Chooser == nil {
		opts.Chooser = Random{}
	}
	if opts.Pool == nil {
		return nil, errors.New("photo pool is required")
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	log := opts.Logger.With().Str("component", "simulate").Str("chooser", opts.Chooser.String()).Logger()
	log.Debug().Int("runs", opts.Runs).Int("workers", workers).Uint64("seed", opts.Seed).Msg("simulation started")

	results := make([]Result, opts.Runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < opts.Runs; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			res, err := playOne(gctx, opts, i)
			if err != nil {
				return fmt.Errorf("run %d: %w", i, err)
			}
			results[i] = res
			if opts.Observer != nil {
				opts.Observer.Observe(res.Summary)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug().Msg("simulation finished")
	return results, nil
}

func playOne(ctx context.Context, opts Options, i int) (Result, error) {
	seed := opts.Seed + uint64(i)
	choiceRng := quiz.NewRand(seed ^ chooserSalt)

	sess, err := quiz.New(opts.Rules, opts.Pool,
		quiz.WithRand(quiz.NewRand(seed)),
		quiz.WithIDGenerator(func() string { return fmt.Sprintf("sim-%d-%d", opts.Seed, i) }),
		quiz.WithLogger(opts.Logger),
	)
	if err != nil {
		return Result{}, err
	}
	if err := sess.Start(); err != nil {
		return Result{}, err
	}

	q1 := pickAnswer(opts.Q1, opts.Rules.Q1, choiceRng)
	q2 := pickAnswer(opts.Q2, opts.Rules.Q2, choiceRng)
	if err := sess.ApplyQ1(q1); err != nil {
		return Result{}, err
	}
	if err := sess.ApplyQ2(q2); err != nil {
		var cfgErr *quiz.ConfigurationError
		if !errors.As(err, &cfgErr) {
			return Result{}, err
		}
	}

	for sess.State() == quiz.StateInComparison {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		r, ok := sess.CurrentRound()
		if !ok {
			return Result{}, fmt.Errorf("no round in state %s", sess.State())
		}
		if err := sess.ChooseSide(opts.Chooser.Choose(r, choiceRng)); err != nil {
			var cfgErr *quiz.ConfigurationError
			if !errors.As(err, &cfgErr) {
				return Result{}, err
			}
		}
	}

	return Result{Index: i, Seed: seed, Summary: sess.Summary()}, nil
}

func pickAnswer(fixed quiz.AnswerKey, table quiz.ScoreTable, rng quiz.Rand) quiz.AnswerKey {
	if fixed != "" {
		return fixed
	}
	keys := table.Keys()
	return keys[rng.IntN(len(keys))]
}
