package quiz

import (
	"fmt"
	"sort"

	"github.com/lashpop/stylematch/internal/style"
)

// AnswerKey identifies one option of an upfront question.
type AnswerKey string

const (
	AnswerA AnswerKey = "A"
	AnswerB AnswerKey = "B"
	AnswerC AnswerKey = "C"
	AnswerD AnswerKey = "D"
)

// Deltas is a partial category -> points map applied for one answer.
type Deltas map[style.Category]int

// ScoreTable maps every valid answer of a question to its deltas.
type ScoreTable map[AnswerKey]Deltas

// Keys returns the table's answer keys in sorted order.
func (t ScoreTable) Keys() []AnswerKey {
	keys := make([]AnswerKey, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Apply adds the deltas of key to scores.
func (t ScoreTable) Apply(scores Scores, key AnswerKey) error {
	deltas, ok := t[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownAnswer, key)
	}
	for c, d := range deltas {
		if d == 0 {
			continue
		}
		scores[c] += d
	}
	return nil
}

// DefaultQ1Table scores "what does your beauty routine look like".
//
//	A minimal      classic +2
//	B light        classic +1, wetAngel +1
//	C full glam    volume +2
//	D flexible     hybrid +1, wetAngel +1
func DefaultQ1Table() ScoreTable {
	return ScoreTable{
		AnswerA: {style.Classic: 2},
		AnswerB: {style.Classic: 1, style.WetAngel: 1},
		AnswerC: {style.Volume: 2},
		AnswerD: {style.Hybrid: 1, style.WetAngel: 1},
	}
}

// DefaultQ2Table scores "how do you want your lashes to feel".
//
//	A barely there  classic +2
//	B soft natural  classic +1, wetAngel +1
//	C fuller        hybrid +2
//	D bold          volume +2
func DefaultQ2Table() ScoreTable {
	return ScoreTable{
		AnswerA: {style.Classic: 2},
		AnswerB: {style.Classic: 1, style.WetAngel: 1},
		AnswerC: {style.Hybrid: 2},
		AnswerD: {style.Volume: 2},
	}
}

// Reference round limits.
const (
	DefaultMinRounds = 4
	DefaultMaxRounds = 8
	DefaultWinMargin = 2
)

// MinEnabledPhotos is the smallest pool a category may have for the
// comparison phase to start.
const MinEnabledPhotos = 2

// Config holds the quiz rules supplied by the embedding application.
type Config struct {
	Q1 ScoreTable
	Q2 ScoreTable

	// MinRounds is the earliest round after which a margin win may stop the quiz.
	MinRounds int
	// MaxRounds forces a decision.
	MaxRounds int
	// WinMargin is the lead over the runner-up required for an early stop.
	WinMargin int

	// Categories in enumeration order. Ties are broken by this order.
	Categories []style.Category
	// Extremes is the pair compared in round 1.
	Extremes [2]style.Category
}

// DefaultConfig returns the reference quiz rules.
func DefaultConfig() Config {
	lo, hi := style.Extremes()
	return Config{
		Q1:         DefaultQ1Table(),
		Q2:         DefaultQ2Table(),
		MinRounds:  DefaultMinRounds,
		MaxRounds:  DefaultMaxRounds,
		WinMargin:  DefaultWinMargin,
		Categories: style.All(),
		Extremes:   [2]style.Category{lo, hi},
	}
}

// Validate checks the config for internal consistency.
func (c Config) Validate() error {
	if len(c.Categories) < 2 {
		return fmt.Errorf("%w: need at least 2 categories, got %d", ErrInvalidConfig, len(c.Categories))
	}
	known := make(map[style.Category]bool, len(c.Categories))
	for _, cat := range c.Categories {
		if !cat.Valid() {
			return fmt.Errorf("%w: unknown category %q", ErrInvalidConfig, cat)
		}
		if known[cat] {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidConfig, cat)
		}
		known[cat] = true
	}
	if c.Extremes[0] == c.Extremes[1] {
		return fmt.Errorf("%w: extremes pair must be two distinct categories", ErrInvalidConfig)
	}
	for _, e := range c.Extremes {
		if !known[e] {
			return fmt.Errorf("%w: extreme %q is not a configured category", ErrInvalidConfig, e)
		}
	}

	if c.MinRounds < 1 {
		return fmt.Errorf("%w: min rounds must be >= 1, got %d", ErrInvalidConfig, c.MinRounds)
	}
	if c.MaxRounds < c.MinRounds {
		return fmt.Errorf("%w: max rounds (%d) below min rounds (%d)", ErrInvalidConfig, c.MaxRounds, c.MinRounds)
	}
	if c.WinMargin < 1 {
		return fmt.Errorf("%w: win margin must be >= 1, got %d", ErrInvalidConfig, c.WinMargin)
	}

	if err := validateTable("q1", c.Q1, known); err != nil {
		return err
	}
	return validateTable("q2", c.Q2, known)
}

func validateTable(name string, t ScoreTable, known map[style.Category]bool) error {
	if len(t) == 0 {
		return fmt.Errorf("%w: %s score table is empty", ErrInvalidConfig, name)
	}
	for _, key := range t.Keys() {
		for cat, d := range t[key] {
			if !known[cat] {
				return fmt.Errorf("%w: %s answer %s scores unknown category %q", ErrInvalidConfig, name, key, cat)
			}
			if d < 0 {
				return fmt.Errorf("%w: %s answer %s has negative delta %d for %s", ErrInvalidConfig, name, key, d, cat)
			}
		}
	}
	return nil
}
