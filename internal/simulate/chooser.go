// Package simulate drives quiz sessions with scripted players.
package simulate

import (
	"fmt"
	"strings"

	"github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/style"
)

// Chooser decides which side a simulated player picks in a round.
// Implementations must only draw randomness from rng.
type Chooser interface {
	Choose(r quiz.Round, rng quiz.Rand) quiz.Side
	String() string
}

// Targeted is implemented by choosers that aim for one style.
type Targeted interface {
	Target() style.Category
}

// Favor picks its target whenever it is shown and a random side otherwise.
type Favor struct {
	Style style.Category
}

func (f Favor) Choose(r quiz.Round, rng quiz.Rand) quiz.Side {
	if side, ok := r.SideOf(f.Style); ok {
		return side
	}
	return quiz.Side(rng.IntN(2))
}

func (f Favor) Target() style.Category { return f.Style }
func (f Favor) String() string         { return "favor:" + string(f.Style) }

// Spectrum picks the side closest to its target on the style spectrum,
// breaking ties at random.
type Spectrum struct {
	Style style.Category
}

func (s Spectrum) Choose(r quiz.Round, rng quiz.Rand) quiz.Side {
	target := s.Style.SpectrumIndex()
	left := distance(r.Left.Category.SpectrumIndex(), target)
	right := distance(r.Right.Category.SpectrumIndex(), target)
	switch {
	case left < right:
		return quiz.Left
	case right < left:
		return quiz.Right
	default:
		return quiz.Side(rng.IntN(2))
	}
}

func (s Spectrum) Target() style.Category { return s.Style }
func (s Spectrum) String() string         { return "spectrum:" + string(s.Style) }

// Random flips a coin every round.
type Random struct{}

func (Random) Choose(_ quiz.Round, rng quiz.Rand) quiz.Side {
	return quiz.Side(rng.IntN(2))
}

func (Random) String() string { return "random" }

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// ParseChooser parses "random", "favor:<style>" or "spectrum:<style>".
func ParseChooser(spec string) (Chooser, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(spec), ":")
	switch strings.ToLower(name) {
	case "random":
		if arg != "" {
			return nil, fmt.Errorf("chooser %q: random takes no style", spec)
		}
		return Random{}, nil
	case "favor", "spectrum":
		c, err := style.Parse(arg)
		if err != nil {
			return nil, fmt.Errorf("chooser %q: %w", spec, err)
		}
		if strings.EqualFold(name, "favor") {
			return Favor{Style: c}, nil
		}
		return Spectrum{Style: c}, nil
	default:
		return nil, fmt.Errorf("unknown chooser %q (want random, favor:<style> or spectrum:<style>)", spec)
	}
}
