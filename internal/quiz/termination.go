package quiz

import "github.com/lashpop/stylematch/internal/style"

// StopReason explains why a quiz ended.
type StopReason string

const (
	StopNone      StopReason = ""
	StopEarly     StopReason = "win_margin"
	StopMaxRounds StopReason = "max_rounds"
)

// Verdict is the outcome of evaluating the scores after a round.
type Verdict struct {
	Winner style.Category
	Reason StopReason
	Margin int
}

// Done reports whether a winner has been determined.
func (v Verdict) Done() bool {
	return v.Reason != StopNone
}

// Evaluate decides whether the quiz can stop after round.
//
// Only the top two ranked categories are compared: a three-way tie for the
// lead at max rounds resolves between the first two in rank order.
func Evaluate(scores Scores, round int, cfg Config) Verdict {
	ranked := Rank(scores, cfg.Categories)
	first, second := ranked[0], ranked[1]
	margin := scores[first] - scores[second]

	if round >= cfg.MinRounds && margin >= cfg.WinMargin {
		return Verdict{Winner: first, Reason: StopEarly, Margin: margin}
	}

	if round >= cfg.MaxRounds {
		winner := first
		if margin == 0 && second < first {
			winner = second
		}
		return Verdict{Winner: winner, Reason: StopMaxRounds, Margin: margin}
	}

	return Verdict{Margin: margin}
}
