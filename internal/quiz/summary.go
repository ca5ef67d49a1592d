package quiz

import "github.com/lashpop/stylematch/internal/style"

// Summary is a value snapshot of a session, used for persistence, metrics
// and the result screen.
type Summary struct {
	SessionID string
	State     State
	Q1        AnswerKey
	Q2        AnswerKey
	Scores    Scores
	Rounds    int
	Result    style.Category
	Reason    StopReason
	Margin    int
	History   []RoundOutcome
	Failure   string
}

// Summary captures the session's current state.
func (s *Session) Summary() Summary {
	sum := Summary{
		SessionID: s.id,
		State:     s.state,
		Q1:        s.q1,
		Q2:        s.q2,
		Scores:    s.scores.Clone(),
		Rounds:    s.rounds,
		History:   s.History(),
	}
	if s.state == StateCompleted {
		sum.Result = s.verdict.Winner
		sum.Reason = s.verdict.Reason
		sum.Margin = s.verdict.Margin
	}
	if s.err != nil {
		sum.Failure = s.err.Error()
	}
	return sum
}

// ChoiceCounts returns how often each category was picked in rounds.
func (sum Summary) ChoiceCounts() map[style.Category]int {
	counts := make(map[style.Category]int)
	for _, o := range sum.History {
		counts[o.Winner()]++
	}
	return counts
}
