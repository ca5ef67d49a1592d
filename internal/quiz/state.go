package quiz

import "fmt"

// State is the phase of a quiz session.
type State int

const (
	StateNotStarted   State = iota // Created, Start not yet called
	StateAwaitingQ1                // Waiting for the beauty routine answer
	StateAwaitingQ2                // Waiting for the lash look answer
	StateInComparison              // A round is on screen
	StateCompleted                 // Result determined
	StateFailed                    // Photo catalog cannot support the quiz
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not_started"
	case StateAwaitingQ1:
		return "awaiting_q1"
	case StateAwaitingQ2:
		return "awaiting_q2"
	case StateInComparison:
		return "in_comparison"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal reports whether only Start can leave s.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateFailed
}
