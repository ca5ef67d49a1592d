package quiz

import (
	"errors"
	"fmt"

	"github.com/lashpop/stylematch/internal/style"
)

var (
	// ErrInvalidTransition is returned when an operation is called in a
	// state that does not accept it.
	ErrInvalidTransition = errors.New("invalid quiz transition")

	// ErrUnknownAnswer is returned when an answer key is missing from the
	// question's score table.
	ErrUnknownAnswer = errors.New("unknown answer key")

	// ErrInvalidSide is returned for a side other than Left or Right.
	ErrInvalidSide = errors.New("invalid side")

	// ErrNoPair is returned when fewer than two categories are configured.
	ErrNoPair = errors.New("no category pair available")

	// ErrInvalidConfig wraps every config validation failure.
	ErrInvalidConfig = errors.New("invalid quiz config")
)

// TransitionError records an operation attempted in the wrong state.
type TransitionError struct {
	Op    string
	State State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }

// ConfigurationError reports a category whose photo pool cannot support the
// comparison phase.
type ConfigurationError struct {
	Category style.Category
	Enabled  int
	Required int
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("category %s has %d enabled photos, need at least %d",
		e.Category, e.Enabled, e.Required)
}
