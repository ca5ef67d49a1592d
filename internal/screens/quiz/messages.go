package quiz

import (
	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/store"
)

// resultSavedMsg is sent once a completed quiz has been written to the
// result log.
type resultSavedMsg struct {
	Summary engine.Summary
	Record  store.ResultRecord
	Err     error
}
