package quiz

import (
	engine "github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/ui/components"
)

// Question is the copy of one upfront question.
type Question struct {
	Prompt  string
	Answers map[engine.AnswerKey]string
}

// RoutineQuestion is asked first and scored with the Q1 table.
var RoutineQuestion = Question{
	Prompt: "What does your beauty routine look like?",
	Answers: map[engine.AnswerKey]string{
		engine.AnswerA: "Super low-maintenance: gym, errands, busy days",
		engine.AnswerB: "A little mascara, polished but not overdone",
		engine.AnswerC: "Events, nights out, I love full glam",
		engine.AnswerD: "It changes with my plans",
	},
}

// LookQuestion is asked second and scored with the Q2 table.
var LookQuestion = Question{
	Prompt: "How do you want your lashes to look?",
	Answers: map[engine.AnswerKey]string{
		engine.AnswerA: "My natural lashes, just darker",
		engine.AnswerB: "Glossy, defined, clean-girl lashes",
		engine.AnswerC: "Natural but fuller and textured",
		engine.AnswerD: "Bold, dramatic, full volume",
	},
}

// ComparisonPrompt is shown above every photo pair.
const ComparisonPrompt = "Which lash look do you love more?"

// choices lists the answers of q for the keys of table. Keys without copy
// fall back to a generic label so custom tables stay playable.
func (q Question) choices(table engine.ScoreTable) []components.Choice {
	keys := table.Keys()
	out := make([]components.Choice, 0, len(keys))
	for _, k := range keys {
		label, ok := q.Answers[k]
		if !ok {
			label = "Option " + string(k)
		}
		out = append(out, components.Choice{Key: string(k), Label: label})
	}
	return out
}
