package simulate

import (
	"fmt"
	"io"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/lashpop/stylematch/internal/quiz"
	"github.com/lashpop/stylematch/internal/style"
)

// Report aggregates a batch of simulated sessions.
type Report struct {
	Chooser   string                  `json:"chooser"`
	Seed      uint64                  `json:"seed"`
	Runs      int                     `json:"runs"`
	Completed int                     `json:"completed"`
	Failed    int                     `json:"failed"`
	ByResult  map[style.Category]int  `json:"by_result"`
	ByReason  map[quiz.StopReason]int `json:"by_reason"`
	// RoundCounts maps rounds played to the number of sessions.
	RoundCounts map[int]int `json:"round_counts"`
	AvgRounds   float64     `json:"avg_rounds"`
	// TargetRate is the share of completed sessions that matched the
	// chooser's target, when it has one.
	TargetRate *float64 `json:"target_rate,omitempty"`
	Failures   []string `json:"failures,omitempty"`
}

// Summarize builds a report from results in run order.
func Summarize(chooser Chooser, seed uint64, results []Result) Report {
	rep := Report{
		Chooser:     chooser.String(),
		Seed:        seed,
		Runs:        len(results),
		ByResult:    make(map[style.Category]int),
		ByReason:    make(map[quiz.StopReason]int),
		RoundCounts: make(map[int]int),
	}

	var target style.Category
	if t, ok := chooser.(Targeted); ok {
		target = t.Target()
	}

	failures := make(map[string]bool)
	rounds, hits := 0, 0
	for _, r := range results {
		sum := r.Summary
		if sum.State != quiz.StateCompleted {
			rep.Failed++
			if sum.Failure != "" && !failures[sum.Failure] {
				failures[sum.Failure] = true
				rep.Failures = append(rep.Failures, sum.Failure)
			}
			continue
		}
		rep.Completed++
		rep.ByResult[sum.Result]++
		rep.ByReason[sum.Reason]++
		rep.RoundCounts[sum.Rounds]++
		rounds += sum.Rounds
		if sum.Result == target {
			hits++
		}
	}

	if rep.Completed > 0 {
		rep.AvgRounds = float64(rounds) / float64(rep.Completed)
		if target != "" {
			rate := float64(hits) / float64(rep.Completed)
			rep.TargetRate = &rate
		}
	}
	return rep
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}

// WriteText writes a human-readable report.
func (r Report) WriteText(w io.Writer) error {
	p := &errWriter{w: w}
	p.printf("Chooser:    %s\n", r.Chooser)
	p.printf("Seed:       %d\n", r.Seed)
	p.printf("Sessions:   %d (%d completed, %d failed)\n", r.Runs, r.Completed, r.Failed)
	if r.Completed > 0 {
		p.printf("Avg rounds: %.2f\n", r.AvgRounds)
	}
	if r.TargetRate != nil {
		p.printf("On target:  %.1f%%\n", *r.TargetRate*100)
	}

	p.printf("\nResults\n")
	for _, c := range style.All() {
		n := r.ByResult[c]
		p.printf("  %-12s %6d  %5.1f%%\n", c.DisplayName(), n, percent(n, r.Completed))
	}

	p.printf("\nStopped by\n")
	for _, reason := range []quiz.StopReason{quiz.StopEarly, quiz.StopMaxRounds} {
		p.printf("  %-12s %6d\n", reason, r.ByReason[reason])
	}

	p.printf("\nRounds played\n")
	counts := make([]int, 0, len(r.RoundCounts))
	for n := range r.RoundCounts {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	for _, n := range counts {
		p.printf("  %-12d %6d\n", n, r.RoundCounts[n])
	}

	if len(r.Failures) > 0 {
		p.printf("\nFailures\n")
		for _, f := range r.Failures {
			p.printf("  %s\n", f)
		}
	}
	return p.err
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}

type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}
