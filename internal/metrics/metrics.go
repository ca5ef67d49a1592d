// Package metrics records quiz outcomes as Prometheus metrics.
//
// Each Recorder owns its registry so simulations and tests never share
// counters. The CLI exports a registry with WriteTextfile for the node
// exporter's textfile collector.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/lashpop/stylematch/internal/quiz"
)

// Recorder collects quiz session metrics.
type Recorder struct {
	reg *prometheus.Registry

	SessionsCompleted *prometheus.CounterVec
	SessionsFailed    prometheus.Counter
	SessionRounds     prometheus.Histogram
	WinMargin         prometheus.Histogram
	Choices           *prometheus.CounterVec
}

// NewRecorder registers the quiz collectors on a fresh registry. maxRounds
// sizes the round histogram.
func NewRecorder(maxRounds int) *Recorder {
	if maxRounds < 1 {
		maxRounds = quiz.DefaultMaxRounds
	}
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		reg: reg,
		SessionsCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stylematch_sessions_completed_total",
				Help: "Completed quiz sessions by matched style and stop reason",
			},
			[]string{"result", "reason"},
		),
		SessionsFailed: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "stylematch_sessions_failed_total",
				Help: "Quiz sessions that failed because of the photo catalog",
			},
		),
		SessionRounds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stylematch_session_rounds",
				Help:    "Comparison rounds played per completed session",
				Buckets: prometheus.LinearBuckets(1, 1, maxRounds),
			},
		),
		WinMargin: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "stylematch_session_win_margin",
				Help:    "Score lead of the matched style over the runner-up",
				Buckets: prometheus.LinearBuckets(0, 1, 10),
			},
		),
		Choices: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stylematch_round_choices_total",
				Help: "Comparison round picks by style",
			},
			[]string{"style"},
		),
	}
}

// Observe records a finished session. Sessions that are still running are
// ignored. Safe for concurrent use.
func (r *Recorder) Observe(sum quiz.Summary) {
	switch sum.State {
	case quiz.StateCompleted:
		r.SessionsCompleted.WithLabelValues(string(sum.Result), string(sum.Reason)).Inc()
		r.SessionRounds.Observe(float64(sum.Rounds))
		r.WinMargin.Observe(float64(sum.Margin))
		for c, n := range sum.ChoiceCounts() {
			r.Choices.WithLabelValues(string(c)).Add(float64(n))
		}
	case quiz.StateFailed:
		r.SessionsFailed.Inc()
	}
}

// Registry returns the registry the collectors are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

// WriteTextfile writes the current metrics in the text exposition format.
// The file is written atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
