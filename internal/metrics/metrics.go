// Package metrics exposes solver search statistics as prometheus
// collectors, for `cdnl serve` to publish over /metrics. Nothing in
// internal/core imports this package; Collector is fed by polling
// core.Solver.Stats() from the CLI layer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rhagen/cdnl/internal/core"
)

var (
	conflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cdnl",
		Name:      "conflicts_total",
		Help:      "Number of conflicts encountered across all Solve calls.",
	})
	restarts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cdnl",
		Name:      "restarts_total",
		Help:      "Number of restarts triggered across all Solve calls.",
	})
	decisions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cdnl",
		Name:      "decisions_total",
		Help:      "Number of branching decisions made across all Solve calls.",
	})
	propagations = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cdnl",
		Name:      "propagations_total",
		Help:      "Number of literal propagations performed across all Solve calls.",
	})
	reductions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cdnl",
		Name:      "reductions_total",
		Help:      "Number of learnt-clause database reductions performed.",
	})
	models = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "cdnl",
		Name:      "models_total",
		Help:      "Number of models found across all Solve calls.",
	})
	learnts = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "cdnl",
		Name:      "learnts",
		Help:      "Current number of learnt clauses held by the solver.",
	})
)

func init() {
	prometheus.MustRegister(conflicts, restarts, decisions, propagations, reductions, models, learnts)
}

// Collector periodically snapshots a Solver's Stats and pushes the deltas
// into the registered prometheus collectors above. It keeps the previous
// totals because core.Stats counters are cumulative while prometheus
// Counter.Add expects non-negative increments since the last call.
type Collector struct {
	prev core.Stats
}

// NewCollector returns a Collector with a zero baseline, ready for Observe.
func NewCollector() *Collector {
	return &Collector{}
}

// Observe records the delta between stats and the last-seen snapshot.
func (c *Collector) Observe(stats core.Stats) {
	conflicts.Add(float64(stats.Conflicts - c.prev.Conflicts))
	restarts.Add(float64(stats.Restarts - c.prev.Restarts))
	decisions.Add(float64(stats.Decisions - c.prev.Decisions))
	propagations.Add(float64(stats.Propagations - c.prev.Propagations))
	reductions.Add(float64(stats.Reductions - c.prev.Reductions))
	models.Add(float64(stats.Models - c.prev.Models))
	c.prev = stats
}

// SetLearnts updates the learnt-clause gauge directly, since it is a level
// rather than a cumulative count.
func SetLearnts(n int) { learnts.Set(float64(n)) }
