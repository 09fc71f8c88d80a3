// Package metrics holds the Prometheus measures for command dispatch.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome label values for the command counter.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// CommandMeasures bundles every measure the command service updates. Built
// once at startup against the process registry and injected where needed.
type CommandMeasures struct {
	Commands *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	InFlight prometheus.Gauge
}

func NewCommandMeasures(reg prometheus.Registerer) *CommandMeasures {
	m := &CommandMeasures{
		Commands: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "latch_commands_total",
				Help: "Count of dispatched commands by action and outcome.",
			},
			[]string{"action", "outcome"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "latch_command_duration_seconds",
				Help:    "Time from dispatch to terminal outcome, by action.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
		InFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "latch_commands_in_flight",
				Help: "Number of commands currently between dispatch and outcome.",
			},
		),
	}
	reg.MustRegister(m.Commands, m.Duration, m.InFlight)
	return m
}
