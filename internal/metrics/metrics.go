// Package metrics wires a small prometheus registry into the simulator's
// round loop: a handful of counters updated from the hot path, exposed for
// a caller to scrape or read directly. No HTTP exporter is wired up here;
// the simulator has no real network I/O to export metrics over.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry holds the counters a System updates once per round.
type Registry struct {
	registry       *prometheus.Registry
	roundsTotal    prometheus.Counter
	decisionsTotal prometheus.Counter
}

// NewRegistry builds a fresh, unshared prometheus registry. Each simulated
// System gets its own, so that running many simulations (e.g. across seeds
// in a property test) never collides on metric registration.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		roundsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paxosim_rounds_total",
			Help: "Number of simulation rounds executed.",
		}),
		decisionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "paxosim_decisions_total",
			Help: "Number of simulations that reached agreement before their round budget expired.",
		}),
	}
	r.registry.MustRegister(r.roundsTotal, r.decisionsTotal)
	return r
}

// ObserveRound is called once per completed round.
func (r *Registry) ObserveRound() {
	r.roundsTotal.Inc()
}

// ObserveDecision is called once, if and when Simulate ends with every
// server decided.
func (r *Registry) ObserveDecision() {
	r.decisionsTotal.Inc()
}

// Gatherer exposes the underlying prometheus registry, for a caller that
// wants to inspect or export its current samples.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.registry }
