// Package metrics registers draft counters on a private registry so tests
// can create as many instances as they like without collisions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	Commits          *prometheus.CounterVec // outcome: committed|conflict|validation|not_found|completed|exhausted|error
	Deviations       *prometheus.CounterVec // severity: minor|major
	Seeds            prometheus.Counter
	AdvisorFallbacks prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		Commits: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "draftroom",
			Name:      "pick_commits_total",
			Help:      "Pick commit attempts by outcome.",
		}, []string{"outcome"}),
		Deviations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "draftroom",
			Name:      "deviations_total",
			Help:      "Behavioral deviations recorded, by severity.",
		}, []string{"severity"}),
		Seeds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "draftroom",
			Name:      "catalog_seeds_total",
			Help:      "Catalog seed operations that performed work.",
		}),
		AdvisorFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "draftroom",
			Name:      "advisor_fallbacks_total",
			Help:      "Turns completed with the deterministic fallback pick.",
		}),
	}
}

// Handler serves the private registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
