// Package metrics instruments calls into the adjudicator core. It wraps the
// resolve functions from the outside; the core itself never imports this
// package or performs I/O.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks adjudication-call counts and durations by phase kind,
// cumulative dislodgements, and how often the resolver re-guessed a cyclic
// dependency, registered against a caller-supplied prometheus.Registerer.
type Metrics struct {
	resolutions  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	paradoxHits  prometheus.Counter
	dislodgedSum prometheus.Counter
}

// New creates and registers the adjudicator metrics against reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diplomacy",
			Subsystem: "adjudicator",
			Name:      "resolutions_total",
			Help:      "Number of adjudication calls, partitioned by phase kind.",
		}, []string{"phase"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "diplomacy",
			Subsystem: "adjudicator",
			Name:      "resolution_duration_seconds",
			Help:      "Wall-clock time spent inside one adjudication call.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"phase"}),
		paradoxHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diplomacy",
			Subsystem: "adjudicator",
			Name:      "paradox_guesses_total",
			Help:      "Number of times the resolver had to guess a cyclic dependency's outcome.",
		}),
		dislodgedSum: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "diplomacy",
			Subsystem: "adjudicator",
			Name:      "dislodged_units_total",
			Help:      "Cumulative count of units dislodged across all resolved movement phases.",
		}),
	}
	reg.MustRegister(m.resolutions, m.duration, m.paradoxHits, m.dislodgedSum)
	return m
}

// ObserveMovement records one movement-phase resolution: its wall-clock
// duration, how many dislodgements it produced, and how many cyclic
// dependencies the resolver had to back off and re-guess.
func (m *Metrics) ObserveMovement(elapsed time.Duration, dislodged, guessCount int) {
	m.resolutions.WithLabelValues("movement").Inc()
	m.duration.WithLabelValues("movement").Observe(elapsed.Seconds())
	m.dislodgedSum.Add(float64(dislodged))
	m.paradoxHits.Add(float64(guessCount))
}

// ObserveRetreat records one retreat-phase resolution.
func (m *Metrics) ObserveRetreat(elapsed time.Duration) {
	m.resolutions.WithLabelValues("retreat").Inc()
	m.duration.WithLabelValues("retreat").Observe(elapsed.Seconds())
}

// ObserveWinter records one winter-adjustment resolution.
func (m *Metrics) ObserveWinter(elapsed time.Duration) {
	m.resolutions.WithLabelValues("winter").Inc()
	m.duration.WithLabelValues("winter").Observe(elapsed.Seconds())
}
