// Package metrics counts progression activity on a private Prometheus
// registry. Nothing is served over HTTP; the stats command prints a dump.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/abhisek/tickerquiz/internal/progression"
)

const namespace = "tickerquiz"

// Metrics holds the collectors. It implements progression.Observer.
type Metrics struct {
	registry *prometheus.Registry

	xpAwarded            *prometheus.CounterVec
	levelUps             prometheus.Counter
	featuresUnlocked     prometheus.Counter
	achievementsUnlocked prometheus.Counter
	secretsDiscovered    prometheus.Counter
	sessionsComposed     prometheus.Counter
	sessionAccuracy      prometheus.Histogram
	adaptiveLevel        prometheus.Gauge
}

var _ progression.Observer = (*Metrics)(nil)

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		xpAwarded: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "xp_awarded_total",
			Help:      "XP awarded, by source.",
		}, []string{"source"}),
		levelUps: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "level_ups_total",
			Help:      "Levels gained.",
		}),
		featuresUnlocked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_unlocked_total",
			Help:      "Features unlocked by level or secret.",
		}),
		achievementsUnlocked: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked.",
		}),
		secretsDiscovered: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "secrets_discovered_total",
			Help:      "Secrets discovered.",
		}),
		sessionsComposed: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_composed_total",
			Help:      "Quiz sessions composed.",
		}),
		sessionAccuracy: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "session_accuracy",
			Help:      "Share of correct answers per completed session.",
			Buckets:   []float64{0.2, 0.4, 0.6, 0.8, 1.0},
		}),
		adaptiveLevel: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "adaptive_level",
			Help:      "Current adaptive difficulty level.",
		}),
	}
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Observe implements progression.Observer.
func (m *Metrics) Observe(ev progression.Event) {
	switch ev.Kind {
	case progression.EventXPAwarded:
		m.xpAwarded.WithLabelValues(string(ev.Source)).Add(float64(ev.Amount))
	case progression.EventLevelUp:
		m.levelUps.Inc()
	case progression.EventFeatureUnlocked:
		m.featuresUnlocked.Inc()
	case progression.EventAchievementUnlocked:
		m.achievementsUnlocked.Inc()
	case progression.EventSecretDiscovered:
		m.secretsDiscovered.Inc()
	}
}

// SessionComposed counts a newly composed quiz session.
func (m *Metrics) SessionComposed() { m.sessionsComposed.Inc() }

// SessionCompleted records a finished session's accuracy.
func (m *Metrics) SessionCompleted(accuracy float64) { m.sessionAccuracy.Observe(accuracy) }

// SetAdaptiveLevel records the current adaptive level.
func (m *Metrics) SetAdaptiveLevel(level float64) { m.adaptiveLevel.Set(level) }

// WriteText writes every gathered family in the Prometheus text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("write metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
