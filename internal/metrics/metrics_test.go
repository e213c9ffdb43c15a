package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tickerquiz/internal/progression"
)

func TestObserve_CountsEngineEvents(t *testing.T) {
	m := New()
	e := progression.NewEngine(progression.NewLedger(),
		progression.WithClock(func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }),
		progression.WithObserver(m),
	)

	e.AddXP(250, progression.SourceManual)
	e.DiscoverSecret("matrix")

	assert.Equal(t, 250.0, testutil.ToFloat64(m.xpAwarded.WithLabelValues("manual")))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.xpAwarded.WithLabelValues("secret")))
	// 250 XP reaches level 3; the secret bonus adds 100 more toward level 4.
	assert.Equal(t, 2.0, testutil.ToFloat64(m.levelUps))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.secretsDiscovered))
	// widget-sector-heatmap, theme-midnight, theme-matrix
	assert.Equal(t, 3.0, testutil.ToFloat64(m.featuresUnlocked))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.achievementsUnlocked))
}

func TestSessionMetrics(t *testing.T) {
	m := New()
	m.SessionComposed()
	m.SessionComposed()
	m.SessionCompleted(0.8)
	m.SetAdaptiveLevel(1.7)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsComposed))
	assert.Equal(t, 1.7, testutil.ToFloat64(m.adaptiveLevel))
	assert.Equal(t, 1, testutil.CollectAndCount(m.sessionAccuracy))
}

func TestWriteText(t *testing.T) {
	m := New()
	m.Observe(progression.Event{Kind: progression.EventXPAwarded, Source: progression.SourceQuiz, Amount: 15})

	var buf bytes.Buffer
	require.NoError(t, m.WriteText(&buf))
	out := buf.String()
	assert.Contains(t, out, `tickerquiz_xp_awarded_total{source="quiz"} 15`)
	assert.Contains(t, out, "# TYPE tickerquiz_level_ups_total counter")
}
