package app

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tickerquiz/internal/progression"
	"github.com/abhisek/tickerquiz/internal/store"
	"github.com/abhisek/tickerquiz/internal/store/redisstore"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func openSQLite(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:app_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestApp(t *testing.T, backend store.Backend, ent progression.Entitlements) *App {
	t.Helper()
	a, err := New(context.Background(), Options{
		Backend:      backend,
		Entitlements: ent,
		Clock:        func() time.Time { return testNow },
		Rand:         rand.New(rand.NewPCG(1, 2)),
	})
	require.NoError(t, err)
	return a
}

func TestNew_RequiresBackend(t *testing.T) {
	_, err := New(context.Background(), Options{})
	assert.Error(t, err)
}

func TestNew_FreshLedger(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	l := a.Ledger()
	assert.Equal(t, 1, l.Level)
	assert.Equal(t, 0, l.TotalXP)
	assert.Equal(t, 100, l.XPToNextLevel)
}

func TestQuizFlow_PerfectSession(t *testing.T) {
	ctx := context.Background()
	backend := openSQLite(t)
	a := newTestApp(t, backend, progression.Entitlements{})

	s := a.StartQuiz()
	require.Len(t, s.Questions, 5)

	want := 0
	for !s.Done() {
		q, ok := s.Current()
		require.True(t, ok)
		res, out, err := a.Answer(s, q.CorrectIndex)
		require.NoError(t, err)
		assert.True(t, res.Correct)
		assert.Equal(t, progression.XPForAnswer(q.Difficulty, true), out.XP)
		want += out.XP
	}

	sum, bonus := a.FinishQuiz(s)
	assert.True(t, sum.Perfect)
	assert.Equal(t, progression.PerfectSessionBonusXP, bonus)
	want += bonus

	l := a.Ledger()
	assert.Equal(t, want, l.TotalXP)
	assert.Equal(t, 5, l.Stats.QuizAnswered)
	assert.Equal(t, 1, l.Stats.PerfectSessions)
	assert.True(t, l.AchievementUnlocked("first-steps"))

	require.NoError(t, a.Save(ctx))

	events, err := a.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, events, 6)
	for _, ev := range events {
		assert.Equal(t, s.ID, ev.SessionID)
	}
	assert.Equal(t, string(progression.SourceSession), events[0].Source)

	totals, err := a.XPBySource(ctx)
	require.NoError(t, err)
	assert.Equal(t, want-bonus, totals[string(progression.SourceQuiz)])
	assert.Equal(t, bonus, totals[string(progression.SourceSession)])
}

func TestAnswer_AfterCompletion(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})
	s := a.StartQuiz()
	for !s.Done() {
		_, _, err := a.Answer(s, 0)
		require.NoError(t, err)
	}
	_, _, err := a.Answer(s, 0)
	assert.Error(t, err)
}

func TestSave_ReloadsLedger(t *testing.T) {
	ctx := context.Background()
	backend := openSQLite(t)

	a := newTestApp(t, backend, progression.Entitlements{})
	require.NoError(t, a.Tick(30))
	require.NoError(t, a.Save(ctx))

	b := newTestApp(t, backend, progression.Entitlements{})
	l := b.Ledger()
	assert.Equal(t, 60, l.TotalXP)
	assert.Equal(t, 30, l.Stats.TimeSpentMinutes)
}

func TestNew_FallsBackToSnapshot(t *testing.T) {
	ctx := context.Background()
	backend := openSQLite(t)

	a := newTestApp(t, backend, progression.Entitlements{})
	require.NoError(t, a.Tick(10))
	require.NoError(t, a.Save(ctx))
	require.NoError(t, backend.Delete(ctx, progression.DocumentKey))

	b := newTestApp(t, backend, progression.Entitlements{})
	assert.Equal(t, 20, b.Ledger().TotalXP)
}

func TestNew_CorruptDocumentFallsBackToSnapshot(t *testing.T) {
	ctx := context.Background()
	backend := openSQLite(t)

	a := newTestApp(t, backend, progression.Entitlements{})
	require.NoError(t, a.Tick(10))
	require.NoError(t, a.Save(ctx))
	require.NoError(t, backend.Put(ctx, progression.DocumentKey, []byte("{not json")))

	b := newTestApp(t, backend, progression.Entitlements{})
	assert.Equal(t, 20, b.Ledger().TotalXP)
}

func TestEnterCode(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	secret, isNew, err := a.EnterCode("  tothemoon ")
	require.NoError(t, err)
	assert.Equal(t, "bull", secret.ID)
	assert.True(t, isNew)
	assert.True(t, a.Ledger().FeatureUnlocked("widget-bull-run"))
	assert.Equal(t, progression.SecretBonusXP, a.Ledger().TotalXP)

	_, isNew, err = a.EnterCode("TOTHEMOON")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, progression.SecretBonusXP, a.Ledger().TotalXP)

	_, _, err = a.EnterCode("BUYHIGH")
	assert.ErrorIs(t, err, ErrUnknownCode)
}

func TestPushKeys(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	keys := strings.Fields("left up up down down left right left right b a")
	found := a.PushKeys(keys)
	require.Len(t, found, 1)
	assert.Equal(t, "konami", found[0].ID)
	assert.True(t, a.Ledger().FeatureUnlocked("avatar-frame-pixel"))

	assert.Empty(t, a.PushKeys(keys))
	assert.Empty(t, a.PushKeys([]string{"up", "down"}))
}

func TestPushKeys_SequenceSpansCalls(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	assert.Empty(t, a.PushKeys(strings.Fields("up up down down left")))
	found := a.PushKeys(strings.Fields("right left right b a"))
	require.Len(t, found, 1)
	assert.Equal(t, "konami", found[0].ID)
}

func TestPushKeys_ResetClearsBuffer(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	assert.Empty(t, a.PushKeys(strings.Fields("up up down down left")))
	a.Reset()
	assert.Empty(t, a.PushKeys(strings.Fields("right left right b a")))
	assert.False(t, a.Ledger().SecretDiscovered("konami"))
}

func TestViewWidget(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	assert.ErrorIs(t, a.ViewWidget("widget-sector-heatmap"), ErrLocked)
	require.NoError(t, a.ViewWidget("price-chart"))

	l := a.Ledger()
	assert.Equal(t, 1, l.Stats.DataPointsViewed)
	assert.Equal(t, progression.DataPointXP, l.TotalXP)
}

func TestViewWidget_LifetimeBypassesLevel(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{Lifetime: true})

	require.NoError(t, a.ViewWidget("widget-yield-curve"))
	assert.ErrorIs(t, a.ViewWidget("widget-bull-run"), ErrLocked)
}

func TestTick_RejectsNonPositive(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})
	assert.Error(t, a.Tick(0))
	assert.Error(t, a.Tick(-3))
}

func TestTick_HugeMinutesStillAwardsXP(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})
	require.NoError(t, a.Tick(25))
	require.NoError(t, a.Tick(math.MaxInt/progression.XPPerMinute+1))

	l := a.Ledger()
	assert.Equal(t, math.MaxInt, l.TotalXP)
	assert.Equal(t, 25+math.MaxInt/progression.XPPerMinute, l.Stats.TimeSpentMinutes)
}

func TestAward(t *testing.T) {
	ctx := context.Background()
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	assert.Error(t, a.Award(0))
	assert.Error(t, a.Award(-10))
	require.NoError(t, a.Award(150))
	assert.Equal(t, 2, a.Ledger().Level)
	require.NoError(t, a.Save(ctx))

	totals, err := a.XPBySource(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, totals[string(progression.SourceManual)])
}

func TestCustomize(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})

	assert.ErrorIs(t, a.Customize(unlocks.SlotTheme, "theme-matrix"), ErrLocked)
	assert.Error(t, a.Customize(unlocks.SlotAccent, "theme-matrix"))
	assert.Error(t, a.Customize(unlocks.Slot("wallpaper"), ""))
	assert.Error(t, a.Customize(unlocks.SlotTheme, "theme-nope"))

	_, _, err := a.EnterCode("thereisnospoon")
	require.NoError(t, err)
	require.NoError(t, a.Customize(unlocks.SlotTheme, "theme-matrix"))
	assert.Equal(t, "theme-matrix", a.Ledger().Customizations.Theme)

	require.NoError(t, a.Customize(unlocks.SlotTheme, ""))
	assert.Equal(t, "", a.Ledger().Customizations.Theme)
}

func TestExportImport(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})
	require.NoError(t, a.Tick(60))
	doc, err := a.Export()
	require.NoError(t, err)

	b := newTestApp(t, openSQLite(t), progression.Entitlements{})
	require.NoError(t, b.Import(doc))
	assert.Equal(t, a.Ledger().TotalXP, b.Ledger().TotalXP)
	assert.Equal(t, a.Ledger().Level, b.Ledger().Level)

	assert.Error(t, b.Import([]byte(`{"level": "high"}`)))
	assert.Equal(t, a.Ledger().TotalXP, b.Ledger().TotalXP)
}

func TestReset(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{})
	require.NoError(t, a.Tick(100))
	require.Greater(t, a.Ledger().Level, 1)

	a.Reset()
	l := a.Ledger()
	assert.Equal(t, 1, l.Level)
	assert.Equal(t, 0, l.TotalXP)
}

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	backend := redisstore.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { backend.Close() })

	a := newTestApp(t, backend, progression.Entitlements{})
	require.NoError(t, a.ViewWidget("price-chart"))
	require.NoError(t, a.Save(ctx))

	b := newTestApp(t, backend, progression.Entitlements{})
	assert.Equal(t, progression.DataPointXP, b.Ledger().TotalXP)

	events, err := b.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(progression.SourceDataView), events[0].Source)
}

func TestStartQuiz_ExpertModeLengthensSession(t *testing.T) {
	a := newTestApp(t, openSQLite(t), progression.Entitlements{Lifetime: true})
	s := a.StartQuiz()
	assert.Len(t, s.Questions, ExpertQuestionCount)
}
