// Package app wires the progression engine to storage, logging and metrics
// for the command-line front end.
package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/tickerquiz/internal/metrics"
	"github.com/abhisek/tickerquiz/internal/progression"
	"github.com/abhisek/tickerquiz/internal/questionbank"
	"github.com/abhisek/tickerquiz/internal/session"
	"github.com/abhisek/tickerquiz/internal/store"
	"github.com/abhisek/tickerquiz/internal/unlocks"
)

// Options holds the dependencies for the app.
type Options struct {
	Backend       store.Backend
	Bank          *questionbank.Bank
	Logger        *zap.Logger
	Metrics       *metrics.Metrics
	Entitlements  progression.Entitlements
	QuestionCount int
	SnapshotKeep  int

	// Clock and Rand default to time.Now and a randomly seeded PCG.
	Clock func() time.Time
	Rand  *rand.Rand
}

// App is one loaded learner profile.
type App struct {
	backend      store.Backend
	bank         *questionbank.Bank
	logger       *zap.Logger
	metrics      *metrics.Metrics
	entitlements progression.Entitlements
	count        int
	keep         int
	now          func() time.Time
	rng          *rand.Rand

	engine     *progression.Engine
	engineOpts []progression.Option
	xp         *xpRecorder
	keys       unlocks.SequenceMatcher
}

// New loads the ledger from opts.Backend. A store without a ledger document
// falls back to the latest snapshot, then to a fresh ledger.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Backend == nil {
		return nil, errors.New("app: backend is required")
	}
	a := &App{
		backend:      opts.Backend,
		bank:         opts.Bank,
		logger:       opts.Logger,
		metrics:      opts.Metrics,
		entitlements: opts.Entitlements,
		count:        opts.QuestionCount,
		keep:         opts.SnapshotKeep,
		now:          opts.Clock,
		rng:          opts.Rand,
		xp:           &xpRecorder{},
	}
	if a.bank == nil {
		a.bank = questionbank.Default()
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	if a.metrics == nil {
		a.metrics = metrics.New()
	}
	if a.count <= 0 {
		a.count = session.DefaultQuestionCount
	}
	if a.keep <= 0 {
		a.keep = 10
	}
	if a.now == nil {
		a.now = time.Now
	}
	if a.rng == nil {
		a.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	a.engineOpts = []progression.Option{
		progression.WithClock(a.now),
		progression.WithObserver(logObserver(a.logger)),
		progression.WithObserver(a.metrics),
		progression.WithObserver(a.xp),
	}

	ledger, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	a.engine = progression.NewEngine(ledger, a.engineOpts...)
	a.metrics.SetAdaptiveLevel(float64(a.engine.AdaptiveLevel()))
	return a, nil
}

func (a *App) load(ctx context.Context) (progression.Ledger, error) {
	data, err := a.backend.Get(ctx, progression.DocumentKey)
	switch {
	case err == nil:
		l, derr := progression.Unmarshal(data)
		if derr == nil {
			return l, nil
		}
		a.logger.Warn("ledger document unreadable, trying latest snapshot", zap.Error(derr))
	case errors.Is(err, store.ErrNotFound):
	default:
		return progression.Ledger{}, fmt.Errorf("load ledger: %w", err)
	}

	snap, err := a.backend.SnapshotRepo().Latest(ctx)
	if err != nil {
		return progression.Ledger{}, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil {
		return progression.NewLedger(), nil
	}
	l, err := progression.Unmarshal(snap.Data)
	if err != nil {
		a.logger.Warn("snapshot unreadable, starting fresh", zap.Int("snapshot", snap.ID), zap.Error(err))
		return progression.NewLedger(), nil
	}
	a.logger.Info("ledger restored from snapshot", zap.Int("snapshot", snap.ID))
	return l, nil
}

// Engine returns the progression engine.
func (a *App) Engine() *progression.Engine { return a.engine }

// Metrics returns the metrics collectors.
func (a *App) Metrics() *metrics.Metrics { return a.metrics }

// Entitlements returns the entitlements the app was configured with.
func (a *App) Entitlements() progression.Entitlements { return a.entitlements }

// Ledger returns a copy of the current ledger.
func (a *App) Ledger() progression.Ledger { return a.engine.Snapshot() }

// Save persists the ledger document, appends buffered XP events and records
// a snapshot, pruning old ones.
func (a *App) Save(ctx context.Context) error {
	doc, err := progression.Marshal(a.engine.Snapshot())
	if err != nil {
		return err
	}
	if err := a.backend.Put(ctx, progression.DocumentKey, doc); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}

	events := a.xp.drain()
	for i, ev := range events {
		if _, err := a.backend.EventRepo().AppendXPEvent(ctx, ev); err != nil {
			a.xp.requeue(events[i:])
			return fmt.Errorf("append xp event: %w", err)
		}
	}

	seq, err := a.backend.EventRepo().LastSequence(ctx)
	if err != nil {
		return fmt.Errorf("read event sequence: %w", err)
	}
	snaps := a.backend.SnapshotRepo()
	if err := snaps.Save(ctx, &store.Snapshot{Sequence: seq, Timestamp: a.now(), Data: doc}); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := snaps.Prune(ctx, a.keep); err != nil {
		a.logger.Warn("snapshot prune failed", zap.Error(err))
	}
	return nil
}

// Close closes the backend.
func (a *App) Close() error {
	return a.backend.Close()
}

// Export returns the ledger document.
func (a *App) Export() ([]byte, error) {
	return progression.Marshal(a.engine.Snapshot())
}

// Import replaces the ledger with the given document after validating it.
func (a *App) Import(data []byte) error {
	if err := progression.ValidateDocument(data); err != nil {
		return err
	}
	l, err := progression.Unmarshal(data)
	if err != nil {
		return err
	}
	a.engine = progression.NewEngine(l, a.engineOpts...)
	a.keys.Reset()
	a.metrics.SetAdaptiveLevel(float64(a.engine.AdaptiveLevel()))
	a.logger.Info("ledger imported", zap.Int("level", l.Level), zap.Int("total_xp", l.TotalXP))
	return nil
}

// Reset restores the initial ledger.
func (a *App) Reset() {
	a.engine.ResetProgress()
	a.keys.Reset()
	a.metrics.SetAdaptiveLevel(float64(a.engine.AdaptiveLevel()))
}

// History returns up to limit recorded XP awards, newest first.
func (a *App) History(ctx context.Context, limit int) ([]store.XPEvent, error) {
	events, err := a.backend.EventRepo().QueryXPEvents(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}
	return events, nil
}

// XPBySource returns the recorded XP totals per source.
func (a *App) XPBySource(ctx context.Context) (map[string]int, error) {
	totals, err := a.backend.EventRepo().XPBySource(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum xp events: %w", err)
	}
	return totals, nil
}
