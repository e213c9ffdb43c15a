package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number assigned to
// every appended event. Snapshots record the sequence they were taken at,
// so events after a snapshot are those with a greater sequence.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Current returns the last assigned sequence number (0 if none).
func (sc *sequenceCounter) Current(ctx context.Context) (int64, error) {
	var next int64
	err := sc.db.QueryRowContext(ctx, `SELECT next_val FROM global_sequence WHERE id = 1`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("current sequence: %w", err)
	}
	return next - 1, nil
}

// eventRepo implements EventRepo on the xp_events table.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendXPEvent(ctx context.Context, data XPEventData) (int64, error) {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return 0, err
	}
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder().Insert(xpEventsTable).
		Columns("sequence", "timestamp", "source", "amount", "level", "session_id").
		Values(seq, ts.UTC(), data.Source, data.Amount, data.Level, data.SessionID).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("append xp event: %w", err)
	}
	return seq, nil
}

func (r *eventRepo) LastSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}

func (r *eventRepo) QueryXPEvents(ctx context.Context, opts QueryOpts) ([]XPEvent, error) {
	sel := builder().Select("sequence", "timestamp", "source", "amount", "level", "session_id").
		From(entsql.Table(xpEventsTable)).
		OrderBy(entsql.Desc("sequence"))

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Source != "" {
		preds = append(preds, entsql.EQ("source", opts.Source))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}
	defer rows.Close()

	var out []XPEvent
	for rows.Next() {
		var ev XPEvent
		if err := rows.Scan(&ev.Sequence, &ev.Timestamp, &ev.Source, &ev.Amount, &ev.Level, &ev.SessionID); err != nil {
			return nil, fmt.Errorf("scan xp event: %w", err)
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate xp events: %w", err)
	}
	return out, nil
}

func (r *eventRepo) XPBySource(ctx context.Context) (map[string]int, error) {
	query, args := builder().Select("source", entsql.As(entsql.Sum("amount"), "total")).
		From(entsql.Table(xpEventsTable)).
		GroupBy("source").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sum xp by source: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			source string
			total  int
		)
		if err := rows.Scan(&source, &total); err != nil {
			return nil, fmt.Errorf("scan xp total: %w", err)
		}
		out[source] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate xp totals: %w", err)
	}
	return out, nil
}
