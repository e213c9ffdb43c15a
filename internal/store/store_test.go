package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func countRows(t *testing.T, s *Store, table string) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM " + table).Scan(&n); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	for _, table := range []string{documentsTable, snapshotsTable, xpEventsTable} {
		var name string
		err := db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Fatalf("query sqlite_master for %s: %v", table, err)
		}
		if name != table {
			t.Errorf("table name = %q, want %q", name, table)
		}
	}
}

func TestKV(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get missing: err = %v, want ErrNotFound", err)
	}

	if err := s.Put(ctx, "doc", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "doc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"a":1}` {
		t.Errorf("get = %s", got)
	}

	// Put replaces.
	if err := s.Put(ctx, "doc", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("put again: %v", err)
	}
	got, _ = s.Get(ctx, "doc")
	if string(got) != `{"a":2}` {
		t.Errorf("get after replace = %s", got)
	}
	if n := countRows(t, s, documentsTable); n != 1 {
		t.Errorf("documents = %d, want 1", n)
	}

	if err := s.Delete(ctx, "doc"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "doc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get after delete: err = %v", err)
	}
	if err := s.Delete(ctx, "doc"); err != nil {
		t.Errorf("delete missing: %v", err)
	}
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data:      []byte(`{"version":1}`),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if string(snap.Data) != `{"version":1}` {
		t.Errorf("data = %s", snap.Data)
	}
	if !snap.Timestamp.Equal(now) {
		t.Errorf("timestamp = %v, want %v", snap.Timestamp, now)
	}
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      []byte(fmt.Sprintf(`{"n":%d}`, i+1)),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if string(snap.Data) != `{"n":3}` {
		t.Errorf("data = %s", snap.Data)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      []byte(`{}`),
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, snapshotsTable); n != 5 {
		t.Errorf("remaining snapshots = %d, want 5", n)
	}

	// Latest should still be sequence 7.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 7 {
		t.Errorf("latest sequence = %d, want 7", snap.Sequence)
	}
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{Sequence: int64(i + 1), Timestamp: time.Now(), Data: []byte(`{}`)})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	// Prune with keep=5 should be a no-op.
	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	if n := countRows(t, s, snapshotsTable); n != 2 {
		t.Errorf("remaining snapshots = %d, want 2", n)
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}

	cur, err := sc.Current(ctx)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur != 5 {
		t.Errorf("current = %d, want 5", cur)
	}
}

func TestXPEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	events := []XPEventData{
		{Timestamp: base, Source: "quiz", Amount: 15, Level: 1, SessionID: "s1"},
		{Timestamp: base.Add(time.Minute), Source: "quiz", Amount: 25, Level: 1, SessionID: "s1"},
		{Timestamp: base.Add(2 * time.Minute), Source: "secret", Amount: 100, Level: 2},
		{Timestamp: base.Add(3 * time.Minute), Source: "time", Amount: 4, Level: 2},
	}
	for i, ev := range events {
		seq, err := repo.AppendXPEvent(ctx, ev)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if seq != int64(i+1) {
			t.Errorf("append %d: seq = %d, want %d", i, seq, i+1)
		}
	}

	last, err := repo.LastSequence(ctx)
	if err != nil {
		t.Fatalf("last sequence: %v", err)
	}
	if last != 4 {
		t.Errorf("last sequence = %d, want 4", last)
	}

	all, err := repo.QueryXPEvents(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	if all[0].Sequence != 4 || all[3].Sequence != 1 {
		t.Errorf("expected newest first, got %d..%d", all[0].Sequence, all[3].Sequence)
	}
	if all[3].SessionID != "s1" || all[3].Amount != 15 {
		t.Errorf("oldest event = %+v", all[3])
	}

	tests := []struct {
		name string
		opts QueryOpts
		want []int64
	}{
		{"limit", QueryOpts{Limit: 2}, []int64{4, 3}},
		{"after", QueryOpts{After: 2}, []int64{4, 3}},
		{"before", QueryOpts{Before: 3}, []int64{2, 1}},
		{"source", QueryOpts{Source: "quiz"}, []int64{2, 1}},
		{"source and limit", QueryOpts{Source: "quiz", Limit: 1}, []int64{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.QueryXPEvents(ctx, tt.opts)
			if err != nil {
				t.Fatalf("query: %v", err)
			}
			var seqs []int64
			for _, ev := range got {
				seqs = append(seqs, ev.Sequence)
			}
			if fmt.Sprint(seqs) != fmt.Sprint(tt.want) {
				t.Errorf("sequences = %v, want %v", seqs, tt.want)
			}
		})
	}

	totals, err := repo.XPBySource(ctx)
	if err != nil {
		t.Fatalf("xp by source: %v", err)
	}
	want := map[string]int{"quiz": 40, "secret": 100, "time": 4}
	if fmt.Sprint(totals) != fmt.Sprint(want) {
		t.Errorf("totals = %v, want %v", totals, want)
	}
}
