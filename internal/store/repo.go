package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by KV.Get when the key does not exist.
var ErrNotFound = errors.New("store: not found")

// KV is a durable string-keyed document store.
type KV interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Source string    // exact source match ("" = any)
}

// Snapshot is a point-in-time copy of the encoded ledger.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      []byte
}

// SnapshotRepo manages ledger snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// XPEventData captures one XP award.
type XPEventData struct {
	Timestamp time.Time
	Source    string
	Amount    int
	Level     int
	SessionID string
}

// XPEvent is a stored XP award with its global sequence number.
type XPEvent struct {
	Sequence int64
	XPEventData
}

// EventRepo provides append and query access to XP events.
type EventRepo interface {
	// AppendXPEvent records an award and returns its sequence number.
	AppendXPEvent(ctx context.Context, data XPEventData) (int64, error)

	// QueryXPEvents returns events matching opts, newest first.
	QueryXPEvents(ctx context.Context, opts QueryOpts) ([]XPEvent, error)

	// XPBySource returns the summed XP per source.
	XPBySource(ctx context.Context) (map[string]int, error)

	// LastSequence returns the most recently assigned sequence (0 if none).
	LastSequence(ctx context.Context) (int64, error)
}

// Backend is a complete persistence backend.
type Backend interface {
	KV
	SnapshotRepo() SnapshotRepo
	EventRepo() EventRepo
	Close() error
}
