// Package redisstore is a Redis implementation of store.Backend for setups
// that keep progression state on a shared server.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/abhisek/tickerquiz/internal/store"
)

// DefaultPrefix namespaces every key the store writes.
const DefaultPrefix = "tickerquiz:"

// DefaultEventCap bounds the XP event list.
const DefaultEventCap = 1000

// Store keeps documents as plain keys and snapshots and events in capped
// lists.
type Store struct {
	client   *redis.Client
	prefix   string
	eventCap int64
}

var _ store.Backend = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(p string) Option { return func(s *Store) { s.prefix = p } }

// WithEventCap overrides DefaultEventCap.
func WithEventCap(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.eventCap = int64(n)
		}
	}
}

// New wraps an existing client.
func New(client *redis.Client, opts ...Option) *Store {
	s := &Store{client: client, prefix: DefaultPrefix, eventCap: DefaultEventCap}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Open connects to addr and verifies the connection with PING.
func Open(ctx context.Context, addr, password string, db int, opts ...Option) (*Store, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return New(client, opts...), nil
}

// Close closes the client.
func (s *Store) Close() error { return s.client.Close() }

func (s *Store) key(parts ...string) string {
	k := s.prefix
	for i, p := range parts {
		if i > 0 {
			k += ":"
		}
		k += p
	}
	return k
}

// Get returns the document stored under key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.key("doc", key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return v, nil
}

// Put stores the document under key without expiry.
func (s *Store) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key("doc", key), value, 0).Err(); err != nil {
		return fmt.Errorf("put %q: %w", key, err)
	}
	return nil
}

// Delete removes the document under key.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key("doc", key)).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

// SnapshotRepo returns the snapshot list view of the store.
func (s *Store) SnapshotRepo() store.SnapshotRepo { return &snapshotRepo{s} }

// EventRepo returns the XP event view of the store.
func (s *Store) EventRepo() store.EventRepo { return &eventRepo{s} }

type snapshotRecord struct {
	ID        int       `json:"id"`
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	Data      []byte    `json:"data"`
}

type snapshotRepo struct{ s *Store }

func (r *snapshotRepo) Save(ctx context.Context, snap *store.Snapshot) error {
	id, err := r.s.client.Incr(ctx, r.s.key("snapshot_id")).Result()
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	raw, err := json.Marshal(snapshotRecord{
		ID:        int(id),
		Sequence:  snap.Sequence,
		Timestamp: snap.Timestamp.UTC(),
		Data:      snap.Data,
	})
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := r.s.client.LPush(ctx, r.s.key("snapshots"), raw).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	snap.ID = int(id)
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*store.Snapshot, error) {
	raw, err := r.s.client.LIndex(ctx, r.s.key("snapshots"), 0).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	var rec snapshotRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &store.Snapshot{ID: rec.ID, Sequence: rec.Sequence, Timestamp: rec.Timestamp, Data: rec.Data}, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep < 1 {
		return r.s.client.Del(ctx, r.s.key("snapshots")).Err()
	}
	if err := r.s.client.LTrim(ctx, r.s.key("snapshots"), 0, int64(keep-1)).Err(); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

type eventRecord struct {
	Sequence  int64     `json:"sequence"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Amount    int       `json:"amount"`
	Level     int       `json:"level"`
	SessionID string    `json:"session_id,omitempty"`
}

type eventRepo struct{ s *Store }

func (r *eventRepo) AppendXPEvent(ctx context.Context, data store.XPEventData) (int64, error) {
	seq, err := r.s.client.Incr(ctx, r.s.key("sequence")).Result()
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	raw, err := json.Marshal(eventRecord{
		Sequence:  seq,
		Timestamp: ts.UTC(),
		Source:    data.Source,
		Amount:    data.Amount,
		Level:     data.Level,
		SessionID: data.SessionID,
	})
	if err != nil {
		return 0, fmt.Errorf("encode xp event: %w", err)
	}

	_, err = r.s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LPush(ctx, r.s.key("xp_events"), raw)
		p.LTrim(ctx, r.s.key("xp_events"), 0, r.s.eventCap-1)
		p.HIncrBy(ctx, r.s.key("xp_by_source"), data.Source, int64(data.Amount))
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("append xp event: %w", err)
	}
	return seq, nil
}

func (r *eventRepo) QueryXPEvents(ctx context.Context, opts store.QueryOpts) ([]store.XPEvent, error) {
	raws, err := r.s.client.LRange(ctx, r.s.key("xp_events"), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("query xp events: %w", err)
	}

	var out []store.XPEvent
	for _, raw := range raws {
		var rec eventRecord
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			return nil, fmt.Errorf("decode xp event: %w", err)
		}
		if !matches(rec, opts) {
			continue
		}
		out = append(out, store.XPEvent{
			Sequence: rec.Sequence,
			XPEventData: store.XPEventData{
				Timestamp: rec.Timestamp,
				Source:    rec.Source,
				Amount:    rec.Amount,
				Level:     rec.Level,
				SessionID: rec.SessionID,
			},
		})
		if opts.Limit > 0 && len(out) == opts.Limit {
			break
		}
	}
	return out, nil
}

func matches(rec eventRecord, opts store.QueryOpts) bool {
	switch {
	case opts.After > 0 && rec.Sequence <= opts.After:
		return false
	case opts.Before > 0 && rec.Sequence >= opts.Before:
		return false
	case !opts.From.IsZero() && rec.Timestamp.Before(opts.From):
		return false
	case !opts.To.IsZero() && rec.Timestamp.After(opts.To):
		return false
	case opts.Source != "" && rec.Source != opts.Source:
		return false
	}
	return true
}

// XPBySource returns lifetime totals; they survive event list trimming.
func (r *eventRepo) XPBySource(ctx context.Context) (map[string]int, error) {
	raw, err := r.s.client.HGetAll(ctx, r.s.key("xp_by_source")).Result()
	if err != nil {
		return nil, fmt.Errorf("sum xp by source: %w", err)
	}
	out := make(map[string]int, len(raw))
	for source, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse total for %q: %w", source, err)
		}
		out[source] = n
	}
	return out, nil
}

func (r *eventRepo) LastSequence(ctx context.Context) (int64, error) {
	n, err := r.s.client.Get(ctx, r.s.key("sequence")).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("current sequence: %w", err)
	}
	return n, nil
}
