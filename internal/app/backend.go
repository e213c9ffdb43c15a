package app

import (
	"context"
	"fmt"

	"github.com/abhisek/tickerquiz/internal/config"
	"github.com/abhisek/tickerquiz/internal/store"
	"github.com/abhisek/tickerquiz/internal/store/redisstore"
)

// OpenBackend opens the storage backend selected by cfg. dbPath overrides
// the configured SQLite path when non-empty.
func OpenBackend(ctx context.Context, cfg *config.Config, dbPath string) (store.Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendRedis:
		s, err := redisstore.Open(ctx, cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("open redis store: %w", err)
		}
		return s, nil

	default:
		path, err := resolveSQLitePath(cfg, dbPath)
		if err != nil {
			return nil, fmt.Errorf("resolve DB path: %w", err)
		}
		s, err := store.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		return s, nil
	}
}

// resolveSQLitePath applies --db, then storage.path (which already carries
// TICKERQUIZ_DB), then the XDG default.
func resolveSQLitePath(cfg *config.Config, dbPath string) (string, error) {
	for _, p := range []string{dbPath, cfg.Storage.Path} {
		if p != "" {
			return p, store.EnsureDir(p)
		}
	}
	return store.DefaultDBPath()
}
