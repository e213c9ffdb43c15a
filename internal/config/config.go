package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the application configuration.
type Config struct {
	Storage      StorageConfig      `yaml:"storage"`
	Logging      LoggingConfig      `yaml:"logging"`
	Quiz         QuizConfig         `yaml:"quiz"`
	Entitlements EntitlementsConfig `yaml:"entitlements"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	Backend       string `yaml:"backend"`
	Path          string `yaml:"path"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	SnapshotKeep  int    `yaml:"snapshot_keep"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// QuizConfig configures session composition.
type QuizConfig struct {
	QuestionCount int    `yaml:"question_count"`
	BankPath      string `yaml:"bank_path"`
}

// EntitlementsConfig stands in for the purchase state.
type EntitlementsConfig struct {
	Premium  bool `yaml:"premium"`
	Lifetime bool `yaml:"lifetime"`
}

// Load reads configuration from path (or the default location when empty),
// applies environment overrides and validates the result. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = configPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend:      BackendSQLite,
			RedisAddr:    "localhost:6379",
			SnapshotKeep: 10,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Quiz: QuizConfig{
			QuestionCount: 5,
		},
	}
}

// configPath resolves the config file location:
// 1. TICKERQUIZ_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/tickerquiz/config.yaml
// 3. ~/.config/tickerquiz/config.yaml
func configPath() string {
	if p := os.Getenv("TICKERQUIZ_CONFIG"); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tickerquiz", "config.yaml")
}

// applyEnv overrides configuration with environment variables.
func (c *Config) applyEnv() {
	if p := os.Getenv("TICKERQUIZ_DB"); p != "" {
		c.Storage.Path = p
	}
	if b := os.Getenv("TICKERQUIZ_BACKEND"); b != "" {
		c.Storage.Backend = strings.ToLower(b)
	}
	if addr := os.Getenv("TICKERQUIZ_REDIS_ADDR"); addr != "" {
		c.Storage.RedisAddr = addr
	}
	if pw := os.Getenv("TICKERQUIZ_REDIS_PASSWORD"); pw != "" {
		c.Storage.RedisPassword = pw
	}
	if level := os.Getenv("TICKERQUIZ_LOG_LEVEL"); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}
	if format := os.Getenv("TICKERQUIZ_LOG_FORMAT"); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}
	if v, ok := envBool("TICKERQUIZ_PREMIUM"); ok {
		c.Entitlements.Premium = v
	}
	if v, ok := envBool("TICKERQUIZ_LIFETIME"); ok {
		c.Entitlements.Lifetime = v
	}
}

func envBool(name string) (bool, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return false, false
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, false
	}
	return v, true
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("redis backend requires storage.redis_addr")
		}
		if c.Storage.RedisDB < 0 {
			return fmt.Errorf("invalid redis db: %d", c.Storage.RedisDB)
		}
	default:
		return fmt.Errorf("unknown storage backend: %q", c.Storage.Backend)
	}
	if c.Storage.SnapshotKeep < 1 {
		return fmt.Errorf("storage.snapshot_keep must be >= 1, got %d", c.Storage.SnapshotKeep)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format: %q", c.Logging.Format)
	}

	if c.Quiz.QuestionCount < 1 || c.Quiz.QuestionCount > 20 {
		return fmt.Errorf("quiz.question_count must be in [1, 20], got %d", c.Quiz.QuestionCount)
	}
	return nil
}
