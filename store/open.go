package store

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/pkg/errors"
)

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// DefaultKeyPrefix namespaces every key written through Open.
const DefaultKeyPrefix = "factdrill_"

// Config selects and configures a backend.
type Config struct {
	Backend   string      `mapstructure:"backend"`    // empty → sqlite
	DataDir   string      `mapstructure:"data_dir"`   // sqlite: directory of factdrill.db
	DSN       string      `mapstructure:"dsn"`        // sqlite: explicit database path, overrides DataDir
	KeyPrefix string      `mapstructure:"key_prefix"` // empty → DefaultKeyPrefix
	Redis     RedisConfig `mapstructure:"redis"`
}

// Open returns the configured backend wrapped with the key prefix.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (KV, error) {
	if logger == nil {
		logger = slog.Default()
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}

	var (
		kv  KV
		err error
	)
	switch cfg.Backend {
	case BackendMemory:
		kv = NewMemory()
	case "", BackendSQLite:
		path := cfg.DSN
		if path == "" {
			path = filepath.Join(cfg.DataDir, "factdrill.db")
		}
		kv, err = OpenSQLite(ctx, path)
		logger = logger.With("path", path)
	case BackendRedis:
		rc := cfg.Redis
		if rc.Addr == "" {
			rc.Addr = DefaultRedisConfig().Addr
		}
		kv, err = NewRedis(ctx, rc)
		logger = logger.With("addr", rc.Addr, "db", rc.DB)
	default:
		return nil, errors.Errorf("store: unknown backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", "backend", cfg.Backend, "prefix", prefix)
	return WithPrefix(kv, prefix), nil
}
