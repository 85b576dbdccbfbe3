package store

import (
	"context"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// DefaultRedisConfig returns a config for a local Redis on the default port.
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{Addr: "localhost:6379"}
}

// scanBatch is the COUNT hint passed to SCAN.
const scanBatch = 256

// Redis is a KV backed by plain Redis string keys.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrapf(err, "connect to redis %s", cfg.Addr)
	}
	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, r.wrap(err, "get %q", key)
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return r.wrap(err, "set %q", key)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return r.wrap(err, "delete %q", key)
	}
	return nil
}

func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, globEscape(prefix)+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, r.wrap(err, "scan %q", prefix)
	}
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	keys, err := r.Keys(ctx, prefix)
	if err != nil || len(keys) == 0 {
		return err
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return r.wrap(err, "delete prefix %q", prefix)
	}
	return nil
}

func (r *Redis) Close() error {
	err := r.client.Close()
	if errors.Is(err, redis.ErrClosed) {
		return nil
	}
	return err
}

func (r *Redis) wrap(err error, format string, args ...any) error {
	if errors.Is(err, redis.ErrClosed) {
		return ErrClosed
	}
	return errors.Wrapf(err, format, args...)
}

// globEscape quotes the characters SCAN MATCH treats as patterns.
func globEscape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
