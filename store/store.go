// Package store provides the opaque key-value storage used for learner
// profiles, settings and statistics.
//
// Values are raw bytes; GetJSON and SetJSON layer JSON encoding on top.
// Three backends implement KV: an in-memory map, a SQLite table
// (modernc.org/sqlite, no cgo) and Redis. Open picks one from a Config.
package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrNotFound is returned by Get for a missing key.
	ErrNotFound = errors.New("store: key not found")
	// ErrClosed is returned by every operation on a closed store.
	ErrClosed = errors.New("store: closed")
)

// KV is a flat key-value store. Implementations are safe for concurrent use.
type KV interface {
	// Get returns the value of key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys returns all keys starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// DeletePrefix removes all keys starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// GetJSON decodes the value of key into a T. A missing key yields def.
func GetJSON[T any](ctx context.Context, kv KV, key string, def T) (T, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return def, errors.Wrapf(err, "decode %q", key)
	}
	return v, nil
}

// SetJSON stores v under key as JSON.
func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "encode %q", key)
	}
	return kv.Set(ctx, key, data)
}

// prefixed namespaces every key of an underlying KV.
type prefixed struct {
	kv     KV
	prefix string
}

// WithPrefix returns a KV that stores every key under prefix. Keys returns
// keys with the prefix removed, and closing the result closes kv.
func WithPrefix(kv KV, prefix string) KV {
	if prefix == "" {
		return kv
	}
	return &prefixed{kv: kv, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, value []byte) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.kv.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := p.kv.Keys(ctx, p.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i, k := range keys {
		keys[i] = strings.TrimPrefix(k, p.prefix)
	}
	return keys, nil
}

func (p *prefixed) DeletePrefix(ctx context.Context, prefix string) error {
	return p.kv.DeletePrefix(ctx, p.prefix+prefix)
}

func (p *prefixed) Close() error {
	return p.kv.Close()
}
