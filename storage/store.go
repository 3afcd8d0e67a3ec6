// Package storage persists the tracker's records in a key/value backend.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by Get when a key has never been set
var ErrNotFound = errors.New("record not found")

// Store defines the interface for key/value persistence.
// This allows swapping between a JSON file, SQLite, Redis or other backends.
// Values are JSON documents.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error

	// Lifecycle
	Close() error
}

// Backend names accepted by Open
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Options selects and configures a backend
type Options struct {
	Backend string
	// Path is the JSON file or SQLite database location
	Path string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open creates the backend named by opts.Backend (json when empty)
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(opts.Backend) {
	case "", BackendJSON:
		return NewJSONStore(opts.Path)
	case BackendSQLite:
		return NewSQLiteStore(opts.Path)
	case BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", opts.Backend)
	}
}
