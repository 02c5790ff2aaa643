// Package store provides the flat key-value namespace orders live in.
// Values are opaque serialized strings; the caller owns encoding. Every
// write is a full overwrite of the value at a key.
package store

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get for an absent key.
var ErrKeyNotFound = errors.New("key not found")

type KV interface {
	Set(ctx context.Context, key, value string) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, key string) error
	Keys(ctx context.Context, prefix string) ([]string, error)
	// MGet returns one entry per requested key; absent keys yield nil.
	MGet(ctx context.Context, keys ...string) ([]*string, error)
}
