package store

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is a durable key-value store used to persist serialized carts
// across sessions.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
