// Package store is the persistence boundary: opaque structured values keyed
// by namespace and key. Callers sequence their own reads and writes; the only
// transactional guarantee is that SetBatch lands atomically.
package store

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Entry is one value in a batch write.
type Entry struct {
	Namespace string
	Key       string
	Value     any
}

type Store interface {
	// Get unmarshals the stored value into dest, or returns ErrKeyNotFound.
	Get(ctx context.Context, namespace, key string, dest any) error
	Set(ctx context.Context, namespace, key string, value any) error
	// SetBatch writes every entry or none of them.
	SetBatch(ctx context.Context, entries []Entry) error
	Delete(ctx context.Context, namespace, key string) error
}
