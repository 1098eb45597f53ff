// Package storage defines the narrow object-store contract the
// pipeline's I/O boundary is written against. Implementations live in
// internal/iostorage (local filesystem, AWS S3, MinIO).
package storage

import (
	"context"
	"io"
)

// ObjectStore is the only interface through which the Extractor reads
// raw files and the Loader publishes tables. Keys use forward slashes
// regardless of backend.
type ObjectStore interface {
	// List returns all object keys under prefix, recursively,
	// in lexicographically sorted order.
	List(ctx context.Context, prefix string) ([]string, error)

	// Get opens the object at key for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Put writes the object at key. size may be -1 when unknown.
	Put(ctx context.Context, key string, r io.Reader, size int64) error

	// Remove deletes all objects under prefix. Removing a prefix that
	// holds no objects is not an error.
	Remove(ctx context.Context, prefix string) error
}
