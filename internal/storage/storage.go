package storage

import (
	"context"
	"io"
)

// Package storage contains the file storage abstraction used by the document
// service. Keys are relative, forward-slash separated paths; they are always
// generated by the service, never derived from user input.

// Storage is the physical document store. Implementations must be safe for
// concurrent use by multiple goroutines.
type Storage interface {
	// Put writes the reader's content under the given key, creating any
	// missing directory segments. The write is atomic: a partially written
	// file is never observable under the final key. Returns bytes written.
	Put(ctx context.Context, key string, r io.Reader) (int64, error)

	// Open returns a streaming reader for the content stored under key.
	// A key with no backing file fails with an error satisfying
	// errors.Is(err, fs.ErrNotExist).
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Remove deletes the content stored under key. Used only as best-effort
	// cleanup when a metadata insert loses the uniqueness race.
	Remove(ctx context.Context, key string) error
}
