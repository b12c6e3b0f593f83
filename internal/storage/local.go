package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localStorage implements Storage on the local filesystem. All keys resolve
// under a single configured root directory.
type localStorage struct {
	root string
}

// NewLocal creates a local-disk Storage rooted at dir. The root directory is
// created if it does not exist.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &localStorage{root: dir}, nil
}

// validateKey rejects keys that could escape the storage root. Keys are
// service-generated, so a failure here indicates a programming error, but the
// guard keeps the root contained even if a caller misbehaves.
func (l *localStorage) validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("storage key is empty")
	}
	if strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return fmt.Errorf("storage key %q is not a relative slash path", key)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return fmt.Errorf("storage key %q escapes the storage root", key)
		}
	}
	return nil
}

func (l *localStorage) abs(key string) string {
	return filepath.Join(l.root, filepath.FromSlash(key))
}

// Put writes content to a temporary file in the destination directory and
// renames it into place, so a crash mid-write never leaves a partial file
// under the final key.
func (l *localStorage) Put(ctx context.Context, key string, r io.Reader) (int64, error) {
	if err := l.validateKey(key); err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	dst := l.abs(key)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return 0, fmt.Errorf("create directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	written, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("write content: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("rename into place: %w", err)
	}
	return written, nil
}

// Open returns a streaming reader for the stored content.
func (l *localStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := l.validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(l.abs(key))
	if err != nil {
		return nil, fmt.Errorf("open stored file: %w", err)
	}
	return f, nil
}

// Remove deletes the stored content. Removing an absent key is not an error.
func (l *localStorage) Remove(ctx context.Context, key string) error {
	if err := l.validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(l.abs(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove stored file: %w", err)
	}
	return nil
}
