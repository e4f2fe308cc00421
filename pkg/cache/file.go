package cache

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// FileCache stores canonical forms on disk for CLI usage. Each entry is
// a plain file whose first line carries the expiry as unix nanoseconds
// (0 for no expiry) followed by the raw value. Canonical forms are
// text, so entries stay inspectable with ordinary tools.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating the
// directory if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value, removing the entry if it has expired or cannot
// be parsed.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.entryPath(key)

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	header, value, ok := bytes.Cut(raw, []byte{'\n'})
	if !ok {
		_ = os.Remove(path)
		return nil, false, nil
	}
	expiry, err := strconv.ParseInt(string(header), 10, 64)
	if err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if expiry != 0 && time.Now().UnixNano() > expiry {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return value, true, nil
}

// Set stores a value. A zero TTL stores without expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	var expiry int64
	if ttl != 0 {
		expiry = time.Now().Add(ttl).UnixNano()
	}

	path := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	entry := append([]byte(strconv.FormatInt(expiry, 10)+"\n"), data...)
	return os.WriteFile(path, entry, 0o644)
}

// Delete removes a value. Deleting an absent key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.entryPath(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op for the file backend.
func (c *FileCache) Close() error {
	return nil
}

// entryPath maps a key to its file. The first two hash characters form
// a subdirectory to keep fan-out bounded.
func (c *FileCache) entryPath(key string) string {
	sum := Hash([]byte(key))
	return filepath.Join(c.dir, sum[:2], sum[2:])
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
