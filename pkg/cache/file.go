package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache stores rendered images on disk for single-instance usage.
//
// Each entry is a pair of files in a hash-sharded directory: the PNG
// payload stored verbatim under <hash>.png, so the cache directory can
// be browsed with any image viewer, and a <hash>.json sidecar holding
// the expiry. An entry without a sidecar never expires.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// entryMeta is the sidecar contents.
type entryMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a rendered image from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	base := c.entryPath(key)

	data, err := os.ReadFile(base + ".png")
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	metaData, err := os.ReadFile(base + ".json")
	if err == nil {
		var meta entryMeta
		if json.Unmarshal(metaData, &meta) != nil {
			// Corrupt sidecar - drop the entry and treat as miss
			c.removeEntry(base)
			return nil, false, nil
		}
		if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
			c.removeEntry(base)
			return nil, false, nil
		}
	}

	return data, true, nil
}

// Set stores a rendered image with the given TTL.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	base := c.entryPath(key)
	if err := os.MkdirAll(filepath.Dir(base), 0755); err != nil {
		return err
	}

	var meta entryMeta
	if ttl > 0 {
		meta.ExpiresAt = time.Now().Add(ttl)
	}
	metaData, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	// Sidecar first: a payload without expiry metadata is served
	// forever, while a sidecar without payload is just a miss.
	if err := os.WriteFile(base+".json", metaData, 0644); err != nil {
		return err
	}
	return os.WriteFile(base+".png", data, 0644)
}

// Delete removes a cached image and its sidecar.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.removeEntry(c.entryPath(key))
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// entryPath converts a cache key to the entry's base path (without
// extension). The first two hash characters shard entries across
// subdirectories to avoid too many files in one dir.
func (c *FileCache) entryPath(key string) string {
	hash := Hash([]byte(key))
	return filepath.Join(c.dir, hash[:2], hash[2:])
}

func (c *FileCache) removeEntry(base string) {
	_ = os.Remove(base + ".png")
	_ = os.Remove(base + ".json")
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
