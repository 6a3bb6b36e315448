package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache persists cache entries on disk, surviving CLI invocations.
//
// Artifacts are mostly encoded images, so payloads are written raw; a
// JSON sidecar carries the expiry when the entry has one. Entries fan
// out into two-character subdirectories derived from the key hash.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache rooted at dir, creating it if
// needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileMeta is the sidecar format. Entries without a sidecar never
// expire.
type fileMeta struct {
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value. Expired or unreadable entries are removed and
// reported as misses.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	dataPath, metaPath := c.paths(key)

	data, err := os.ReadFile(dataPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	raw, err := os.ReadFile(metaPath)
	if err == nil {
		var meta fileMeta
		if err := json.Unmarshal(raw, &meta); err != nil {
			c.remove(dataPath, metaPath)
			return nil, false, nil
		}
		if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
			c.remove(dataPath, metaPath)
			return nil, false, nil
		}
	}

	return data, true, nil
}

// Set stores a value. A zero ttl means the entry does not expire and
// no sidecar is written.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	dataPath, metaPath := c.paths(key)
	if err := os.MkdirAll(filepath.Dir(dataPath), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(dataPath, data, 0o644); err != nil {
		return err
	}

	if ttl <= 0 {
		// Drop any sidecar left by an earlier expiring entry.
		_ = os.Remove(metaPath)
		return nil
	}

	raw, err := json.Marshal(fileMeta{ExpiresAt: time.Now().Add(ttl)})
	if err != nil {
		return err
	}
	return os.WriteFile(metaPath, raw, 0o644)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	dataPath, metaPath := c.paths(key)
	_ = os.Remove(metaPath)
	err := os.Remove(dataPath)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) remove(dataPath, metaPath string) {
	_ = os.Remove(dataPath)
	_ = os.Remove(metaPath)
}

// paths derives the payload and sidecar locations for a key. The first
// two hash characters pick a subdirectory to keep directories small.
func (c *FileCache) paths(key string) (dataPath, metaPath string) {
	hash := Hash([]byte(key))
	base := filepath.Join(c.dir, hash[:2], hash[2:])
	return base + ".bin", base + ".meta"
}

var _ Cache = (*FileCache)(nil)
