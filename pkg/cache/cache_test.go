package cache

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("got %q, want %q", data, "value")
	}

	// Mutating the returned slice must not affect the cached copy.
	data[0] = 'X'
	data2, _, _ := c.Get(ctx, "key")
	if string(data2) != "value" {
		t.Errorf("cached value was mutated: %q", data2)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected miss after Delete")
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected expired entry to be a miss")
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "value" {
		t.Errorf("got %q, want %q", data, "value")
	}

	// Missing key is a miss, not an error
	if _, hit, err := c.Get(ctx, "other"); err != nil || hit {
		t.Errorf("missing key: hit=%v err=%v", hit, err)
	}

	// Delete of missing key is not an error
	if err := c.Delete(ctx, "other"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expected expired entry to be a miss")
	}
}

func TestFileCacheStoresPayloadRaw(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	payload := []byte("\x89PNG\r\n\x1a\nbinary artifact bytes")
	if err := c.Set(ctx, "artifact", payload, time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// The payload file must hold the exact bytes, uninflated by any
	// envelope encoding.
	var found bool
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.HasSuffix(path, ".bin") {
			return err
		}
		found = true
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if !bytes.Equal(data, payload) {
			t.Errorf("on-disk payload = %q, want %q", data, payload)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir error: %v", err)
	}
	if !found {
		t.Fatal("no payload file written")
	}
}

func TestFileCacheUnlimitedTTL(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("keep"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit {
		t.Fatalf("Get: hit=%v err=%v, want hit", hit, err)
	}
	if string(data) != "keep" {
		t.Errorf("got %q, want %q", data, "keep")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// SceneKey
	sk := k.SceneKey("abc123")
	if sk != "scene:abc123" {
		t.Errorf("SceneKey unexpected: %s", sk)
	}

	// ArtifactKey should include options in hash
	ak1 := k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "svg", Width: 800})
	ak2 := k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "png", Width: 800})
	if ak1 == ak2 {
		t.Error("Different formats should produce different keys")
	}

	ak3 := k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "gif", Frames: 10})
	ak4 := k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "gif", Frames: 20})
	if ak3 == ak4 {
		t.Error("Different frame counts should produce different keys")
	}

	// Same inputs produce the same key
	if k.ArtifactKey("abc123", ArtifactKeyOpts{Format: "svg", Width: 800}) != ak1 {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:123:")

	// All keys should be prefixed
	sk := scoped.SceneKey("abc")
	if sk != "user:123:scene:abc" {
		t.Errorf("ScopedKeyer SceneKey unexpected: %s", sk)
	}

	ak := scoped.ArtifactKey("abc", ArtifactKeyOpts{Format: "png"})
	if len(ak) < 9 || ak[:9] != "user:123:" {
		t.Errorf("ScopedKeyer ArtifactKey should be prefixed: %s", ak)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.SceneKey("abc")
	if key != "prefix:scene:abc" {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
