package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/layercake/pkg/errors"
	"github.com/matzehuels/layercake/pkg/observability"
)

// FileStore persists scenes as JSON files in a directory, one file per
// scene. Suitable for single-host deployments and CLI usage.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a filesystem scene store rooted at dir.
// The directory is created if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) (string, error) {
	// Scene ids become file names; reject anything that could escape the dir.
	if err := errors.ValidateFileName(id); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, id+".json"), nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Scene, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()

	if os.IsNotExist(err) {
		observability.Store().OnStoreGet(ctx, "filesystem", id, false)
		return nil, ErrSceneNotFound
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, "filesystem", "get", err)
		return nil, fmt.Errorf("read scene file: %w", err)
	}

	var scene Scene
	if err := json.Unmarshal(data, &scene); err != nil {
		observability.Store().OnStoreError(ctx, "filesystem", "get", err)
		return nil, fmt.Errorf("decode scene file: %w", err)
	}
	observability.Store().OnStoreGet(ctx, "filesystem", id, true)
	return &scene, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Scene, error) {
	s.mu.RLock()
	entries, err := os.ReadDir(s.dir)
	s.mu.RUnlock()
	if err != nil {
		observability.Store().OnStoreError(ctx, "filesystem", "list", err)
		return nil, fmt.Errorf("list store dir: %w", err)
	}

	var out []*Scene
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		scene, err := s.Get(ctx, id)
		if err != nil {
			// File may have been deleted between ReadDir and Get.
			if err == ErrSceneNotFound {
				continue
			}
			return nil, err
		}
		out = append(out, scene)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *FileStore) Save(ctx context.Context, scene *Scene) error {
	stamp(scene, uuid.NewString)

	path, err := s.path(scene.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(scene, "", "  ")
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}

	s.mu.Lock()
	err = os.WriteFile(path, data, 0o644)
	s.mu.Unlock()
	if err != nil {
		observability.Store().OnStoreError(ctx, "filesystem", "put", err)
		return fmt.Errorf("write scene file: %w", err)
	}
	observability.Store().OnStorePut(ctx, "filesystem", scene.ID, len(scene.Document))
	return nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = os.Remove(path)
	s.mu.Unlock()

	if os.IsNotExist(err) {
		return ErrSceneNotFound
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, "filesystem", "delete", err)
		return fmt.Errorf("delete scene file: %w", err)
	}
	observability.Store().OnStoreDelete(ctx, "filesystem", id)
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
