package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/layercake/pkg/observability"
)

// MemoryStore is an in-process store for development and tests.
type MemoryStore struct {
	mu     sync.RWMutex
	scenes map[string]*Scene
}

// NewMemoryStore creates an in-memory scene store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{scenes: make(map[string]*Scene)}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Scene, error) {
	s.mu.RLock()
	scene, ok := s.scenes[id]
	s.mu.RUnlock()

	observability.Store().OnStoreGet(ctx, "memory", id, ok)
	if !ok {
		return nil, ErrSceneNotFound
	}
	out := *scene
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Scene, error) {
	s.mu.RLock()
	out := make([]*Scene, 0, len(s.scenes))
	for _, scene := range s.scenes {
		copied := *scene
		out = append(out, &copied)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, scene *Scene) error {
	stamp(scene, uuid.NewString)

	s.mu.Lock()
	stored := *scene
	s.scenes[scene.ID] = &stored
	s.mu.Unlock()

	observability.Store().OnStorePut(ctx, "memory", scene.ID, len(scene.Document))
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.scenes[id]
	delete(s.scenes, id)
	s.mu.Unlock()

	if !ok {
		return ErrSceneNotFound
	}
	observability.Store().OnStoreDelete(ctx, "memory", id)
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.scenes = make(map[string]*Scene)
	s.mu.Unlock()
	return nil
}

var _ Store = (*MemoryStore)(nil)
