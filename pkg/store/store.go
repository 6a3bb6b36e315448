// Package store persists scene documents.
//
// The Store interface abstracts over backends so the HTTP API and CLI can
// share one persistence contract:
//   - memory: in-process, for development and tests
//   - filesystem: JSON files in a directory, for single-host deployments
//   - sqlite: embedded database, for single-host deployments with queries
//   - mongo: document database, for multi-instance deployments
//
// Scenes are stored as opaque JSON documents plus metadata. The store does
// not validate document contents; callers parse with pkg/sceneio.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrSceneNotFound is returned when a requested scene does not exist.
var ErrSceneNotFound = errors.New("scene not found")

// Scene is a stored scene document with metadata.
type Scene struct {
	ID        string          `json:"id" bson:"_id"`
	Name      string          `json:"name,omitempty" bson:"name,omitempty"`
	Document  json.RawMessage `json:"document" bson:"document"`
	CreatedAt time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time       `json:"updated_at" bson:"updated_at"`
}

// Store is the persistence contract for scene documents.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a scene by id. Returns ErrSceneNotFound if absent.
	Get(ctx context.Context, id string) (*Scene, error)

	// List returns all stored scenes, newest first.
	List(ctx context.Context) ([]*Scene, error)

	// Save upserts a scene. An empty ID is assigned a new one; the
	// assigned ID is written back to the passed Scene. CreatedAt is set
	// on first save, UpdatedAt on every save.
	Save(ctx context.Context, scene *Scene) error

	// Delete removes a scene. Returns ErrSceneNotFound if absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// stamp fills in ID and timestamps before a save.
func stamp(s *Scene, newID func() string) {
	now := time.Now().UTC()
	if s.ID == "" {
		s.ID = newID()
		s.CreatedAt = now
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now
}
