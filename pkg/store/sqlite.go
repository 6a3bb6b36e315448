package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/layercake/pkg/observability"
)

// SQLiteStore persists scenes in an embedded SQLite database.
// The modernc driver is pure Go, so no cgo toolchain is needed.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS scenes (
	id         TEXT PRIMARY KEY,
	name       TEXT,
	document   BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL,
	updated_at TIMESTAMP NOT NULL
);`

// NewSQLiteStore opens (or creates) a SQLite store at the given path.
// Use ":memory:" for an ephemeral database.
func NewSQLiteStore(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create scenes table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*Scene, error) {
	var scene Scene
	scene.ID = id
	err := s.db.QueryRowContext(ctx,
		"SELECT name, document, created_at, updated_at FROM scenes WHERE id = ?", id,
	).Scan(&scene.Name, &scene.Document, &scene.CreatedAt, &scene.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		observability.Store().OnStoreGet(ctx, "sqlite", id, false)
		return nil, ErrSceneNotFound
	}
	if err != nil {
		observability.Store().OnStoreError(ctx, "sqlite", "get", err)
		return nil, fmt.Errorf("query scene: %w", err)
	}
	observability.Store().OnStoreGet(ctx, "sqlite", id, true)
	return &scene, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]*Scene, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, document, created_at, updated_at FROM scenes ORDER BY updated_at DESC, id ASC")
	if err != nil {
		observability.Store().OnStoreError(ctx, "sqlite", "list", err)
		return nil, fmt.Errorf("query scenes: %w", err)
	}
	defer rows.Close()

	var out []*Scene
	for rows.Next() {
		var scene Scene
		if err := rows.Scan(&scene.ID, &scene.Name, &scene.Document, &scene.CreatedAt, &scene.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan scene: %w", err)
		}
		out = append(out, &scene)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scenes: %w", err)
	}
	return out, nil
}

func (s *SQLiteStore) Save(ctx context.Context, scene *Scene) error {
	stamp(scene, uuid.NewString)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scenes (id, name, document, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			document = excluded.document,
			updated_at = excluded.updated_at`,
		scene.ID, scene.Name, []byte(scene.Document), scene.CreatedAt, scene.UpdatedAt)
	if err != nil {
		observability.Store().OnStoreError(ctx, "sqlite", "put", err)
		return fmt.Errorf("save scene: %w", err)
	}
	observability.Store().OnStorePut(ctx, "sqlite", scene.ID, len(scene.Document))
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scenes WHERE id = ?", id)
	if err != nil {
		observability.Store().OnStoreError(ctx, "sqlite", "delete", err)
		return fmt.Errorf("delete scene: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSceneNotFound
	}
	observability.Store().OnStoreDelete(ctx, "sqlite", id)
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLiteStore)(nil)
