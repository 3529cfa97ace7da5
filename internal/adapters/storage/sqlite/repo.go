package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hylla/tavla/internal/app"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// blobKey is the single key the aggregate lives under. The persistence
// boundary is a key-value store holding one serialized board.
const blobKey = "board"

// Repository stores the serialized board aggregate in a one-row sqlite
// table, standing in for the original's browser key-value store.
type Repository struct {
	db *sql.DB
}

// Open opens (and if needed creates) the database at path.
func Open(path string) (*Repository, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create sqlite dir: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// OpenInMemory opens a throwaway in-memory store.
func OpenInMemory() (*Repository, error) {
	db, err := sql.Open(driverName, "file::memory:?cache=shared")
	if err != nil {
		return nil, fmt.Errorf("open sqlite memory: %w", err)
	}
	repo := &Repository{db: db}
	if err := repo.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// Close closes the underlying database.
func (r *Repository) Close() error {
	return r.db.Close()
}

func (r *Repository) migrate(ctx context.Context) error {
	stmts := []string{
		`PRAGMA journal_mode = WAL;`,
		`CREATE TABLE IF NOT EXISTS board_blobs (
			key TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			updated_at TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate sqlite schema: %w", err)
		}
	}
	return nil
}

// Load reads the persisted aggregate blob. app.ErrNotFound means nothing
// has been saved yet.
func (r *Repository) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM board_blobs WHERE key = ?`, blobKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, app.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load board blob: %w", err)
	}
	return data, nil
}

// Save upserts the aggregate blob under the single board key.
func (r *Repository) Save(ctx context.Context, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO board_blobs (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		blobKey, data, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save board blob: %w", err)
	}
	return nil
}
