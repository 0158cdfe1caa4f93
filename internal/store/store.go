// Package store archives rendered explanations in PostgreSQL so they can be
// fetched again by id.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned by Get for an unknown id.
	ErrNotFound = errors.New("translation not found")
	// ErrDuplicate is returned by Save when the id is already taken.
	ErrDuplicate = errors.New("translation already exists")
)

// Translation is one archived explanation.
type Translation struct {
	ID          uuid.UUID `json:"id"`
	Query       string    `json:"query"`
	Alias       string    `json:"alias,omitempty"`
	Format      string    `json:"format"`
	Explanation string    `json:"explanation"`
	CreatedAt   time.Time `json:"created_at"`
}

const schema = `
CREATE TABLE IF NOT EXISTS caseprose_translations (
	id          UUID PRIMARY KEY,
	query       TEXT NOT NULL,
	alias       TEXT NOT NULL DEFAULT '',
	format      TEXT NOT NULL,
	explanation TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store provides database operations for archived translations
type Store struct {
	db *sql.DB
}

// NewStore creates a new store over an open database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Open connects to PostgreSQL at url.
func Open(ctx context.Context, url string) (*Store, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return NewStore(db), nil
}

// Migrate creates the archive table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Save inserts t, assigning its ID and CreatedAt when unset.
func (s *Store) Save(ctx context.Context, t *Translation) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO caseprose_translations (id, query, alias, format, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(ctx, query, t.ID, t.Query, t.Alias, t.Format, t.Explanation, t.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("save %s: %w", t.ID, ErrDuplicate)
		}
		return fmt.Errorf("insert translation: %w", err)
	}
	return nil
}

// Get returns the translation with the given id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (*Translation, error) {
	query := `
		SELECT id, query, alias, format, explanation, created_at
		FROM caseprose_translations
		WHERE id = $1
	`
	var t Translation
	err := s.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Query, &t.Alias, &t.Format, &t.Explanation, &t.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get translation: %w", err)
	}
	return &t, nil
}

// Recent returns up to limit translations, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Translation, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, query, alias, format, explanation, created_at
		FROM caseprose_translations
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list translations: %w", err)
	}
	defer rows.Close()

	var out []Translation
	for rows.Next() {
		var t Translation
		if err := rows.Scan(&t.ID, &t.Query, &t.Alias, &t.Format, &t.Explanation, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan translation: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
