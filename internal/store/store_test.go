package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

var columns = []string{"id", "query", "alias", "format", "explanation", "created_at"}

func TestMigrate(t *testing.T) {
	db, mock := setupTestDB(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS caseprose_translations").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewStore(db).Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	mock.ExpectExec("INSERT INTO caseprose_translations").
		WithArgs(sqlmock.AnyArg(), "CASE WHEN a THEN 1 END AS x", "x", "text", "Column 'x' is computed as:", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	tr := &Translation{
		Query:       "CASE WHEN a THEN 1 END AS x",
		Alias:       "x",
		Format:      "text",
		Explanation: "Column 'x' is computed as:",
	}
	require.NoError(t, s.Save(context.Background(), tr))
	assert.NotEqual(t, uuid.Nil, tr.ID)
	assert.False(t, tr.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveDuplicate(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectExec("INSERT INTO caseprose_translations").
		WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})

	err := NewStore(db).Save(context.Background(), &Translation{ID: uuid.New(), Format: "text"})
	assert.True(t, errors.Is(err, ErrDuplicate), "got %v", err)
}

func TestGet(t *testing.T) {
	db, mock := setupTestDB(t)
	s := NewStore(db)

	id := uuid.New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, query, alias, format, explanation, created_at").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(id.String(), "CASE WHEN a THEN 1 END", "", "text", "Computed column is derived as:", created))

	got, err := s.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Computed column is derived as:", got.Explanation)
	assert.Equal(t, created, got.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetNotFound(t *testing.T) {
	db, mock := setupTestDB(t)

	mock.ExpectQuery("SELECT id, query").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := NewStore(db).Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecent(t *testing.T) {
	db, mock := setupTestDB(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows(columns).
		AddRow(uuid.New().String(), "q2", "b", "json", "e2", now).
		AddRow(uuid.New().String(), "q1", "a", "text", "e1", now.Add(-time.Minute))
	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs(20).
		WillReturnRows(rows)

	got, err := NewStore(db).Recent(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q2", got[0].Query)
	assert.Equal(t, "a", got[1].Alias)
	assert.NoError(t, mock.ExpectationsWereMet())
}
