package database

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/zbmott/snafoo-challenge/internal/domain"
)

// CreateTestUser is a helper that creates a user for testing.
func CreateTestUser(t *testing.T, pool *pgxpool.Pool, username string) *domain.User {
	t.Helper()

	repo := NewUserRepo(pool)
	user, err := repo.Upsert(context.Background(), username)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, user.ID)

	return user
}

// CreateTestRecord is a helper that appends a record for testing.
func CreateTestRecord(t *testing.T, pool *pgxpool.Pool, kind domain.RecordKind, userID uuid.UUID, snackID int64) *domain.Record {
	t.Helper()

	repo := NewRecordRepo(pool)
	rec, err := repo.Create(context.Background(), kind, userID, snackID)
	require.NoError(t, err)

	return rec
}

// TruncateRecords clears the records table between tests.
func TruncateRecords(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(), `TRUNCATE records`)
	require.NoError(t, err)
}
