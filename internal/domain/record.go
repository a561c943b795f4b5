package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecordKind discriminates the two monthly-quota record types.
type RecordKind string

const (
	KindNomination RecordKind = "nomination"
	KindBallot     RecordKind = "ballot"
)

// Record is one nomination or ballot a user has placed for a snack.
// Records are append-only: they are never updated after creation and only
// disappear as a cascade when the owning user is deleted.
type Record struct {
	ID        uuid.UUID
	Kind      RecordKind
	UserID    uuid.UUID
	SnackID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RecordRepository interface {
	// Create appends a new record and returns it with server-assigned
	// ID and timestamps.
	Create(ctx context.Context, kind RecordKind, userID uuid.UUID, snackID int64) (*Record, error)
	// CreatedSince returns all records of the given kind created at or after
	// the given instant, ordered by creation time.
	CreatedSince(ctx context.Context, kind RecordKind, since time.Time) ([]Record, error)
	// CountCreatedSince counts one user's records of the given kind created
	// at or after the given instant.
	CountCreatedSince(ctx context.Context, kind RecordKind, userID uuid.UUID, since time.Time) (int, error)
}

// MonthStart returns the first instant of now's calendar month, in now's
// location. Records created at or after this instant count against the
// current month's quota.
func MonthStart(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
}
