package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zbmott/snafoo-challenge/internal/domain"
	"github.com/zbmott/snafoo-challenge/internal/metrics"
)

// recordColumns must match the Scan order in scanRecord.
const recordColumns = `id, kind, user_id, snack_id, created_at, updated_at`

// RecordRepo implements domain.RecordRepository backed by PostgreSQL.
// The repository is append-only: records are created and read, never
// updated or deleted.
type RecordRepo struct {
	pool *pgxpool.Pool
}

func NewRecordRepo(pool *pgxpool.Pool) *RecordRepo {
	return &RecordRepo{pool: pool}
}

func scanRecord(row pgx.Row) (*domain.Record, error) {
	var rec domain.Record
	err := row.Scan(&rec.ID, &rec.Kind, &rec.UserID, &rec.SnackID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecordRepo) Create(ctx context.Context, kind domain.RecordKind, userID uuid.UUID, snackID int64) (*domain.Record, error) {
	rec, err := scanRecord(r.pool.QueryRow(ctx, `
		INSERT INTO records (kind, user_id, snack_id, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING `+recordColumns+`
	`, kind, userID, snackID))
	if err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", kind, err)
	}

	metrics.RecordsCreated.WithLabelValues(string(kind)).Inc()
	return rec, nil
}

func (r *RecordRepo) CreatedSince(ctx context.Context, kind domain.RecordKind, since time.Time) ([]domain.Record, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+recordColumns+`
		FROM records
		WHERE kind = $1 AND created_at >= $2
		ORDER BY created_at
	`, kind, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s records: %w", kind, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s record: %w", kind, err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s records: %w", kind, err)
	}

	return records, nil
}

func (r *RecordRepo) CountCreatedSince(ctx context.Context, kind domain.RecordKind, userID uuid.UUID, since time.Time) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM records
		WHERE kind = $1 AND user_id = $2 AND created_at >= $3
	`, kind, userID, since).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", kind, err)
	}
	return count, nil
}
