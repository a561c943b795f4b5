package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// QuotaCache stores precomputed remaining-quota values keyed by (kind, user).
// The only permitted mutations are Set on a read miss and Delete on record
// creation; there is no increment-in-place, so concurrent readers can only
// race to write the same recomputed value. The record store remains the
// authoritative count on every miss.
type QuotaCache interface {
	// Get returns the cached remaining count and whether an entry was present.
	Get(ctx context.Context, kind RecordKind, userID uuid.UUID) (int, bool, error)
	// Set stores a remaining count with the given TTL.
	Set(ctx context.Context, kind RecordKind, userID uuid.UUID, remaining int, ttl time.Duration) error
	// Delete removes the entry for exactly one (kind, user) pair.
	Delete(ctx context.Context, kind RecordKind, userID uuid.UUID) error
}
