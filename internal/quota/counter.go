package quota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/zbmott/snafoo-challenge/internal/domain"
	"github.com/zbmott/snafoo-challenge/internal/metrics"
)

// Limits holds the configured monthly quotas.
type Limits struct {
	Nominations int
	Votes       int
}

// Counter answers "how many more records of this kind may the user create
// this month". Cache failures degrade to a direct recomputation; a request
// never fails because the cache is down.
type Counter struct {
	records domain.RecordRepository
	cache   domain.QuotaCache
	limits  Limits
	ttl     time.Duration
	clock   clockwork.Clock
	loc     *time.Location
}

func NewCounter(records domain.RecordRepository, cache domain.QuotaCache, limits Limits, ttl time.Duration, clock clockwork.Clock, loc *time.Location) *Counter {
	return &Counter{
		records: records,
		cache:   cache,
		limits:  limits,
		ttl:     ttl,
		clock:   clock,
		loc:     loc,
	}
}

func (c *Counter) limit(kind domain.RecordKind) int {
	if kind == domain.KindNomination {
		return c.limits.Nominations
	}
	return c.limits.Votes
}

// Remaining returns the number of additional records of the given kind the
// user may create this month. Anonymous users have no quota.
func (c *Counter) Remaining(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) (int, error) {
	if userID == uuid.Nil {
		return 0, nil
	}

	value, ok, err := c.cache.Get(ctx, kind, userID)
	if err != nil {
		metrics.QuotaCacheErrors.WithLabelValues("get").Inc()
		slog.Warn("Quota cache read failed, recomputing from record store",
			"kind", kind, "user_id", userID.String(), "error", err)
	} else if ok {
		metrics.QuotaCacheHits.WithLabelValues(string(kind)).Inc()
		return value, nil
	}
	metrics.QuotaCacheMisses.WithLabelValues(string(kind)).Inc()

	since := domain.MonthStart(c.clock.Now().In(c.loc))
	used, err := c.records.CountCreatedSince(ctx, kind, userID, since)
	if err != nil {
		return 0, fmt.Errorf("failed to count this month's %s records: %w", kind, err)
	}

	remaining := c.limit(kind) - used
	if remaining < 0 {
		remaining = 0
	}

	if err := c.cache.Set(ctx, kind, userID, remaining, c.ttl); err != nil {
		metrics.QuotaCacheErrors.WithLabelValues("set").Inc()
		slog.Warn("Failed to populate quota cache",
			"kind", kind, "user_id", userID.String(), "error", err)
	}

	return remaining, nil
}

// Invalidate drops the cached remaining count for one (kind, user) pair.
// Called synchronously after each record creation; the TTL covers a missed
// invalidation, so a failure here is logged rather than propagated.
func (c *Counter) Invalidate(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) {
	if err := c.cache.Delete(ctx, kind, userID); err != nil {
		metrics.QuotaCacheErrors.WithLabelValues("delete").Inc()
		slog.Warn("Failed to invalidate quota cache entry",
			"kind", kind, "user_id", userID.String(), "error", err)
	}
}
