package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/zbmott/snafoo-challenge/internal/domain"
)

const quotaKeyPrefix = "quota:"

// QuotaCache implements domain.QuotaCache on top of a shared Redis instance.
// Entries are plain integers so concurrent Set calls from different processes
// can only race to write the same recomputed value.
type QuotaCache struct {
	rdb goredis.Cmdable
}

func NewQuotaCache(rdb goredis.Cmdable) *QuotaCache {
	return &QuotaCache{rdb: rdb}
}

func quotaKey(kind domain.RecordKind, userID uuid.UUID) string {
	return quotaKeyPrefix + string(kind) + ":" + userID.String()
}

func (c *QuotaCache) Get(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) (int, bool, error) {
	value, err := c.rdb.Get(ctx, quotaKey(kind, userID)).Int()
	if errors.Is(err, goredis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("quota cache get failed: %w", err)
	}
	return value, true, nil
}

func (c *QuotaCache) Set(ctx context.Context, kind domain.RecordKind, userID uuid.UUID, remaining int, ttl time.Duration) error {
	if err := c.rdb.Set(ctx, quotaKey(kind, userID), remaining, ttl).Err(); err != nil {
		return fmt.Errorf("quota cache set failed: %w", err)
	}
	return nil
}

func (c *QuotaCache) Delete(ctx context.Context, kind domain.RecordKind, userID uuid.UUID) error {
	if err := c.rdb.Del(ctx, quotaKey(kind, userID)).Err(); err != nil {
		return fmt.Errorf("quota cache delete failed: %w", err)
	}
	return nil
}
