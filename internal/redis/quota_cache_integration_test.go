package redis

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/zbmott/snafoo-challenge/internal/domain"
)

var (
	testRedisURL string
	redContainer testcontainers.Container
)

func TestMain(m *testing.M) {
	// Parse flags to check for -short
	flag.Parse()

	// Skip container setup if running in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	var err error
	redContainer, err = tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}

	endpoint, err := redContainer.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	defer func() {
		if err := redContainer.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
		}
	}()
	os.Exit(m.Run())
}

func newTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	client, err := NewClient(context.Background(), testRedisURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestQuotaCache_MissThenHit(t *testing.T) {
	cache := NewQuotaCache(newTestClient(t))
	ctx := context.Background()
	userID := uuid.New()

	_, ok, err := cache.Get(ctx, domain.KindNomination, userID)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, domain.KindNomination, userID, 4, time.Minute))

	value, ok, err := cache.Get(ctx, domain.KindNomination, userID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 4, value)
}

func TestQuotaCache_KindsAreIndependent(t *testing.T) {
	cache := NewQuotaCache(newTestClient(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, cache.Set(ctx, domain.KindNomination, userID, 1, time.Minute))
	require.NoError(t, cache.Set(ctx, domain.KindBallot, userID, 3, time.Minute))

	nominations, ok, err := cache.Get(ctx, domain.KindNomination, userID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 1, nominations)

	require.NoError(t, cache.Delete(ctx, domain.KindNomination, userID))

	_, ok, err = cache.Get(ctx, domain.KindNomination, userID)
	require.NoError(t, err)
	assert.False(t, ok, "nomination entry should be gone")

	ballots, ok, err := cache.Get(ctx, domain.KindBallot, userID)
	require.NoError(t, err)
	require.True(t, ok, "ballot entry must survive nomination invalidation")
	assert.Equal(t, 3, ballots)
}

func TestQuotaCache_DeleteOnlyTargetsOneUser(t *testing.T) {
	cache := NewQuotaCache(newTestClient(t))
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()

	require.NoError(t, cache.Set(ctx, domain.KindBallot, alice, 2, time.Minute))
	require.NoError(t, cache.Set(ctx, domain.KindBallot, bob, 3, time.Minute))

	require.NoError(t, cache.Delete(ctx, domain.KindBallot, alice))

	_, ok, err := cache.Get(ctx, domain.KindBallot, alice)
	require.NoError(t, err)
	assert.False(t, ok)

	value, ok, err := cache.Get(ctx, domain.KindBallot, bob)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestQuotaCache_EntriesExpire(t *testing.T) {
	cache := NewQuotaCache(newTestClient(t))
	ctx := context.Background()
	userID := uuid.New()

	require.NoError(t, cache.Set(ctx, domain.KindNomination, userID, 1, 100*time.Millisecond))

	time.Sleep(200 * time.Millisecond)

	_, ok, err := cache.Get(ctx, domain.KindNomination, userID)
	require.NoError(t, err)
	assert.False(t, ok, "entry should expire after its TTL")
}

func TestQuotaCache_DeleteMissingKeyIsNoop(t *testing.T) {
	cache := NewQuotaCache(newTestClient(t))
	assert.NoError(t, cache.Delete(context.Background(), domain.KindBallot, uuid.New()))
}
