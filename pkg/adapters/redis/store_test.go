package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/compartments/pkg/adapters/redis"
	"github.com/aretw0/compartments/pkg/domain"
	"github.com/aretw0/compartments/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	return mr, backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)

	store := redis.NewFromClient(client)
	ports.RunModelStoreContract(t, store)
}

func TestRedisStore_TTL_Expiration(t *testing.T) {
	mr, client := newClient(t)

	// Create store with 1s TTL
	store := redis.NewFromClient(client, redis.WithTTL(1*time.Second))
	ctx := context.Background()

	// 1. Save
	err := store.Save(ctx, "sir", ports.ContractModel("sir"))
	assert.NoError(t, err)

	// 2. Verify List (immediately)
	keys, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Contains(t, keys, "sir")

	// 3. Fast Forward time in miniredis (for Key Expiration)
	mr.FastForward(2 * time.Second)

	// 4. Verify Load (should fail)
	_, err = store.Load(ctx, "sir")
	assert.ErrorIs(t, err, domain.ErrModelNotFound)

	// 5. The index is pruned against wall clock time.
	time.Sleep(1200 * time.Millisecond)

	keys, err = store.List(ctx)
	assert.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client, redis.WithPrefix("custom:app:"))
	ctx := context.Background()

	err := store.Save(ctx, "seir", ports.ContractModel("seir"))
	assert.NoError(t, err)

	assert.True(t, mr.Exists("custom:app:m:seir"), "Expected key with custom prefix to exist")
	assert.True(t, mr.Exists("custom:app:index"), "Expected index with custom prefix to exist")

	raw, err := mr.Get("custom:app:m:seir")
	require.NoError(t, err)
	assert.Contains(t, raw, `"key":"seir"`)

	list, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"seir"}, list)
}

func TestRedisStore_KeyNamedIndex(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "sir", ports.ContractModel("sir")))
	require.NoError(t, store.Save(ctx, "index", ports.ContractModel("index")))

	list, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sir", "index"}, list)

	loaded, err := store.Load(ctx, "index")
	require.NoError(t, err)
	assert.Equal(t, "index", loaded.Key)

	members, err := mr.ZMembers("compartments:model:index")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"sir", "index"}, members)
}

func TestRedisStore_NoTTLScoresZero(t *testing.T) {
	mr, client := newClient(t)

	store := redis.NewFromClient(client)
	require.NoError(t, store.Save(context.Background(), "sir", ports.ContractModel("sir")))

	score, err := mr.ZScore("compartments:model:index", "sir")
	require.NoError(t, err)
	assert.Equal(t, float64(0), score)
}

func TestRedisLocker(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "test:")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "commit:one_strain", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:lock:commit:one_strain"))

	// A second holder times out while the lock is held.
	waitCtx, cancel := context.WithTimeout(ctx, 250*time.Millisecond)
	defer cancel()
	_, err = locker.Lock(waitCtx, "commit:one_strain", time.Minute)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, unlock(ctx))
	assert.False(t, mr.Exists("test:lock:commit:one_strain"))

	// Free again.
	unlock, err = locker.Lock(ctx, "commit:one_strain", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

func TestRedisLocker_ReleaseOnlyOwnLock(t *testing.T) {
	mr, client := newClient(t)
	locker := redis.NewLocker(client, "")
	ctx := context.Background()

	unlock, err := locker.Lock(ctx, "k", time.Second)
	require.NoError(t, err)

	// The lock expires and someone else takes it.
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("lock:k", "other-owner"))

	require.NoError(t, unlock(ctx))
	got, err := mr.Get("lock:k")
	require.NoError(t, err)
	assert.Equal(t, "other-owner", got)
}
