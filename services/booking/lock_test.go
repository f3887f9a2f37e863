package booking

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"heysheets/utils"
)

func TestRedisSlotLocker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	locker := NewRedisSlotLocker(client)
	ctx := context.Background()

	ok, err := locker.Acquire(ctx, "cal:svc:slot")
	require.NoError(t, err)
	assert.True(t, ok)

	// Second acquire on the same key loses.
	ok, err = locker.Acquire(ctx, "cal:svc:slot")
	require.NoError(t, err)
	assert.False(t, ok)

	locker.Release(ctx, "cal:svc:slot")
	ok, err = locker.Acquire(ctx, "cal:svc:slot")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisSlotLockerTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	locker := NewRedisSlotLocker(client)
	ctx := context.Background()

	ok, err := locker.Acquire(ctx, "cal:svc:slot")
	require.NoError(t, err)
	require.True(t, ok)

	// A crashed holder's lock expires on its own.
	mr.FastForward(utils.SlotLockTTL + time.Second)
	ok, err = locker.Acquire(ctx, "cal:svc:slot")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAcquireWithRetryGivesUp(t *testing.T) {
	locks := &fakeLocker{held: map[string]bool{"k": true}}

	ok, err := acquireWithRetry(context.Background(), locks, "k", time.Millisecond)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 5, locks.attempts)
}

func TestAcquireWithRetryStopsOnFirstWin(t *testing.T) {
	locks := &fakeLocker{}

	ok, err := acquireWithRetry(context.Background(), locks, "k", time.Millisecond)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, locks.attempts)
}

func TestAcquireWithRetryHonorsContext(t *testing.T) {
	locks := &fakeLocker{held: map[string]bool{"k": true}}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	ok, err := acquireWithRetry(ctx, locks, "k", time.Minute)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
