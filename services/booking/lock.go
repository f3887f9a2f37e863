package booking

import (
	"context"
	"time"

	"heysheets/utils"

	"github.com/go-redis/redis/v8"
)

// SlotLocker serializes booking creation per (calendar, slot). Two turns
// racing for the last spot in the same slot otherwise both pass the capacity
// check before either commits.
type SlotLocker interface {
	// Acquire takes the lock for the key, reporting whether it was obtained.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string)
}

type redisSlotLocker struct {
	client *redis.Client
}

// NewRedisSlotLocker builds a SlotLocker over Redis SETNX with a TTL so a
// crashed request cannot hold a slot forever.
func NewRedisSlotLocker(client *redis.Client) SlotLocker {
	return &redisSlotLocker{client: client}
}

func (l *redisSlotLocker) Acquire(ctx context.Context, key string) (bool, error) {
	return l.client.SetNX(ctx, utils.SlotLockPrefix+key, "1", utils.SlotLockTTL).Result()
}

func (l *redisSlotLocker) Release(ctx context.Context, key string) {
	l.client.Del(ctx, utils.SlotLockPrefix+key)
}

// acquireWithRetry polls briefly for a contended lock before giving up. The
// hold time of a booking is a pair of calendar calls, so contention clears
// fast.
func acquireWithRetry(ctx context.Context, locker SlotLocker, key string, delay time.Duration) (bool, error) {
	const attempts = 5
	for i := 0; i < attempts; i++ {
		ok, err := locker.Acquire(ctx, key)
		if err != nil || ok {
			return ok, err
		}
		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(delay):
		}
	}
	return false, nil
}
