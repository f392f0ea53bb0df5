package locks_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Gin_memory_redis_rental_catalog/locks"
)

const chairLockKey = "rental:lock:chair1"

func newRedisLocker(t *testing.T, ttl time.Duration) (*locks.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return locks.NewRedisLocker(rdb, ttl), mr
}

func Test_RedisLocker_LockAndRelease(t *testing.T) {
	l, mr := newRedisLocker(t, 10*time.Second)

	unlock, err := l.Lock(context.Background(), "chair1")
	require.NoError(t, err)
	assert.True(t, mr.Exists(chairLockKey))
	assert.Equal(t, 10*time.Second, mr.TTL(chairLockKey))

	unlock()
	assert.False(t, mr.Exists(chairLockKey))
}

func Test_RedisLocker_SerializesSameKey(t *testing.T) {
	l, _ := newRedisLocker(t, 10*time.Second)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "chair1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}

func Test_RedisLocker_DifferentKeysDoNotBlock(t *testing.T) {
	l, _ := newRedisLocker(t, 10*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	unlockA, err := l.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func Test_RedisLocker_HonoursContext(t *testing.T) {
	l, _ := newRedisLocker(t, 10*time.Second)

	unlock, err := l.Lock(context.Background(), "chair1")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "chair1")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func Test_RedisLocker_OnlyOwnerReleases(t *testing.T) {
	l, mr := newRedisLocker(t, 10*time.Second)

	unlock, err := l.Lock(context.Background(), "chair1")
	require.NoError(t, err)

	// 锁已过期并被别人拿走
	require.NoError(t, mr.Set(chairLockKey, "other-owner"))
	unlock()

	got, err := mr.Get(chairLockKey)
	require.NoError(t, err)
	assert.Equal(t, "other-owner", got)
}

func Test_RedisLocker_ExpiredLockCanBeTaken(t *testing.T) {
	l, mr := newRedisLocker(t, 5*time.Second)

	staleUnlock, err := l.Lock(context.Background(), "chair1")
	require.NoError(t, err)

	mr.FastForward(6 * time.Second)
	assert.False(t, mr.Exists(chairLockKey))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	unlock, err := l.Lock(ctx, "chair1")
	require.NoError(t, err)

	// 过期持有者的 unlock 不能释放新锁
	staleUnlock()
	assert.True(t, mr.Exists(chairLockKey))

	unlock()
	assert.False(t, mr.Exists(chairLockKey))
}

func Test_RedisLocker_ServerDown(t *testing.T) {
	l, mr := newRedisLocker(t, 5*time.Second)
	mr.Close()

	_, err := l.Lock(context.Background(), "chair1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, context.DeadlineExceeded)
}
