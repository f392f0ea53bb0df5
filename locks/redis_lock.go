package locks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultRetryInterval = 25 * time.Millisecond

// RedisLocker 用 SET NX PX 实现跨进程的物品锁；ttl 防止进程崩溃后锁永不释放
type RedisLocker struct {
	rdb   *redis.Client
	ttl   time.Duration
	retry time.Duration
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: defaultRetryInterval}
}

func lockKey(key string) string { return fmt.Sprintf("rental:lock:%s", key) }

// 只删除自己持有的锁
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	k := lockKey(key)
	token := uuid.NewString()
	for {
		ok, err := l.rdb.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("acquire %s: %w", k, err)
		}
		if ok {
			return func() {
				// 请求 ctx 可能已取消，释放锁用独立 ctx
				rctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
				defer cancel()
				_ = unlockScript.Run(rctx, l.rdb, []string{k}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}
