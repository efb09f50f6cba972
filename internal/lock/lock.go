package lock

import (
	"context"
	"errors"
	"time"
)

// PoolKey 资金池分配锁，项目创建和捐款共用
const PoolKey = "qrkot:invest:pool"

// ErrNotAcquired 在 ctx 结束前未能拿到锁
var ErrNotAcquired = errors.New("lock not acquired")

// Locker 互斥锁接口
type Locker interface {
	// Acquire 尝试获取锁，返回持有凭证；未拿到时 ok 为 false
	Acquire(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)
	// Release 释放锁，只有持有者的 token 能释放
	Release(ctx context.Context, key, token string) error
}

const retryInterval = 20 * time.Millisecond

// Obtain 反复尝试获取锁直到成功或 ctx 结束，返回释放函数
func Obtain(ctx context.Context, l Locker, key string, ttl time.Duration) (func(), error) {
	ticker := time.NewTicker(retryInterval)
	defer ticker.Stop()

	for {
		token, ok, err := l.Acquire(ctx, key, ttl)
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// 请求 ctx 可能已取消，释放使用独立的 ctx
				releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = l.Release(releaseCtx, key, token)
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrNotAcquired, ctx.Err())
		case <-ticker.C:
		}
	}
}
