package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockExclusive(t *testing.T) {
	l := NewLocalLock()
	ctx := context.Background()

	token, ok, err := l.Acquire(ctx, PoolKey, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	_, ok, err = l.Acquire(ctx, PoolKey, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	// 他人的 token 不能释放
	require.NoError(t, l.Release(ctx, PoolKey, "other"))
	_, ok, _ = l.Acquire(ctx, PoolKey, time.Minute)
	assert.False(t, ok)

	require.NoError(t, l.Release(ctx, PoolKey, token))
	_, ok, _ = l.Acquire(ctx, PoolKey, time.Minute)
	assert.True(t, ok)
}

func TestLocalLockExpires(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l := NewLocalLock()
	l.clock = func() time.Time { return now }

	_, ok, _ := l.Acquire(context.Background(), PoolKey, time.Second)
	require.True(t, ok)

	now = now.Add(2 * time.Second)
	_, ok, _ = l.Acquire(context.Background(), PoolKey, time.Second)
	assert.True(t, ok)
}

func TestObtainTimesOut(t *testing.T) {
	l := NewLocalLock()
	_, ok, _ := l.Acquire(context.Background(), PoolKey, time.Minute)
	require.True(t, ok)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	release, err := Obtain(ctx, l, PoolKey, time.Minute)
	assert.Nil(t, release)
	assert.ErrorIs(t, err, ErrNotAcquired)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestObtainSerializes(t *testing.T) {
	l := NewLocalLock()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := Obtain(context.Background(), l, PoolKey, time.Minute)
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
}
