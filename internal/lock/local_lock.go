package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type holder struct {
	token   string
	expires time.Time
}

// LocalLock 进程内实现，未启用 Redis 时使用
type LocalLock struct {
	mu    sync.Mutex
	held  map[string]holder
	clock func() time.Time
}

func NewLocalLock() *LocalLock {
	return &LocalLock{
		held:  make(map[string]holder),
		clock: time.Now,
	}
}

func (l *LocalLock) Acquire(_ context.Context, key string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if h, ok := l.held[key]; ok && now.Before(h.expires) {
		return "", false, nil
	}

	token := uuid.NewString()
	l.held[key] = holder{token: token, expires: now.Add(ttl)}
	return token, true, nil
}

func (l *LocalLock) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if h, ok := l.held[key]; ok && h.token == token {
		delete(l.held, key)
	}
	return nil
}
