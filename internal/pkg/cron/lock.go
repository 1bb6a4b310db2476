package cron

import (
	"context"
	"sync"
	"time"
)

// UnlockFunc releases a lock taken by Locker.TryLock.
type UnlockFunc func(ctx context.Context) error

// Locker hands out named, expiring locks. TryLock never blocks: ok is false
// when another holder has the key.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock UnlockFunc, ok bool, err error)
}

// LocalLocker is an in-process Locker for single-replica deployments.
type LocalLocker struct {
	mu    sync.Mutex
	held  map[string]time.Time
	clock func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{
		held:  make(map[string]time.Time),
		clock: time.Now,
	}
}

func (l *LocalLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	if expiresAt, ok := l.held[key]; ok && now.Before(expiresAt) {
		return nil, false, nil
	}

	expiresAt := now.Add(ttl)
	l.held[key] = expiresAt

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()

		// An expired lock may have been re-taken; only release our own.
		if current, ok := l.held[key]; ok && current.Equal(expiresAt) {
			delete(l.held, key)
		}
		return nil
	}, true, nil
}
