package lock

import (
	"Folio/internal/domain"
	"context"
	"fmt"
	"sync"
	"time"
)

type LocalLocker struct {
	mu     sync.Mutex
	leases map[string]time.Time
	now    func() time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{leases: make(map[string]time.Time), now: time.Now}
}

func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if expiry, held := l.leases[key]; held && now.Before(expiry) {
		return nil, fmt.Errorf("lease %s: %w", key, domain.ErrReconcileInProgress)
	}
	expiry := now.Add(ttl)
	l.leases[key] = expiry

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			// A lease that expired and was taken by someone else is not ours.
			if l.leases[key].Equal(expiry) {
				delete(l.leases, key)
			}
		})
	}, nil
}
