package lock

import (
	"Folio/internal/config"
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Release gives a lease back. It is safe to call more than once.
type Release func()

// Locker hands out short-lived exclusive leases keyed by name. Acquire
// returns domain.ErrReconcileInProgress when the key is already held.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// NewLocker returns a Redis-backed locker when redis.url is configured and an
// in-process one otherwise.
func NewLocker(configuration *config.Configuration) (Locker, error) {
	if configuration.Redis.URL == "" {
		return NewLocalLocker(), nil
	}
	options, err := redis.ParseURL(configuration.Redis.URL)
	if err != nil {
		return nil, err
	}
	return NewRedisLocker(redis.NewClient(options)), nil
}
