package repository

import (
	"context"
	"sync"
	"time"

	"shareit/internal/domain"

	"github.com/rs/zerolog"
)

const recoveryInterval = time.Minute

// FailoverRateLimitStore uses primary until it errors, then serves from
// fallback and retries primary once per recoveryInterval.
type FailoverRateLimitStore struct {
	primary  domain.RateLimitStore
	fallback domain.RateLimitStore
	logger   *zerolog.Logger

	mu        sync.Mutex
	isDown    bool
	lastCheck time.Time
	now       func() time.Time
}

func NewFailoverRateLimitStore(primary, fallback domain.RateLimitStore, logger *zerolog.Logger) *FailoverRateLimitStore {
	return &FailoverRateLimitStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

// usePrimary reports whether the next call should go to the primary store.
func (r *FailoverRateLimitStore) usePrimary() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.isDown {
		return true
	}
	if r.now().Sub(r.lastCheck) > recoveryInterval {
		r.lastCheck = r.now()
		return true
	}
	return false
}

func (r *FailoverRateLimitStore) markDown(err error) {
	r.mu.Lock()
	wasDown := r.isDown
	r.isDown = true
	r.lastCheck = r.now()
	r.mu.Unlock()

	if !wasDown {
		r.logger.Error().Err(err).Msg("Primary rate limit store failed, falling back to memory")
	}
}

func (r *FailoverRateLimitStore) markUp() {
	r.mu.Lock()
	wasDown := r.isDown
	r.isDown = false
	r.mu.Unlock()

	if wasDown {
		r.logger.Info().Msg("Primary rate limit store recovered")
	}
}

func (r *FailoverRateLimitStore) IsDown() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isDown
}

func (r *FailoverRateLimitStore) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.usePrimary() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			r.markUp()
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
