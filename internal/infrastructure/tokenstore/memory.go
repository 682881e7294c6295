// Package tokenstore holds the in-process one-time image token store.
//
// Tokens live only in this process: they do not survive a restart and are
// not shared between replicas. Use the Redis store when running more than
// one instance.
package tokenstore

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
)

const defaultSweepInterval = 5 * time.Minute

// Memory is a mutex-guarded token map with a periodic janitor.
type Memory struct {
	mu     sync.Mutex
	tokens map[string]*domain.ImageToken
	log    zerolog.Logger
	now    func() time.Time
}

func NewMemory(log zerolog.Logger) *Memory {
	return &Memory{
		tokens: make(map[string]*domain.ImageToken),
		log:    log,
		now:    time.Now,
	}
}

func (m *Memory) Save(_ context.Context, t *domain.ImageToken) error {
	clone := *t
	m.mu.Lock()
	m.tokens[t.Token] = &clone
	m.mu.Unlock()
	return nil
}

// Consume checks and marks the token in one critical section, so concurrent
// redemptions of the same token see exactly one success.
func (m *Memory) Consume(_ context.Context, token string, now time.Time) (*domain.ImageToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.tokens[token]
	if !ok {
		return nil, domain.ErrTokenInvalid
	}
	if err := t.Check(now); err != nil {
		if err == domain.ErrTokenExpired {
			delete(m.tokens, token)
		}
		return nil, err
	}

	t.Used = true
	t.Downloads++
	clone := *t
	return &clone, nil
}

// Sweep drops used and expired tokens and returns how many were removed.
func (m *Memory) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for k, t := range m.tokens {
		if t.Used || now.After(t.ExpiresAt) {
			delete(m.tokens, k)
			removed++
		}
	}
	return removed
}

func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

// Start runs the janitor until ctx is cancelled. interval <= 0 uses five minutes.
func (m *Memory) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := m.Sweep(); n > 0 {
					m.log.Debug().Int("removed", n).Msg("image token sweep")
				}
			}
		}
	}()
}
