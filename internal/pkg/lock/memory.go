package lock

import (
	"context"
	"sync"
	"time"
)

type lease struct {
	token    string
	deadline time.Time
}

// Memory is a process-local Locker for single-instance deployments and tests.
type Memory struct {
	mu     sync.Mutex
	leases map[string]lease
	now    func() time.Time
}

// NewMemory returns an empty in-process locker.
func NewMemory() *Memory {
	return &Memory{leases: make(map[string]lease), now: time.Now}
}

// Acquire implements Locker.
func (m *Memory) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if l, ok := m.leases[key]; ok && now.Before(l.deadline) {
		return nil, ErrLocked
	}
	m.leases[key] = lease{token: token, deadline: now.Add(ttl)}

	return func(context.Context) error {
		m.mu.Lock()
		defer m.mu.Unlock()
		if l, ok := m.leases[key]; ok && l.token == token {
			delete(m.leases, key)
		}
		return nil
	}, nil
}
