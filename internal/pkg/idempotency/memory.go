package idempotency

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	state    State
	deadline time.Time
}

// Memory is a process-local Store for single-instance deployments and tests.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error) {
	if err := ctx.Err(); err != nil {
		return StateError, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.entries[key]; ok && now.Before(e.deadline) {
		return e.state, nil
	}

	m.entries[key] = entry{state: StateInProgress, deadline: now.Add(lockDuration)}
	return StateNone, nil
}

func (m *Memory) MarkCompleted(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry{state: StateCompleted, deadline: m.now().Add(ttl)}
	return nil
}

func (m *Memory) Forget(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, key)
	return nil
}
