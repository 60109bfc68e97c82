// Package idempotency remembers which keyed operations already ran so that
// redelivered messages are applied at most once.
package idempotency

import (
	"context"
	"errors"
	"time"
)

var (
	ErrAlreadyInProgress = errors.New("operation already in progress")
	ErrAlreadyCompleted  = errors.New("operation already completed")
	ErrInvalidState      = errors.New("invalid state")
)

type State string

const (
	StateNone       State = "none"        // operation can proceed
	StateInProgress State = "in_progress" // another worker holds the key
	StateCompleted  State = "completed"   // operation already completed
	StateError      State = "error"       // the store could not answer
)

func (s State) String() string {
	return string(s)
}

// Store keeps per-key operation state.
type Store interface {
	// Acquire claims the key for lockDuration when nobody holds it.
	Acquire(ctx context.Context, key string, lockDuration time.Duration) (State, error)
	MarkCompleted(ctx context.Context, key string, ttl time.Duration) error
	// Forget drops the key so a later attempt may run again.
	Forget(ctx context.Context, key string) error
}

type Idempotency interface {
	Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error
}

const (
	defaultLockDuration = time.Minute
	defaultStateTTL     = 24 * time.Hour
)

type Option func(*execOptions)

type execOptions struct {
	lockDuration time.Duration
	stateTTL     time.Duration
}

func WithLockDuration(lockDuration time.Duration) Option {
	return func(o *execOptions) {
		o.lockDuration = lockDuration
	}
}

func WithStateTTL(stateTTL time.Duration) Option {
	return func(o *execOptions) {
		o.stateTTL = stateTTL
	}
}

// Guard runs functions at most once per key on top of a Store. A failed run
// forgets its key so redelivery can retry it.
type Guard struct {
	store Store
}

func New(store Store) *Guard {
	return &Guard{store: store}
}

func (g *Guard) Exec(ctx context.Context, key string, fn func(context.Context) error, opts ...Option) error {
	execOpt := &execOptions{
		lockDuration: defaultLockDuration,
		stateTTL:     defaultStateTTL,
	}
	for _, opt := range opts {
		opt(execOpt)
	}
	if execOpt.lockDuration <= 0 {
		execOpt.lockDuration = defaultLockDuration
	}
	if execOpt.stateTTL <= 0 {
		execOpt.stateTTL = defaultStateTTL
	}

	state, err := g.store.Acquire(ctx, key, execOpt.lockDuration)
	if err != nil {
		return err
	}

	switch state {
	case StateInProgress:
		return ErrAlreadyInProgress
	case StateCompleted:
		return ErrAlreadyCompleted
	}

	if err := fn(ctx); err != nil {
		if forgetErr := g.store.Forget(ctx, key); forgetErr != nil {
			return errors.Join(err, forgetErr)
		}
		return err
	}

	return g.store.MarkCompleted(ctx, key, execOpt.stateTTL)
}
