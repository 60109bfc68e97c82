// Package lock provides short-lived mutual exclusion keyed by string.
//
// The OTP engine takes a lock per (purpose, subject) around its
// cooldown-check, invalidate and insert sequence, so concurrent requests for
// the same pair are serialized across every instance sharing the backend.
package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// ErrLocked is returned when the key is already held by someone else.
var ErrLocked = errors.New("lock: key is already held")

// ErrInvalidTTL is returned for non-positive lease durations.
var ErrInvalidTTL = errors.New("lock: ttl must be positive")

// Release gives the lock back. Releasing an expired or stolen lease is a no-op.
type Release func(ctx context.Context) error

// Locker acquires leases on keys.
type Locker interface {
	// Acquire takes the key for at most ttl. It does not wait: a held key
	// yields ErrLocked.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

func newToken() (string, error) {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return hex.EncodeToString(b[:]), nil
}
