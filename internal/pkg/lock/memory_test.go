package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_AcquireRelease(t *testing.T) {
	// Arrange
	ctx := context.Background()
	m := NewMemory()

	// Act
	release, err := m.Acquire(ctx, "otp:phone:app-1", time.Second)
	require.NoError(t, err)

	_, errBusy := m.Acquire(ctx, "otp:phone:app-1", time.Second)
	_, errOther := m.Acquire(ctx, "otp:email:app-1", time.Second)

	require.NoError(t, release(ctx))
	releaseAgain, errAfter := m.Acquire(ctx, "otp:phone:app-1", time.Second)

	// Assert
	assert.ErrorIs(t, errBusy, ErrLocked)
	assert.NoError(t, errOther)
	assert.NoError(t, errAfter)
	assert.NoError(t, releaseAgain(ctx))
}

func TestMemory_LeaseExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return now }

	staleRelease, err := m.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	now = now.Add(2 * time.Second)
	_, err = m.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	// the stale holder must not drop the new lease
	require.NoError(t, staleRelease(ctx))
	_, err = m.Acquire(ctx, "k", time.Second)
	assert.ErrorIs(t, err, ErrLocked)
}

func TestMemory_SingleWinner(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for range 32 {
		wg.Go(func() {
			if _, err := m.Acquire(ctx, "same", time.Minute); err == nil {
				wins.Add(1)
			}
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestMemory_InvalidTTL(t *testing.T) {
	_, err := NewMemory().Acquire(context.Background(), "k", 0)
	assert.ErrorIs(t, err, ErrInvalidTTL)
}
