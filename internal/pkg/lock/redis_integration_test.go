//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedis_AcquireRelease(t *testing.T) {
	ctx := context.Background()

	ctr, err := tcredis.Run(ctx, "redis:7-alpine")
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	uri, err := ctr.ConnectionString(ctx)
	require.NoError(t, err)
	opt, err := redis.ParseURL(uri)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	t.Cleanup(func() { _ = client.Close() })

	l := NewRedis(client)

	// Act
	release, err := l.Acquire(ctx, "otp:phone:app-1", 5*time.Second)
	require.NoError(t, err)
	_, errBusy := l.Acquire(ctx, "otp:phone:app-1", 5*time.Second)
	require.NoError(t, release(ctx))
	_, errAfter := l.Acquire(ctx, "otp:phone:app-1", 5*time.Second)

	// Assert
	assert.ErrorIs(t, errBusy, ErrLocked)
	assert.NoError(t, errAfter)
}
