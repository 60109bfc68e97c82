package lock

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a Locker backed by SET NX PX.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis returns a Redis locker; keys are stored under "lock:".
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client, prefix: "lock:"}
}

// Acquire implements Locker.
func (r *Redis) Acquire(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	if ttl <= 0 {
		return nil, ErrInvalidTTL
	}

	token, err := newToken()
	if err != nil {
		return nil, err
	}

	fk := r.prefix + key
	acquired, err := r.client.SetNX(ctx, fk, token, ttl).Result()
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, ErrLocked
	}

	return func(ctx context.Context) error {
		return releaseScript.Run(ctx, r.client, []string{fk}, token).Err()
	}, nil
}
