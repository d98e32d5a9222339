package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LockKey guards applied runs across processes.
const LockKey = "stoneerp:import:lock"

// DefaultLockTTL bounds how long a crashed run can hold the lock.
const DefaultLockTTL = 30 * time.Minute

// ErrRunInProgress is returned when another applied run holds the lock.
var ErrRunInProgress = errors.New("another import run is in progress")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RunLock is a held import lock. The zero value (no Redis) is a no-op.
type RunLock struct {
	client *redis.Client
	token  string
}

// AcquireRunLock takes the import lock. A nil client returns a no-op lock.
func AcquireRunLock(ctx context.Context, client *redis.Client, ttl time.Duration) (*RunLock, error) {
	if client == nil {
		return &RunLock{}, nil
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	token := uuid.NewString()
	ok, err := client.SetNX(ctx, LockKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire import lock: %w", err)
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return &RunLock{client: client, token: token}, nil
}

// Release drops the lock only if it is still ours.
func (l *RunLock) Release(ctx context.Context) error {
	if l == nil || l.client == nil {
		return nil
	}
	if err := releaseScript.Run(ctx, l.client, []string{LockKey}, l.token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release import lock: %w", err)
	}
	return nil
}
