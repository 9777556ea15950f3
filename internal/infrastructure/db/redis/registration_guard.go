package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	lockTTL       = 10 * time.Second
	retryInterval = 25 * time.Millisecond
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was taken by another request is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RegistrationGuard serialises registration attempts for the same
// (vecino, evento) pair across server instances.
// Key format: registro:lock:<vecino_id>:<evento_id>
type RegistrationGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRegistrationGuard creates a RegistrationGuard wrapping the given Redis client.
func NewRegistrationGuard(client *redis.Client) *RegistrationGuard {
	return &RegistrationGuard{client: client, ttl: lockTTL}
}

// Lock acquires the pair lock, retrying until it is free or ctx is done.
// The returned func releases it.
func (g *RegistrationGuard) Lock(ctx context.Context, vecinoID, eventoID int64) (func(), error) {
	key := lockKey(vecinoID, eventoID)
	token := uuid.NewString()

	for {
		ok, err := g.client.SetNX(ctx, key, token, g.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("registration lock: %w", err)
		}
		if ok {
			return func() {
				// The request context may already be cancelled here.
				relCtx, cancel := context.WithTimeout(context.Background(), time.Second)
				defer cancel()
				_ = releaseScript.Run(relCtx, g.client, []string{key}, token).Err()
			}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("registration lock: %w", ctx.Err())
		case <-time.After(retryInterval):
		}
	}
}

func lockKey(vecinoID, eventoID int64) string {
	return fmt.Sprintf("registro:lock:%d:%d", vecinoID, eventoID)
}
