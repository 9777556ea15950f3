package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGuard(t *testing.T) (*RegistrationGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRegistrationGuard(client), mr
}

func TestLockKey(t *testing.T) {
	if got := lockKey(12, 7); got != "registro:lock:12:7" {
		t.Fatalf("unexpected key: %s", got)
	}
	if lockKey(1, 23) == lockKey(12, 3) {
		t.Fatalf("keys for different pairs must differ")
	}
}

func TestRegistrationGuard_LockAndRelease(t *testing.T) {
	g, mr := newTestGuard(t)
	key := lockKey(5, 9)

	release, err := g.Lock(context.Background(), 5, 9)
	require.NoError(t, err)
	assert.True(t, mr.Exists(key))
	assert.Equal(t, lockTTL, mr.TTL(key))

	release()
	assert.False(t, mr.Exists(key))
}

func TestRegistrationGuard_SecondLockWaitsForRelease(t *testing.T) {
	g, _ := newTestGuard(t)

	release, err := g.Lock(context.Background(), 1, 2)
	require.NoError(t, err)

	acquired := make(chan func(), 1)
	go func() {
		rel, err := g.Lock(context.Background(), 1, 2)
		if err != nil {
			close(acquired)
			return
		}
		acquired <- rel
	}()

	select {
	case <-acquired:
		t.Fatal("second Lock returned while the pair was held")
	case <-time.After(150 * time.Millisecond):
	}

	release()

	select {
	case rel, ok := <-acquired:
		require.True(t, ok, "second Lock failed")
		rel()
	case <-time.After(2 * time.Second):
		t.Fatal("second Lock never acquired after release")
	}
}

func TestRegistrationGuard_DifferentPairsDoNotContend(t *testing.T) {
	g, _ := newTestGuard(t)

	releaseA, err := g.Lock(context.Background(), 1, 2)
	require.NoError(t, err)
	defer releaseA()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	releaseB, err := g.Lock(ctx, 1, 3)
	require.NoError(t, err)
	releaseB()
}

func TestRegistrationGuard_ReleaseKeepsForeignLock(t *testing.T) {
	g, mr := newTestGuard(t)
	key := lockKey(3, 4)

	staleRelease, err := g.Lock(context.Background(), 3, 4)
	require.NoError(t, err)

	// The first holder outlives its TTL and another request takes the pair.
	mr.FastForward(lockTTL + time.Second)
	require.False(t, mr.Exists(key))

	release, err := g.Lock(context.Background(), 3, 4)
	require.NoError(t, err)
	holder, err := mr.Get(key)
	require.NoError(t, err)

	staleRelease()
	got, err := mr.Get(key)
	require.NoError(t, err, "stale release deleted the current holder's lock")
	assert.Equal(t, holder, got)

	release()
	assert.False(t, mr.Exists(key))
}

func TestRegistrationGuard_LockHonoursContext(t *testing.T) {
	g, _ := newTestGuard(t)

	release, err := g.Lock(context.Background(), 8, 8)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 80*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err = g.Lock(ctx, 8, 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestRegistrationGuard_LockFailsWhenRedisIsDown(t *testing.T) {
	g, mr := newTestGuard(t)
	mr.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := g.Lock(ctx, 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registration lock")
}
