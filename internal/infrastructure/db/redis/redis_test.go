package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, defaultPoolSize, client.Options().PoolSize)
	assert.Equal(t, defaultTimeout, client.Options().ReadTimeout)
}

func TestConnect_RequiresPassword(t *testing.T) {
	mr := miniredis.RunT(t)
	mr.RequireAuth("secreto")

	_, err := Connect(context.Background(), Config{Addr: mr.Addr(), Timeout: time.Second})
	require.Error(t, err)

	client, err := Connect(context.Background(), Config{Addr: mr.Addr(), Password: "secreto", Timeout: time.Second})
	require.NoError(t, err)
	_ = client.Close()
}

func TestConnect_EmptyAddr(t *testing.T) {
	_, err := Connect(context.Background(), Config{})
	assert.Error(t, err)
}
