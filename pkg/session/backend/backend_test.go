package backend

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealorders/pkg/config"
	"mealorders/pkg/session/memory"
	rds "mealorders/pkg/session/redis"
)

func TestOpenMemory(t *testing.T) {
	kv, closeFn, err := Open(context.Background(), config.Config{SessionBackend: config.BackendMemory})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &memory.Store{}, kv)
}

func TestOpenRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	kv, closeFn, err := Open(context.Background(), config.Config{
		SessionBackend: config.BackendRedis,
		RedisAddr:      mr.Addr(),
	})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &rds.Store{}, kv)

	require.NoError(t, kv.Set(context.Background(), "k", "v"))
	assert.True(t, mr.Exists("k"))
}

func TestOpenRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, _, err := Open(context.Background(), config.Config{SessionBackend: config.BackendRedis, RedisAddr: addr})
	assert.ErrorContains(t, err, "pinging redis")
}
