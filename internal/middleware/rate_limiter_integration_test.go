//go:build integration

package middleware

import (
	"context"
	"testing"
	"time"

	"github.com/MartinOstios/backend-posco/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func TestRedisLimiter_FixedWindow(t *testing.T) {
	ctx := context.Background()
	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	l := NewRedisLimiter(rdb, 2, time.Second)

	for i := 0; i < 2; i++ {
		ok, _, err := l.Allow(ctx, "login:10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, retry, err := l.Allow(ctx, "login:10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Greater(t, retry, time.Duration(0))

	ok, _, err = l.Allow(ctx, "login:10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "windows are per key")

	require.Eventually(t, func() bool {
		ok, _, err := l.Allow(ctx, "login:10.0.0.1")
		return err == nil && ok
	}, 3*time.Second, 100*time.Millisecond)
}
