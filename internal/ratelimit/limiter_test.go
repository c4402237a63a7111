package ratelimit

import (
	"context"
	"testing"
	"time"

	"MatchServer/config"
	"MatchServer/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger.ReplaceGlobal(zap.NewNop())
	m.Run()
}

func testPolicies() config.RateLimitConfig {
	return config.RateLimitConfig{
		Policies: map[string]config.RateLimitPolicy{
			config.ActionSendMessage: {Max: 30, WindowMs: time.Minute},
			config.ActionDelete:      {Max: 1, WindowMs: 5 * time.Minute},
		},
	}
}

func TestMemoryLimiter_MaxPlusOneRejected(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testPolicies())

	for i := 0; i < 30; i++ {
		ok, err := limiter.Allow(ctx, "alice", config.ActionSendMessage)
		require.NoError(t, err)
		require.True(t, ok, "call %d should pass", i+1)
	}

	// 第 31 次触发限流
	ok, err := limiter.Allow(ctx, "alice", config.ActionSendMessage)
	require.NoError(t, err)
	assert.False(t, ok)

	// 其他用户不受影响
	ok, err = limiter.Allow(ctx, "bob", config.ActionSendMessage)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiter_WindowReset(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testPolicies())

	current := time.Now()
	limiter.now = func() time.Time { return current }

	ok, err := limiter.Allow(ctx, "alice", config.ActionDelete)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = limiter.Allow(ctx, "alice", config.ActionDelete)
	require.NoError(t, err)
	assert.False(t, ok)

	// 超过窗口长度后计数归零
	current = current.Add(5*time.Minute + time.Second)
	ok, err = limiter.Allow(ctx, "alice", config.ActionDelete)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryLimiter_UnknownActionAllowed(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testPolicies())

	for i := 0; i < 1000; i++ {
		ok, err := limiter.Allow(ctx, "alice", "unpoliced")
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestMemoryLimiter_SweepEvictsExpired(t *testing.T) {
	ctx := context.Background()
	limiter := NewMemoryLimiter(testPolicies())

	current := time.Now()
	limiter.now = func() time.Time { return current }

	_, err := limiter.Allow(ctx, "alice", config.ActionSendMessage)
	require.NoError(t, err)
	assert.Len(t, limiter.windows, 1)

	// 所有窗口都过期后，下一次清扫应回收 key 空间
	current = current.Add(10 * time.Minute)
	_, err = limiter.Allow(ctx, "bob", config.ActionSendMessage)
	require.NoError(t, err)

	limiter.mu.Lock()
	_, aliceKept := limiter.windows[config.ActionSendMessage+":alice"]
	limiter.mu.Unlock()
	assert.False(t, aliceKept)
}

func TestRedisLimiter_MaxPlusOneRejected(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisLimiter(testPolicies(), client)

	for i := 0; i < 30; i++ {
		ok, err := limiter.Allow(ctx, "alice", config.ActionSendMessage)
		require.NoError(t, err)
		require.True(t, ok, "call %d should pass", i+1)
	}

	ok, err := limiter.Allow(ctx, "alice", config.ActionSendMessage)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisLimiter_WindowReset(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	limiter := NewRedisLimiter(testPolicies(), client)

	current := time.Now()
	limiter.now = func() time.Time { return current }

	ok, err := limiter.Allow(ctx, "alice", config.ActionDelete)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = limiter.Allow(ctx, "alice", config.ActionDelete)
	require.NoError(t, err)
	assert.False(t, ok)

	current = current.Add(5*time.Minute + time.Second)
	ok, err = limiter.Allow(ctx, "alice", config.ActionDelete)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_NilClientFailOpen(t *testing.T) {
	ctx := context.Background()
	limiter := NewRedisLimiter(testPolicies(), nil)

	for i := 0; i < 100; i++ {
		ok, err := limiter.Allow(ctx, "alice", config.ActionSendMessage)
		require.NoError(t, err)
		require.True(t, ok)
	}
}
