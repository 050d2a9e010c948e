package mocks

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/AhmadAkmal83/jwt-sandbox/domain"
)

// MockRedisClient implements the Redis subset used by the per-user
// refresh-token creation lock
type MockRedisClient struct {
	SetNXFunc func(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	EvalFunc  func(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// NewMockRedisClient creates a new mock Redis client whose lock always
// acquires and releases successfully
func NewMockRedisClient() *MockRedisClient {
	return &MockRedisClient{}
}

// SetNX mocks Redis SETNX
func (m *MockRedisClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, expiration)
	}
	cmd := redis.NewBoolCmd(ctx, "setnx", key, value)
	cmd.SetVal(true)
	return cmd
}

// Eval mocks Redis EVAL for the lock release script
func (m *MockRedisClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	if m.EvalFunc != nil {
		return m.EvalFunc(ctx, script, keys, args...)
	}
	cmd := redis.NewCmd(ctx, "eval", script)
	cmd.SetVal(int64(1))
	return cmd
}

// Compile-time interface compliance verification
var _ domain.LockClient = (*MockRedisClient)(nil)
