package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

type mockRedisEvaler struct {
	lastScript string
	lastKeys   []string
	lastArgs   []interface{}
	result     int64
	err        error
}

func (m *mockRedisEvaler) Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd {
	m.lastScript = script
	m.lastKeys = keys
	m.lastArgs = args
	cmd := redis.NewCmd(ctx)
	if m.err != nil {
		cmd.SetErr(m.err)
		return cmd
	}
	cmd.SetVal(m.result)
	return cmd
}

func TestRedisAnalyzeRateLimiterAllow(t *testing.T) {
	t.Run("nil receiver fail-open", func(t *testing.T) {
		var l *redisAnalyzeRateLimiter
		if !l.Allow("user-1") {
			t.Fatalf("expected fail-open for nil limiter")
		}
	})

	t.Run("empty key rejected", func(t *testing.T) {
		l := &redisAnalyzeRateLimiter{
			client: &mockRedisEvaler{result: 1},
			window: time.Minute,
			max:    3,
			prefix: "curator:rl:",
		}
		if l.Allow("   ") {
			t.Fatalf("expected empty key to be rejected")
		}
	})

	t.Run("allow when count within max", func(t *testing.T) {
		mock := &mockRedisEvaler{result: 2}
		l := &redisAnalyzeRateLimiter{
			client: mock,
			window: 10 * time.Minute,
			max:    3,
			prefix: "curator:rl:",
		}
		if !l.Allow(" user-1 ") {
			t.Fatalf("expected allow when count <= max")
		}
		if len(mock.lastKeys) != 1 || mock.lastKeys[0] != "curator:rl:user-1" {
			t.Fatalf("unexpected key, got %+v", mock.lastKeys)
		}
		if len(mock.lastArgs) != 1 || mock.lastArgs[0] != 600 {
			t.Fatalf("expected TTL seconds=600, got %+v", mock.lastArgs)
		}
		if mock.lastScript != redisAnalyzeAllowScript {
			t.Fatalf("expected script to match")
		}
	})

	t.Run("deny when count exceeds max", func(t *testing.T) {
		l := &redisAnalyzeRateLimiter{
			client: &mockRedisEvaler{result: 4},
			window: time.Minute,
			max:    3,
			prefix: "curator:rl:",
		}
		if l.Allow("user-1") {
			t.Fatalf("expected deny when count > max")
		}
	})

	t.Run("redis error fail-open", func(t *testing.T) {
		l := &redisAnalyzeRateLimiter{
			client: &mockRedisEvaler{err: errors.New("redis down")},
			window: time.Minute,
			max:    3,
			prefix: "curator:rl:",
		}
		if !l.Allow("user-1") {
			t.Fatalf("expected fail-open on redis errors")
		}
	})
}
