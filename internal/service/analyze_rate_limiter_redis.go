package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// AnalyzeRateLimiter acota cuantos re-analisis puede disparar un usuario.
// El core del pipeline no aplica backpressure; este limite vive en el borde
// HTTP para que el boton de "re-analizar" no queme cuota del proveedor.
type AnalyzeRateLimiter interface {
	Allow(userID string) bool
}

const redisAnalyzeAllowScript = `
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return current
`

type redisAnalyzeRateLimiter struct {
	client redisEvaler
	window time.Duration
	max    int
	prefix string
}

type redisEvaler interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

func NewRedisAnalyzeRateLimiter(client *redis.Client, window time.Duration, max int) AnalyzeRateLimiter {
	if client == nil {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	if max <= 0 {
		max = 1
	}
	return &redisAnalyzeRateLimiter{
		client: client,
		window: window,
		max:    max,
		prefix: "curator:rl:",
	}
}

// Allow falla abierto: si Redis no responde, el analisis procede.
func (l *redisAnalyzeRateLimiter) Allow(userID string) bool {
	if l == nil || l.client == nil {
		return true
	}
	key := strings.TrimSpace(userID)
	if key == "" {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	seconds := int(l.window.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	count, err := l.client.Eval(ctx, redisAnalyzeAllowScript, []string{l.prefix + key}, seconds).Int()
	if err != nil {
		return true
	}
	return count <= l.max
}
