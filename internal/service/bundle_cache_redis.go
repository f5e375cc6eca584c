package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/redis/go-redis/v9"

	"curator-llm/internal/domain"
)

type redisBundleCache struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	mirror map[string][]byte
}

// NewRedisBundleCache construye la cache durable sobre Redis con un espejo
// en memoria. Las claves no llevan TTL a proposito.
func NewRedisBundleCache(client *redis.Client) BundleCache {
	if client == nil {
		return nil
	}
	return &redisBundleCache{
		client: client,
		prefix: "curator:bundle:",
		mirror: make(map[string][]byte),
	}
}

func (c *redisBundleCache) Save(ctx context.Context, userID string, bundle domain.AnalysisBundle) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.mirror[userID] = raw
	c.mu.Unlock()
	// TTL 0: sin expiracion por tiempo.
	return c.client.Set(ctx, c.prefix+userID, raw, 0).Err()
}

func (c *redisBundleCache) Load(ctx context.Context, userID string) (domain.AnalysisBundle, bool, error) {
	c.mu.Lock()
	raw, ok := c.mirror[userID]
	c.mu.Unlock()

	if !ok {
		stored, err := c.client.Get(ctx, c.prefix+userID).Bytes()
		if errors.Is(err, redis.Nil) {
			return domain.AnalysisBundle{}, false, nil
		}
		if err != nil {
			return domain.AnalysisBundle{}, false, err
		}
		raw = stored
		c.mu.Lock()
		c.mirror[userID] = raw
		c.mu.Unlock()
	}

	var bundle domain.AnalysisBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return domain.AnalysisBundle{}, false, err
	}
	return bundle, true, nil
}

func (c *redisBundleCache) Invalidate(ctx context.Context, userID string) error {
	c.mu.Lock()
	delete(c.mirror, userID)
	c.mu.Unlock()
	return c.client.Del(ctx, c.prefix+userID).Err()
}
