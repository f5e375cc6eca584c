package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"curator-llm/internal/domain"
)

// BundleCache persiste el AnalysisBundle por usuario.
// No hay expiracion por tiempo: un bundle calculado hace meses sigue siendo
// valido y se restaura tal cual, aunque existan items nuevos. La unica via
// para vaciarlo es Invalidate (decision de producto: recomputar cuesta mas
// que la obsolescencia).
type BundleCache interface {
	Save(ctx context.Context, userID string, bundle domain.AnalysisBundle) error
	Load(ctx context.Context, userID string) (domain.AnalysisBundle, bool, error)
	Invalidate(ctx context.Context, userID string) error
}

type memoryBundleCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

// NewMemoryBundleCache sirve para tests y despliegues sin Redis.
// Guarda la representacion serializada, igual que el backend durable.
func NewMemoryBundleCache() BundleCache {
	return &memoryBundleCache{
		items: make(map[string][]byte),
	}
}

func (c *memoryBundleCache) Save(_ context.Context, userID string, bundle domain.AnalysisBundle) error {
	if strings.TrimSpace(userID) == "" {
		return nil
	}
	raw, err := json.Marshal(bundle)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[userID] = raw
	return nil
}

func (c *memoryBundleCache) Load(_ context.Context, userID string) (domain.AnalysisBundle, bool, error) {
	c.mu.Lock()
	raw, ok := c.items[userID]
	c.mu.Unlock()
	if !ok {
		return domain.AnalysisBundle{}, false, nil
	}
	var bundle domain.AnalysisBundle
	if err := json.Unmarshal(raw, &bundle); err != nil {
		// Representacion corrupta se trata como cache miss.
		return domain.AnalysisBundle{}, false, err
	}
	return bundle, true, nil
}

func (c *memoryBundleCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
	return nil
}
