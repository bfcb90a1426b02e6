package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"fintrack/internal/domain"
)

// SummaryCache guarda resúmenes de movimientos por usuario.
type SummaryCache interface {
	Get(userID string) (domain.Summary, bool)
	Set(userID string, summary domain.Summary, ttl time.Duration)
	Invalidate(userID string)
}

type memorySummaryCache struct {
	mu    sync.Mutex
	items map[string]cachedSummary
}

type cachedSummary struct {
	summary   domain.Summary
	expiresAt time.Time
}

func NewMemorySummaryCache() SummaryCache {
	return &memorySummaryCache{
		items: make(map[string]cachedSummary),
	}
}

func (c *memorySummaryCache) Get(userID string) (domain.Summary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	item, ok := c.items[userID]
	if !ok {
		return domain.Summary{}, false
	}
	if time.Now().UTC().After(item.expiresAt) {
		delete(c.items, userID)
		return domain.Summary{}, false
	}
	return item.summary, true
}

func (c *memorySummaryCache) Set(userID string, summary domain.Summary, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if strings.TrimSpace(userID) == "" {
		return
	}
	c.items[userID] = cachedSummary{
		summary:   summary,
		expiresAt: time.Now().UTC().Add(ttl),
	}
}

func (c *memorySummaryCache) Invalidate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, userID)
}

type redisSummaryCache struct {
	client *redis.Client
	prefix string
}

func NewRedisSummaryCache(client *redis.Client) SummaryCache {
	if client == nil {
		return nil
	}
	return &redisSummaryCache{
		client: client,
		prefix: "tx:summary:",
	}
}

func (c *redisSummaryCache) Get(userID string) (domain.Summary, bool) {
	if strings.TrimSpace(userID) == "" {
		return domain.Summary{}, false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	payload, err := c.client.Get(ctx, c.prefix+userID).Bytes()
	if err != nil {
		return domain.Summary{}, false
	}
	var s domain.Summary
	if err := json.Unmarshal(payload, &s); err != nil {
		return domain.Summary{}, false
	}
	return s, true
}

func (c *redisSummaryCache) Set(userID string, summary domain.Summary, ttl time.Duration) {
	if strings.TrimSpace(userID) == "" {
		return
	}
	payload, err := json.Marshal(summary)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, c.prefix+userID, payload, ttl).Err()
}

func (c *redisSummaryCache) Invalidate(userID string) {
	if strings.TrimSpace(userID) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_ = c.client.Del(ctx, c.prefix+userID).Err()
}
