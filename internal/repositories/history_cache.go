package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"nest/internal/models"
	"nest/internal/structures"
)

const (
	defaultHistoryLimit = 20
	defaultHistoryTTL   = 24 * time.Hour
)

// HistoryCacheInterface keeps the most recent turns of each chat session.
type HistoryCacheInterface interface {
	Append(ctx context.Context, sessionID int64, msgs ...models.HistoryMessage) error
	Recent(ctx context.Context, sessionID int64) ([]models.HistoryMessage, error)
	Drop(ctx context.Context, sessionID int64) error
}

func historyKey(sessionID int64) string {
	return fmt.Sprintf("nest:chat:%d:history", sessionID)
}

// NewHistoryCache uses redis when client is set and an in-process map
// otherwise.
func NewHistoryCache(client *redis.Client, conf *structures.Config) HistoryCacheInterface {
	limit := conf.Redis.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	ttl := conf.Redis.HistoryTTL
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	if client == nil {
		return NewMemoryHistoryCache(limit)
	}
	return &RedisHistoryCache{client: client, limit: limit, ttl: ttl}
}

type RedisHistoryCache struct {
	client *redis.Client
	limit  int
	ttl    time.Duration
}

func (c *RedisHistoryCache) Append(ctx context.Context, sessionID int64, msgs ...models.HistoryMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	values := make([]any, 0, len(msgs))
	for _, m := range msgs {
		raw, err := json.Marshal(m)
		if err != nil {
			return err
		}
		values = append(values, raw)
	}

	key := historyKey(sessionID)
	pipe := c.client.TxPipeline()
	pipe.RPush(ctx, key, values...)
	pipe.LTrim(ctx, key, int64(-c.limit), -1)
	pipe.Expire(ctx, key, c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append chat history: %w", err)
	}
	return nil
}

func (c *RedisHistoryCache) Recent(ctx context.Context, sessionID int64) ([]models.HistoryMessage, error) {
	raw, err := c.client.LRange(ctx, historyKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read chat history: %w", err)
	}
	out := make([]models.HistoryMessage, 0, len(raw))
	for _, item := range raw {
		var m models.HistoryMessage
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (c *RedisHistoryCache) Drop(ctx context.Context, sessionID int64) error {
	return c.client.Del(ctx, historyKey(sessionID)).Err()
}

// MemoryHistoryCache is the single-process fallback.
type MemoryHistoryCache struct {
	mu      sync.Mutex
	limit   int
	history map[int64][]models.HistoryMessage
}

func NewMemoryHistoryCache(limit int) *MemoryHistoryCache {
	return &MemoryHistoryCache{limit: limit, history: make(map[int64][]models.HistoryMessage)}
}

func (c *MemoryHistoryCache) Append(_ context.Context, sessionID int64, msgs ...models.HistoryMessage) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := append(c.history[sessionID], msgs...)
	if over := len(h) - c.limit; over > 0 {
		h = append([]models.HistoryMessage(nil), h[over:]...)
	}
	c.history[sessionID] = h
	return nil
}

func (c *MemoryHistoryCache) Recent(_ context.Context, sessionID int64) ([]models.HistoryMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.HistoryMessage, len(c.history[sessionID]))
	copy(out, c.history[sessionID])
	return out, nil
}

func (c *MemoryHistoryCache) Drop(_ context.Context, sessionID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.history, sessionID)
	return nil
}
