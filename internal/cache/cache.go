package cache

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/LJTian/MideastHub/internal/aggregator"
	"github.com/LJTian/MideastHub/internal/source"
	"github.com/redis/go-redis/v9"
)

const redisKey = "news:aggregate:full"

// Cache 持有最近一次完整聚合结果。内存条目是权威，配置了 Redis 时
// 再写一份短 TTL 的 JSON，用于进程重启后的冷启动兜底
type Cache struct {
	mu       sync.RWMutex
	entry    *entry
	ttl      time.Duration
	rdb      *redis.Client
	registry *source.Registry
}

type entry struct {
	result   *aggregator.Result
	storedAt time.Time
}

func New(ttl time.Duration, redisAddr string, registry *source.Registry) *Cache {
	c := &Cache{ttl: ttl, registry: registry}

	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("warn: redis ping failed: %v", err)
		}
		c.rdb = rdb
	}

	return c
}

// Get 返回未过期的聚合结果；内存没有或已过期时再查一次 Redis
func (c *Cache) Get(ctx context.Context) (*aggregator.Result, bool) {
	c.mu.RLock()
	if c.entry != nil && time.Since(c.entry.storedAt) < c.ttl {
		res := c.entry.result
		c.mu.RUnlock()
		return res, true
	}
	c.mu.RUnlock()

	if c.rdb == nil {
		return nil, false
	}

	// L2：别的进程可能刚刷新过
	bs, err := c.rdb.Get(ctx, redisKey).Bytes()
	if err != nil {
		return nil, false
	}
	var res aggregator.Result
	if err := json.Unmarshal(bs, &res); err != nil {
		log.Printf("warn: drop corrupt cache blob: %v", err)
		return nil, false
	}
	if time.Since(res.LastUpdated) >= c.ttl {
		return nil, false
	}
	c.rebindSources(&res)

	c.mu.Lock()
	c.entry = &entry{result: &res, storedAt: res.LastUpdated}
	c.mu.Unlock()
	return &res, true
}

// Set 整体替换缓存条目；结果在发布前已完整构建，读方看不到半成品
func (c *Cache) Set(ctx context.Context, res *aggregator.Result) {
	c.mu.Lock()
	c.entry = &entry{result: res, storedAt: time.Now()}
	c.mu.Unlock()

	if c.rdb == nil {
		return
	}
	if bs, err := json.Marshal(res); err == nil {
		if err := c.rdb.Set(ctx, redisKey, bs, c.ttl).Err(); err != nil {
			log.Printf("warn: redis set failed: %v", err)
		}
	}
}

// Invalidate 清空缓存，下一次读取必然触发完整聚合
func (c *Cache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.entry = nil
	c.mu.Unlock()

	if c.rdb != nil {
		if err := c.rdb.Del(ctx, redisKey).Err(); err != nil {
			log.Printf("warn: redis del failed: %v", err)
		}
	}
}

// rebindSources 反序列化后把文章和源列表重新指回注册表对象，
// 保持"文章持有源引用而非副本"的关系
func (c *Cache) rebindSources(res *aggregator.Result) {
	if c.registry == nil {
		return
	}
	for _, a := range res.Articles {
		if a.Source == nil {
			continue
		}
		if s, ok := c.registry.ByID(a.Source.ID); ok {
			a.Source = s
		}
	}
	for i, s := range res.Sources {
		if s == nil {
			continue
		}
		if reg, ok := c.registry.ByID(s.ID); ok {
			res.Sources[i] = reg
		}
	}
}
