package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Cache is a read-through TTL cache for third-party API responses
// (weather and commodity lookups). It never caches identities or
// tokens. A nil *Cache is valid and means caching is disabled.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

// New connects to redis at addr, or returns nil (caching disabled) when
// addr is empty or the server is unreachable.
func New(addr, password string, db int, ttl time.Duration, log *logrus.Logger) *Cache {
	if addr == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("redis unreachable, response cache disabled")
		return nil
	}

	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func NewWithClient(rdb *redis.Client, ttl time.Duration, log *logrus.Logger) *Cache {
	return &Cache{rdb: rdb, ttl: ttl, log: log}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Warn("cache get failed")
		}
		return nil, false
	}
	return val, true
}

func (c *Cache) Set(ctx context.Context, key string, val []byte) {
	if c == nil {
		return
	}
	if err := c.rdb.Set(ctx, key, val, c.ttl).Err(); err != nil {
		c.log.WithError(err).Warn("cache set failed")
	}
}
