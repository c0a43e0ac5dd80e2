package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis dials and pings. addr may be host:port or a redis:// URL.
func ConnectRedis(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
	if parsed, err := redis.ParseURL(addr); err == nil {
		parsed.PoolSize = opts.PoolSize
		parsed.DialTimeout = opts.DialTimeout
		parsed.ReadTimeout = opts.ReadTimeout
		parsed.WriteTimeout = opts.WriteTimeout
		if password != "" {
			parsed.Password = password
		}
		opts = parsed
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return rdb, nil
}
