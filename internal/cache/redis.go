package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/sahayak-backend/internal/config"
	"github.com/yungbote/sahayak-backend/internal/platform/logger"
)

const keyPrefix = "sahayak:flow:"

type Redis struct {
	log *logger.Logger
	rdb *goredis.Client
}

// NewRedis connects and pings the configured server.
func NewRedis(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (*Redis, error) {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, fmt.Errorf("missing cache.redis_addr")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.RedisPassword,
		DB:          cfg.RedisDB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &Redis{log: log.With("component", "cache"), rdb: rdb}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := r.rdb.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return r.rdb.Set(ctx, keyPrefix+key, val, ttl).Err()
}

func (r *Redis) Close() error {
	return r.rdb.Close()
}

// New returns a Redis cache when an address is configured, otherwise Noop.
func New(ctx context.Context, cfg config.CacheConfig, log *logger.Logger) (Cache, func() error, error) {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return Noop{}, func() error { return nil }, nil
	}
	r, err := NewRedis(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	log.Info("flow result cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.TTL.Duration)
	return r, r.Close, nil
}
