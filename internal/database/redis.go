package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripshare/tripshare/internal/config"
)

// RedisDB holds the client behind token revocation, OAuth state and the
// auth rate limiter.
type RedisDB struct {
	Client *redis.Client
}

const (
	defaultRedisPoolSize    = 10
	defaultRedisDialTimeout = 5 * time.Second
	redisIOTimeout          = 3 * time.Second
)

var (
	newRedisClient = redis.NewClient
	pingRedis      = func(ctx context.Context, client *redis.Client) error { return client.Ping(ctx).Err() }
)

// redisOptions fills unset pool settings with defaults. A quarter of the
// pool is kept warm.
func redisOptions(cfg config.RedisConfig) *redis.Options {
	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = defaultRedisPoolSize
	}
	dialTimeout := cfg.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = defaultRedisDialTimeout
	}
	return &redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  redisIOTimeout,
		WriteTimeout: redisIOTimeout,
		PoolSize:     poolSize,
		MinIdleConns: max(1, poolSize/4),
	}
}

// OpenRedis connects and pings. The dial timeout bounds the ping on top of ctx.
func OpenRedis(ctx context.Context, cfg config.RedisConfig) (*RedisDB, error) {
	opts := redisOptions(cfg)
	client := newRedisClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := pingRedis(pingCtx, client); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("pinging redis at %s: %w", opts.Addr, err)
	}

	return &RedisDB{Client: client}, nil
}

func (r *RedisDB) Close() error {
	if r.Client == nil {
		return nil
	}
	return r.Client.Close()
}

// Health satisfies the readiness check.
func (r *RedisDB) Health(ctx context.Context) error {
	return pingRedis(ctx, r.Client)
}
