package database

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tripshare/tripshare/internal/config"
)

// stubRedis records the options OpenRedis builds and replaces the PING.
func stubRedis(t *testing.T, pingErr error) *redis.Options {
	t.Helper()
	origNew, origPing := newRedisClient, pingRedis
	t.Cleanup(func() {
		newRedisClient = origNew
		pingRedis = origPing
	})

	got := &redis.Options{}
	newRedisClient = func(opts *redis.Options) *redis.Client {
		*got = *opts
		return redis.NewClient(opts)
	}
	pingRedis = func(ctx context.Context, client *redis.Client) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("expected ping to run with a deadline")
		}
		return pingErr
	}
	return got
}

func TestOpenRedis_FromConfig(t *testing.T) {
	got := stubRedis(t, nil)

	cfg := config.RedisConfig{Host: "cache.internal", Port: 6380, Password: "s3cret", DB: 4, PoolSize: 20, DialTimeout: 2 * time.Second}
	db, err := OpenRedis(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if got.Addr != "cache.internal:6380" {
		t.Errorf("expected addr from config, got %s", got.Addr)
	}
	if got.Password != "s3cret" || got.DB != 4 {
		t.Errorf("expected password and db from config, got %q %d", got.Password, got.DB)
	}
	if got.PoolSize != 20 || got.MinIdleConns != 5 {
		t.Errorf("expected pool 20 with 5 idle, got %d/%d", got.PoolSize, got.MinIdleConns)
	}
	if got.DialTimeout != 2*time.Second || got.ReadTimeout != redisIOTimeout {
		t.Errorf("unexpected timeouts dial=%v read=%v", got.DialTimeout, got.ReadTimeout)
	}
}

func TestOpenRedis_DefaultsForUnsetPool(t *testing.T) {
	got := stubRedis(t, nil)

	db, err := OpenRedis(context.Background(), config.RedisConfig{Host: "localhost", Port: 6379})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if got.PoolSize != defaultRedisPoolSize || got.MinIdleConns != 2 {
		t.Errorf("expected default pool, got %d/%d", got.PoolSize, got.MinIdleConns)
	}
	if got.DialTimeout != defaultRedisDialTimeout {
		t.Errorf("expected default dial timeout, got %v", got.DialTimeout)
	}
}

func TestOpenRedis_PingFailureNamesAddress(t *testing.T) {
	stubRedis(t, errors.New("connection refused"))

	_, err := OpenRedis(context.Background(), config.RedisConfig{Host: "redis", Port: 6379})
	if err == nil {
		t.Fatal("expected ping error")
	}
	if !strings.Contains(err.Error(), "redis:6379") || !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("expected address and cause in error, got %v", err)
	}
}

func TestRedisDB_HealthUsesPing(t *testing.T) {
	stubRedis(t, errors.New("down"))

	db := &RedisDB{Client: redis.NewClient(&redis.Options{Addr: "localhost:0"})}
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := db.Health(ctx); err == nil || err.Error() != "down" {
		t.Fatalf("expected ping error, got %v", err)
	}

	var unset RedisDB
	if err := unset.Close(); err != nil {
		t.Fatalf("closing an unset client should be a no-op, got %v", err)
	}
}
