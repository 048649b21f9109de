package blob

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const defaultLockTTL = 10 * time.Second

// Redis keeps the blob under one key. Writes hold a redislock on key+":lock"
// so two processes sharing the key cannot interleave.
type Redis struct {
	client  *redis.Client
	locker  *redislock.Client
	key     string
	lockTTL time.Duration
}

// NewRedis connects using the cache settings and pings the server.
func NewRedis(cfg config.CacheConfig, key string) (*Redis, error) {
	opts, err := buildRedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	ttl := time.Duration(cfg.LockTTLSecond) * time.Second
	return NewRedisWithClient(client, key, ttl), nil
}

func NewRedisWithClient(client *redis.Client, key string, lockTTL time.Duration) *Redis {
	if lockTTL <= 0 {
		lockTTL = defaultLockTTL
	}
	return &Redis{
		client:  client,
		locker:  redislock.New(client),
		key:     key,
		lockTTL: lockTTL,
	}
}

func (r *Redis) Read(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}
	return data, nil
}

func (r *Redis) Write(ctx context.Context, data []byte) error {
	lock, err := r.locker.Obtain(ctx, r.key+":lock", r.lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(100*time.Millisecond), 20),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("could not obtain lock for %s", r.key)
	}
	if err != nil {
		return fmt.Errorf("obtain lock for %s: %w", r.key, err)
	}
	defer func() {
		_ = lock.Release(context.Background())
	}()

	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func buildRedisOptions(cfg config.CacheConfig) (*redis.Options, error) {
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		return opt, nil
	}

	host := cfg.RedisHost
	if host == "" {
		host = "127.0.0.1"
	}

	port := cfg.RedisPort
	if port == "" {
		port = "6379"
	}

	return &redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, nil
}
