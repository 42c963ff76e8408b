package cache

import (
	"context"
	"time"

	"github.com/Xunop/book-faker/internal/log"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis shares pages between instances. Errors are logged and treated as
// misses so a broken redis never fails a request.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// NewRedisFromURL parses a redis:// URL and checks the server is reachable.
func NewRedisFromURL(ctx context.Context, url string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(err, "invalid redis url")
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "unable to reach redis at %s", opts.Addr)
	}
	return NewRedis(client, ttl), nil
}

func (c *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn("Page cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return value, true
}

func (c *Redis) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		log.Warn("Page cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Redis) Close() error {
	return c.client.Close()
}
