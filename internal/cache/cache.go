package cache // import "github.com/Xunop/book-faker/internal/cache"

import (
	"context"
	"time"

	"github.com/Xunop/book-faker/internal/log"
	"github.com/Xunop/book-faker/internal/model"
	"github.com/Xunop/book-faker/internal/version"
	"go.uber.org/zap"
)

const keyPrefix = "books:v1:"

// PageCache stores encoded pages by request key. Generated pages are a pure
// function of the request, so entries never need invalidation.
type PageCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// Key returns the cache key of a generation request. Keys carry the minor
// version because text corpora may change between releases.
func Key(req model.GenerationRequest) string {
	return keyPrefix + generatorVersion() + ":" + req.Key()
}

func generatorVersion() string {
	if mm := version.GetMinorVersion(version.GetCurrentVersion()); mm != "" {
		return mm
	}
	return "dev"
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Noop) Set(context.Context, string, []byte) {}

// New picks the cache for the given options: redis when url is set, an
// in-process LRU when size is positive, no cache otherwise. An unreachable
// redis falls back to the LRU.
func New(ctx context.Context, url string, ttl time.Duration, size int) PageCache {
	if url != "" {
		c, err := NewRedisFromURL(ctx, url, ttl)
		if err == nil {
			log.Info("Using redis page cache", zap.Duration("ttl", ttl))
			return c
		}
		log.Warn("Redis page cache unavailable, falling back to memory", zap.Error(err))
	}

	if size > 0 {
		c, err := NewLRU(size)
		if err == nil {
			log.Info("Using in-memory page cache", zap.Int("size", size))
			return c
		}
		log.Warn("Unable to create in-memory page cache", zap.Error(err))
	}

	return Noop{}
}
