package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
)

// LRU is an in-process cache bounded by number of pages.
type LRU struct {
	pages *lru.Cache[string, []byte]
}

func NewLRU(size int) (*LRU, error) {
	pages, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to create page cache of size %d", size)
	}
	return &LRU{pages: pages}, nil
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool) {
	return c.pages.Get(key)
}

func (c *LRU) Set(_ context.Context, key string, value []byte) {
	c.pages.Add(key, value)
}

func (c *LRU) Len() int {
	return c.pages.Len()
}
