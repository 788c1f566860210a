package storage

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"microarchive/internal/archive"
	"microarchive/internal/contextutil"
)

const (
	DefaultListingTTL  = time.Hour
	defaultListingSize = 128
)

// CachedLister memoizes ListItems of the wrapped store per prefix. Every
// other ObjectStore method passes through.
type CachedLister struct {
	ObjectStore
	cache *expirable.LRU[string, []archive.Item]
}

// NewCachedLister wraps store. A ttl <= 0 selects DefaultListingTTL.
func NewCachedLister(store ObjectStore, ttl time.Duration) *CachedLister {
	if ttl <= 0 {
		ttl = DefaultListingTTL
	}
	return &CachedLister{
		ObjectStore: store,
		cache:       expirable.NewLRU[string, []archive.Item](defaultListingSize, nil, ttl),
	}
}

func (c *CachedLister) ListItems(ctx context.Context, prefix string) ([]archive.Item, error) {
	logger := getLogger(ctx)
	if items, ok := c.cache.Get(prefix); ok {
		logger.DebugContext(ctx, "listing cache hit", "prefix", prefix, "items", len(items))
		return slices.Clone(items), nil
	}

	items, err := c.ObjectStore.ListItems(ctx, prefix)
	if err != nil {
		return nil, err
	}
	c.cache.Add(prefix, slices.Clone(items))
	logger.DebugContext(ctx, "listing cached", "prefix", prefix, "items", len(items))
	return items, nil
}

// Invalidate drops the cached listing of prefix.
func (c *CachedLister) Invalidate(prefix string) {
	c.cache.Remove(prefix)
}

// Ping forwards to the wrapped store when it supports it.
func (c *CachedLister) Ping(ctx context.Context) error {
	if p, ok := c.ObjectStore.(interface{ Ping(context.Context) error }); ok {
		return p.Ping(ctx)
	}
	return nil
}

func getLogger(ctx context.Context) *slog.Logger {
	return contextutil.LoggerFromContext(ctx)
}
