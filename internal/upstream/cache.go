package upstream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/username/vacation-calendar/internal/holidays"
	"go.uber.org/zap"
)

const (
	defaultCacheSize = 10
	defaultCacheTTL  = 24 * time.Hour
)

// CachedProvider memoizes successful responses of another provider in a
// bounded LRU. Failures are never cached.
type CachedProvider struct {
	next   Provider
	cache  *expirable.LRU[string, *holidays.Response]
	logger *zap.Logger
}

// NewCachedProvider wraps next with an LRU of size entries expiring after ttl
func NewCachedProvider(next Provider, size int, ttl time.Duration, logger *zap.Logger) *CachedProvider {
	if size <= 0 {
		size = defaultCacheSize
	}
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return &CachedProvider{
		next:   next,
		cache:  expirable.NewLRU[string, *holidays.Response](size, nil, ttl),
		logger: logger,
	}
}

// Holidays returns the cached response or asks the wrapped provider
func (cp *CachedProvider) Holidays(ctx context.Context, country string, year int) (*holidays.Response, error) {
	key := fmt.Sprintf("%s/%d", strings.ToUpper(country), year)

	if resp, ok := cp.cache.Get(key); ok {
		cp.logger.Debug("Using cached holidays", zap.String("key", key))
		return resp, nil
	}

	resp, err := cp.next.Holidays(ctx, country, year)
	if err != nil {
		return nil, err
	}

	cp.cache.Add(key, resp)
	return resp, nil
}

// Len returns the number of cached entries
func (cp *CachedProvider) Len() int {
	return cp.cache.Len()
}

// ClearCache clears the cache
func (cp *CachedProvider) ClearCache() {
	cp.cache.Purge()
	cp.logger.Info("Holiday cache cleared")
}
