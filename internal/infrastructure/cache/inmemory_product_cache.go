package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryProductCache implements catalog.ProductCache in process memory.
// Entries are stored encoded so callers never share mutable state.
type InMemoryProductCache struct {
	entries sync.Map // map[string]*cacheEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type cacheEntry struct {
	data      []byte
	expiresAt time.Time
}

func (e *cacheEntry) isExpired(now time.Time) bool {
	return now.After(e.expiresAt)
}

// InMemoryProductCacheOption is a functional option for configuring the cache
type InMemoryProductCacheOption func(*InMemoryProductCache)

// WithInMemoryTTL sets how long entries live
func WithInMemoryTTL(ttl time.Duration) InMemoryProductCacheOption {
	return func(c *InMemoryProductCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryProductCacheOption {
	return func(c *InMemoryProductCache) {
		c.logger = logger
	}
}

// NewInMemoryProductCache creates a new in-memory cache and starts its
// cleanup goroutine. Call Stop to release it.
func NewInMemoryProductCache(opts ...InMemoryProductCacheOption) *InMemoryProductCache {
	c := &InMemoryProductCache{
		ttl:    5 * time.Minute,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}

	go c.cleanupExpired()
	return c
}

// Get returns a copy of the cached product, or nil on a miss.
func (c *InMemoryProductCache) Get(_ context.Context, itemCode string) (*catalog.ProductDetail, error) {
	if value, ok := c.entries.Load(itemCode); ok {
		entry := value.(*cacheEntry)
		if !entry.isExpired(time.Now()) {
			atomic.AddInt64(&c.hits, 1)
			return decodeDetail(entry.data)
		}
		c.entries.Delete(itemCode)
	}
	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("product cache miss", zap.String("item_code", itemCode))
	return nil, nil
}

// Set stores detail under its item code.
func (c *InMemoryProductCache) Set(_ context.Context, detail *catalog.ProductDetail) error {
	if detail == nil {
		return nil
	}
	data, err := encodeDetail(detail)
	if err != nil {
		return err
	}
	c.entries.Store(detail.Product.ItemCode, &cacheEntry{
		data:      data,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

// Invalidate drops the entry for itemCode.
func (c *InMemoryProductCache) Invalidate(_ context.Context, itemCode string) error {
	c.entries.Delete(itemCode)
	return nil
}

// Stats returns hit and miss counters.
func (c *InMemoryProductCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (c *InMemoryProductCache) Stop() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
}

func (c *InMemoryProductCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case now := <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*cacheEntry).isExpired(now) {
					c.entries.Delete(key)
				}
				return true
			})
		}
	}
}

var _ catalog.ProductCache = (*InMemoryProductCache)(nil)
