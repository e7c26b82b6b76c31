package cache

import (
	"github.com/blueselfcheckout/backend/internal/domain/catalog"
	"github.com/blueselfcheckout/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ProductCacheFactory creates product caches based on configuration
type ProductCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ProductCacheFactoryOption is a functional option for configuring the factory
type ProductCacheFactoryOption func(*ProductCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ProductCacheFactoryOption {
	return func(f *ProductCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to an in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ProductCacheFactoryOption {
	return func(f *ProductCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewProductCacheFactory creates a new factory
func NewProductCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...ProductCacheFactoryOption) *ProductCacheFactory {
	f := &ProductCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create returns the configured cache and a release function for shutdown.
func (f *ProductCacheFactory) Create() (catalog.ProductCache, func(), error) {
	if !f.cacheConfig.Enabled {
		f.logger.Info("product cache disabled")
		return NopProductCache{}, func() {}, nil
	}

	if f.cacheConfig.Backend == "redis" {
		rc, err := NewRedisProductCache(RedisConfig{
			Addr:     f.redisConfig.Addr(),
			Password: f.redisConfig.Password,
			DB:       f.redisConfig.DB,
		}, f.cacheConfig.KeyPrefix, f.cacheConfig.TTL)
		if err == nil {
			f.logger.Info("using Redis product cache", zap.String("addr", f.redisConfig.Addr()))
			return rc, func() { _ = rc.Close() }, nil
		}
		if !f.allowInMemoryFallback {
			return nil, nil, err
		}
		f.logger.Warn("Redis unavailable, falling back to in-memory product cache. "+
			"Invalidations will not reach other instances.",
			zap.Error(err),
		)
	}

	mc := NewInMemoryProductCache(
		WithInMemoryTTL(f.cacheConfig.TTL),
		WithInMemoryLogger(f.logger),
	)
	return mc, mc.Stop, nil
}
