package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"anhthu_server/config"
	"anhthu_server/structs"
	"anhthu_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

const (
	productCachePrefix = "product:"
	categoryTreeKey    = "categories:tree"
	rateLimitPrefix    = "ratelimit:"
)

// CacheService provides Redis caching functionality with connection pooling and retry logic
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			// Connection pool settings
			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			// Timeouts
			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			// Retry settings
			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableRedisError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt) // exponential
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		_, err = rand.Read(jitterBytes)
		if err != nil {
			// fallback to no jitter if random fails
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))

		jitter = jitter % (backoff/2 + 1)
		backoffWithJitter := backoff/2 + jitter

		time.Sleep(time.Duration(backoffWithJitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableRedisError determines if an error is worth retrying
func isRetryableRedisError(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry on nil results (key not found)
	if err == redis.Nil {
		return false
	}

	// Retry on network/connection errors
	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic. Missing keys return ""
// without error.
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil // Don't retry on key not found
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// Exists checks if a key exists with automatic retry logic
func (cs *CacheService) Exists(key string) (bool, error) {
	var result bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// GetProductFromCache retrieves a product object from cache by id
func (cs *CacheService) GetProductFromCache(id string) (*tables.Product, error) {
	val, err := cs.Get(productCachePrefix + id)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil // not found in cache
	}

	product := &tables.Product{}
	if err := json.Unmarshal([]byte(val), product); err != nil {
		return nil, err
	}
	return product, nil
}

// CacheProduct stores a product object with the configured product TTL
func (cs *CacheService) CacheProduct(product *tables.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return cs.Set(productCachePrefix+product.ID.String(), data, cs.config.Cache.ProductTTL)
}

// InvalidateProduct drops one product's cache entry
func (cs *CacheService) InvalidateProduct(id string) error {
	return cs.Delete(productCachePrefix + id)
}

// GetCategoryTreeFromCache retrieves the cached category tree
func (cs *CacheService) GetCategoryTreeFromCache() ([]tables.Category, error) {
	val, err := cs.Get(categoryTreeKey)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}

	var tree []tables.Category
	if err := json.Unmarshal([]byte(val), &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

// CacheCategoryTree stores the category tree with the configured category TTL
func (cs *CacheService) CacheCategoryTree(tree []tables.Category) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return err
	}
	return cs.Set(categoryTreeKey, data, cs.config.Cache.CategoryTTL)
}

// InvalidateCategoryTree drops the cached category tree. Called after admin
// maintenance operations that reshape the tree.
func (cs *CacheService) InvalidateCategoryTree() error {
	return cs.Delete(categoryTreeKey)
}

// IncrementRateLimit bumps a rate-limit counter and returns the new count.
// The window TTL is set only when the key is created, so the window is fixed
// from the first request.
func (cs *CacheService) IncrementRateLimit(key string, window time.Duration) (int64, error) {
	var count int64

	err := cs.withRetry(func() error {
		pipe := cs.client.TxPipeline()
		incr := pipe.Incr(redisCtx, rateLimitPrefix+key)
		pipe.ExpireNX(redisCtx, rateLimitPrefix+key, window)
		if _, err := pipe.Exec(redisCtx); err != nil {
			return err
		}
		count = incr.Val()
		return nil
	}, 3)

	return count, err
}

// Ping checks Redis connectivity for health reporting
func (cs *CacheService) Ping(ctx context.Context) error {
	return cs.client.Ping(ctx).Err()
}
