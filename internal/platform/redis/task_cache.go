// Package redis provides the Redis-backed implementation of the response
// cache defined in the internal/store package.
package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/dmuriuki/taskforge-api/internal/platform/logger"
	"github.com/dmuriuki/taskforge-api/internal/store"
	"github.com/redis/go-redis/v9"
)

const (
	// listNamespace prefixes every cached list page.
	listNamespace = "tasks:list"

	// versionKey holds the namespace generation counter. Invalidation
	// increments it, making every previously written key unreachable;
	// stale entries expire via their TTL.
	versionKey = "tasks:list:ver"
)

// TaskPageCache caches serialized list-query pages in Redis with a bounded
// TTL. Invalidation is coarse: one INCR of the namespace version retires
// every cached page at once. All Redis failures are reported to the caller
// as errors; the workflow treats them as cache misses.
type TaskPageCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *slog.Logger
}

// NewTaskPageCache creates a TaskPageCache on the given client.
// If ttl is non-positive, a 5-minute default is applied.
// If logger is nil, a default logger will be used.
func NewTaskPageCache(client redis.UniversalClient, ttl time.Duration, logger *slog.Logger) *TaskPageCache {
	if client == nil {
		panic("client cannot be nil")
	}

	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &TaskPageCache{
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "task_page_cache")),
	}
}

// Ensure TaskPageCache implements store.TaskPageCache interface
var _ store.TaskPageCache = (*TaskPageCache)(nil)

// GetPage implements store.TaskPageCache.GetPage
func (c *TaskPageCache) GetPage(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
) (*store.TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	key, err := c.pageKey(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrCacheMiss
		}
		return nil, fmt.Errorf("cache get failed: %w", err)
	}

	var result store.TaskPage
	if err := json.Unmarshal(payload, &result); err != nil {
		// A corrupt entry is as good as absent
		log.Warn("discarding undecodable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return nil, store.ErrCacheMiss
	}

	log.Debug("cache hit", slog.String("key", key))
	return &result, nil
}

// SetPage implements store.TaskPageCache.SetPage
func (c *TaskPageCache) SetPage(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
	result *store.TaskPage,
) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	// Absent results are never cached as valid entries
	if result == nil {
		return nil
	}

	key, err := c.pageKey(ctx, filter, page)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode page for cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set failed: %w", err)
	}

	log.Debug("cached list page",
		slog.String("key", key),
		slog.Int("items", len(result.Tasks)))
	return nil
}

// Invalidate implements store.TaskPageCache.Invalidate
// It bumps the namespace version; every key written under an older version
// will never be read again and falls out of Redis when its TTL lapses.
func (c *TaskPageCache) Invalidate(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	ver, err := c.client.Incr(ctx, versionKey).Result()
	if err != nil {
		return fmt.Errorf("cache invalidation failed: %w", err)
	}

	log.Debug("invalidated list cache", slog.Int64("version", ver))
	return nil
}

// pageKey derives the cache key for the exact (filter, page) tuple under
// the current namespace version.
func (c *TaskPageCache) pageKey(
	ctx context.Context,
	filter store.TaskFilter,
	page store.PageRequest,
) (string, error) {
	ver, err := c.client.Get(ctx, versionKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("cache version lookup failed: %w", err)
		}
		ver = "0"
	}

	return fmt.Sprintf("%s:v%s:%s", listNamespace, ver, hashPageKey(filter, page)), nil
}

// hashPageKey builds the deterministic digest of the (filter, page) tuple.
// Unset filter fields and set-but-different values must never collide, so
// each field is tagged before hashing.
func hashPageKey(filter store.TaskFilter, page store.PageRequest) string {
	page = page.Normalize()

	h := sha256.New()
	if filter.Title != nil {
		h.Write([]byte("t=" + *filter.Title + ";"))
	}
	if filter.DueDate != nil {
		h.Write([]byte("d=" + filter.DueDate.UTC().Format("2006-01-02") + ";"))
	}
	h.Write([]byte("p=" + strconv.Itoa(page.Number) + ";"))
	h.Write([]byte("s=" + strconv.Itoa(page.Size)))

	return hex.EncodeToString(h.Sum(nil))
}
