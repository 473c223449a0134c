package store

import (
	"context"
	"errors"

	"github.com/dmuriuki/taskforge-api/internal/domain"
)

// ErrCacheMiss is returned by TaskPageCache.GetPage when no entry exists
// for the requested key. Any other error from the cache means the cache
// itself failed; callers must treat that the same as a miss.
var ErrCacheMiss = errors.New("cache miss")

// TaskPage is the cacheable result of one list query: the page of tasks
// plus the total matching count used for pagination metadata.
type TaskPage struct {
	Tasks []*domain.Task `json:"tasks"`
	Total int64          `json:"total"`
}

// TaskPageCache caches list-query results keyed by the exact
// (filter, page) tuple. Implementations hold entries for a bounded time
// and support coarse invalidation of the whole list namespace; per-key
// eviction is deliberately not part of the contract.
type TaskPageCache interface {
	// GetPage returns the cached page for the key, or ErrCacheMiss.
	GetPage(ctx context.Context, filter TaskFilter, page PageRequest) (*TaskPage, error)

	// SetPage stores the page under the key for the configured TTL.
	// Nil pages are never stored.
	SetPage(ctx context.Context, filter TaskFilter, page PageRequest, result *TaskPage) error

	// Invalidate marks every cached page stale. Subsequent GetPage calls
	// miss regardless of key.
	Invalidate(ctx context.Context) error
}
