// Package query memoizes server state under stable keys. Staleness is
// driven entirely by mutation-triggered invalidation; there is no TTL.
package query

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache keys, one per cached collection/resource.
const (
	KeyAccounts       = "accounts"
	KeyCategories     = "categories"
	KeyTransactions   = "transactions"
	KeyBudgets        = "budgets"
	KeyGoals          = "goals"
	KeyDashboardStats = "dashboard-stats"
)

// Fetch loads a collection from the remote API on a cache miss.
type Fetch func(ctx context.Context) (any, error)

// Cache is a keyed server-state cache. Overlapping reads of the same
// key share one in-flight fetch; a failed fetch leaves any previously
// stored value in place so callers can keep showing it with an error
// state.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*entry
	gens    map[string]uint64
	group   singleflight.Group
}

type entry struct {
	value any
	stale bool
}

func New() *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		gens:    make(map[string]uint64),
	}
}

// Read returns the cached value for key when present and fresh,
// otherwise runs fetch, stores the result, and returns it.
func (c *Cache) Read(ctx context.Context, key string, fetch Fetch) (any, error) {
	c.mu.Lock()
	if e, ok := c.entries[key]; ok && !e.stale {
		v := e.value
		c.mu.Unlock()
		return v, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent flight may have stored a fresh value between the
		// check above and joining the group.
		c.mu.Lock()
		if e, ok := c.entries[key]; ok && !e.stale {
			v := e.value
			c.mu.Unlock()
			return v, nil
		}
		gen := c.gens[key]
		c.mu.Unlock()

		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		// An invalidation may have landed while the fetch ran; its
		// result predates the mutation and must not read as fresh.
		c.entries[key] = &entry{value: v, stale: c.gens[key] != gen}
		c.mu.Unlock()
		return v, nil
	})
	return v, err
}

// Invalidate marks the given keys stale, forcing the next Read to
// re-fetch. Repeated invalidations before that read collapse into a
// single re-fetch. The stored value is kept for Peek.
func (c *Cache) Invalidate(keys ...string) {
	c.mu.Lock()
	for _, key := range keys {
		if e, ok := c.entries[key]; ok {
			e.stale = true
		}
		c.gens[key]++
		// Don't let a later read join a fetch that started before this
		// invalidation.
		c.group.Forget(key)
	}
	c.mu.Unlock()
}

// Peek returns the last stored value for key, fresh or stale, without
// fetching.
func (c *Cache) Peek(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok {
		return e.value, true
	}
	return nil, false
}

// Stale reports whether key holds a value that has been invalidated.
func (c *Cache) Stale(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && e.stale
}

// ReadAs is the typed front door to Cache.Read.
func ReadAs[T any](ctx context.Context, c *Cache, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	v, err := c.Read(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}
