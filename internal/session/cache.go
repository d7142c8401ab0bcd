// Package session provides request-coalesced, in-memory caches for
// per-session singletons such as the current user and the active route.
package session

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes one value per key with single-flight semantics: concurrent
// callers of a cold key share one fetch and observe the same result. Fetch
// failures are never cached, so a later call can retry.
type Cache[T any] struct {
	mu     sync.RWMutex
	values map[string]T
	group  singleflight.Group
}

// NewCache constructs an empty Cache.
func NewCache[T any]() *Cache[T] {
	return &Cache[T]{values: make(map[string]T)}
}

// Get returns the cached value for key, joining an in-flight fetch when one
// exists, or starting a new one otherwise. The fetch runs detached from the
// caller's cancellation because its result is shared; an individual caller
// that gives up still gets its own ctx error.
func (c *Cache[T]) Get(ctx context.Context, key string, fetch func(context.Context) (T, error)) (T, error) {
	c.mu.RLock()
	v, ok := c.values[key]
	c.mu.RUnlock()
	if ok {
		return v, nil
	}

	ch := c.group.DoChan(key, func() (any, error) {
		v, err := fetch(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.values[key] = v
		c.mu.Unlock()
		return v, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// Peek returns the cached value without triggering a fetch.
func (c *Cache[T]) Peek(key string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// Invalidate drops the cached value and any in-flight fetch for key, forcing
// the next Get to refetch.
func (c *Cache[T]) Invalidate(key string) {
	c.group.Forget(key)
	c.mu.Lock()
	delete(c.values, key)
	c.mu.Unlock()
}

// InvalidateAll clears every cached value.
func (c *Cache[T]) InvalidateAll() {
	c.mu.Lock()
	for key := range c.values {
		c.group.Forget(key)
		delete(c.values, key)
	}
	c.mu.Unlock()
}
