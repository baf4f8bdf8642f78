// Package cache is the query cache between the console and the API: list and
// detail reads are cached per resource for a short TTL, identical concurrent
// misses share one backend call, and any mutation of a resource drops its
// cached queries.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type entry struct {
	value   any
	expires time.Time
}

type QueryCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]map[string]entry
	// A load may only store its value if neither counter moved since it
	// started. Both only grow, so their sum identifies the state.
	generations map[string]uint64
	epoch       uint64

	group singleflight.Group
}

// New returns a cache whose entries live for ttl. A zero ttl disables storage
// but concurrent identical fetches are still collapsed.
func New(ttl time.Duration) *QueryCache {
	return &QueryCache{
		ttl:         ttl,
		now:         time.Now,
		entries:     make(map[string]map[string]entry),
		generations: make(map[string]uint64),
	}
}

// Fetch returns the cached value for (resource, key) or loads it with fn.
// The load is shared by every caller of the same query, so it runs detached
// from their cancellation; each caller stops waiting when its own ctx is done.
func Fetch[T any](ctx context.Context, c *QueryCache, resource, key string, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if v, ok := c.lookup(resource, key); ok {
		return v.(T), nil
	}

	gen := c.generation(resource)
	flightKey := fmt.Sprintf("%s|%d|%s", resource, gen, key)
	loadCtx := context.WithoutCancel(ctx)

	ch := c.group.DoChan(flightKey, func() (any, error) {
		value, err := fn(loadCtx)
		if err != nil {
			return nil, err
		}
		c.store(resource, key, gen, value)
		return value, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Invalidate drops every cached query of resource. Loads that were already
// running when it was called do not repopulate the cache.
func (c *QueryCache) Invalidate(resource string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, resource)
	c.generations[resource]++
}

// Clear drops everything, e.g. on logout.
func (c *QueryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.entries = make(map[string]map[string]entry)
}

// Len counts live entries.
func (c *QueryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	now := c.now()
	for _, byKey := range c.entries {
		for _, e := range byKey {
			if now.Before(e.expires) {
				n++
			}
		}
	}
	return n
}

func (c *QueryCache) lookup(resource, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[resource][key]
	if !ok {
		return nil, false
	}
	if !c.now().Before(e.expires) {
		delete(c.entries[resource], key)
		return nil, false
	}
	return e.value, true
}

func (c *QueryCache) generation(resource string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch + c.generations[resource]
}

func (c *QueryCache) store(resource, key string, gen uint64, value any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.epoch+c.generations[resource] != gen {
		return
	}
	byKey, ok := c.entries[resource]
	if !ok {
		byKey = make(map[string]entry)
		c.entries[resource] = byKey
	}
	byKey[key] = entry{value: value, expires: c.now().Add(c.ttl)}
}
