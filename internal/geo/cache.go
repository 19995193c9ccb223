package geo

import (
	"container/list"
	"context"
	"strings"
	"sync"
)

// CachedResolver wraps a Resolver with an in-memory LRU cache. City
// lookups are stable for far longer than a process lives, so successful
// resolutions are cached indefinitely; not-found and transient errors are
// never cached so they can be retried.
type CachedResolver struct {
	inner      Resolver
	maxEntries int

	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front = most recently used
}

type cacheEntry struct {
	key   string
	place Place
}

func NewCachedResolver(inner Resolver, maxEntries int) *CachedResolver {
	if maxEntries <= 0 {
		maxEntries = 128
	}
	return &CachedResolver{
		inner:      inner,
		maxEntries: maxEntries,
		entries:    make(map[string]*list.Element),
		order:      list.New(),
	}
}

func (c *CachedResolver) Resolve(ctx context.Context, city string) (Place, error) {
	key := strings.ToLower(strings.TrimSpace(city))

	if place, ok := c.get(key); ok {
		return place, nil
	}

	place, err := c.inner.Resolve(ctx, city)
	if err != nil {
		return Place{}, err
	}

	c.put(key, place)
	return place, nil
}

func (c *CachedResolver) get(key string) (Place, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return Place{}, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).place, true
}

func (c *CachedResolver) put(key string, place Place) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).place = place
		c.order.MoveToFront(el)
		return
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, place: place})

	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
}
