package cache

import (
	"container/list"
	"sync"
)

// LRU cache with size-based eviction
type LRUCache[K comparable, V any] struct {
	mu      sync.Mutex
	maxSize int
	items   map[K]*list.Element
	lru     *list.List
}

var _ Cache[string, int] = (*LRUCache[string, int])(nil)

type cacheItem[K comparable, V any] struct {
	key  K
	data V
}

// NewLRUCache creates a new LRU cache. maxSize below 1 is treated as 1.
func NewLRUCache[K comparable, V any](maxSize int) *LRUCache[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRUCache[K, V]{
		maxSize: maxSize,
		items:   make(map[K]*list.Element),
		lru:     list.New(),
	}
}

// Get retrieves a value from the cache
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.items[key]
	if !exists {
		var zero V
		return zero, false
	}

	// Move to front (most recently used)
	c.lru.MoveToFront(elem)
	return elem.Value.(*cacheItem[K, V]).data, true
}

// Set stores a value in the cache
func (c *LRUCache[K, V]) Set(key K, data V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := &cacheItem[K, V]{key: key, data: data}

	if elem, exists := c.items[key]; exists {
		elem.Value = item
		c.lru.MoveToFront(elem)
		return
	}

	elem := c.lru.PushFront(item)
	c.items[key] = elem

	// Evict if over capacity
	if c.lru.Len() > c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			delete(c.items, oldest.Value.(*cacheItem[K, V]).key)
			c.lru.Remove(oldest)
		}
	}
}
