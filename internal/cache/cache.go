// Package cache provides an in-process LRU used to memoize computed reports.
package cache

// Cache defines a generic cache interface
type Cache[K comparable, V any] interface {
	// Get retrieves a value from the cache
	Get(key K) (V, bool)

	// Set stores a value in the cache
	Set(key K, value V)
}
