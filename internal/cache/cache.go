// Package cache is an explicit memoization cache: string key to byte value,
// bounded, oldest entry evicted first. Callers build keys from the arguments
// that determine the cached bytes.
package cache

import (
	"sync"
)

type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[string][]byte
	order   []string // insertion order, oldest first
}

// New returns a cache holding at most max entries. max < 1 means 1.
func New(max int) *Cache {
	if max < 1 {
		max = 1
	}
	return &Cache{max: max, entries: map[string][]byte{}}
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	v, ok := c.entries[key]
	c.mu.Unlock()
	return v, ok
}

func (c *Cache) Put(key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = value
	for len(c.entries) > c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
