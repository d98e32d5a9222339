// Package cache is the process-local response cache used by the HTTP API.
// Entries carry an optional TTL and tags, so that every response built from
// one category can be dropped together after an import.
package cache

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// TagMasterData marks every cached master-data response. Applied imports
// drop it.
const TagMasterData = "masterdata"

// Cache is a thread-safe string-keyed store with TTL and tag invalidation.
type Cache struct {
	mu    sync.RWMutex
	items map[string]cacheItem
	tags  map[string]map[string]struct{}
	now   func() time.Time
}

type cacheItem struct {
	value     interface{}
	expiresAt time.Time
	tags      []string
}

var (
	once     sync.Once
	instance *Cache
)

// GetInstance returns the process-wide cache.
func GetInstance() *Cache {
	once.Do(func() {
		instance = NewCache()
	})
	return instance
}

func NewCache() *Cache {
	return &Cache{
		items: make(map[string]cacheItem),
		tags:  make(map[string]map[string]struct{}),
		now:   time.Now,
	}
}

// Set stores value under key. A zero ttl never expires.
func (c *Cache) Set(key string, value interface{}, ttl time.Duration, tags []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteLocked(key)
	item := cacheItem{value: value, tags: append([]string(nil), tags...)}
	if ttl > 0 {
		item.expiresAt = c.now().Add(ttl)
	}
	c.items[key] = item
	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Get returns the value for key unless it is missing or expired.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !item.expiresAt.IsZero() && c.now().After(item.expiresAt) {
		c.Delete(key)
		return nil, false
	}
	return item.value, true
}

// Delete removes key and its tag memberships.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleteLocked(key)
}

func (c *Cache) deleteLocked(key string) {
	item, ok := c.items[key]
	if !ok {
		return
	}
	delete(c.items, key)
	for _, tag := range item.tags {
		if keys, ok := c.tags[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tags, tag)
			}
		}
	}
}

// Key joins parts into a composite key.
func Key(parts ...interface{}) string {
	s := make([]string, len(parts))
	for i, p := range parts {
		s[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(s, "|")
}

// KeysByTag returns the keys currently carrying tag.
func (c *Cache) KeysByTag(tag string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	keys := make([]string, 0, len(c.tags[tag]))
	for k := range c.tags[tag] {
		keys = append(keys, k)
	}
	return keys
}

// DeleteByTag drops every entry carrying tag and returns how many went.
func (c *Cache) DeleteByTag(tag string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := c.tags[tag]
	n := 0
	for k := range keys {
		c.deleteLocked(k)
		n++
	}
	delete(c.tags, tag)
	return n
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
