// Package cache holds recent forecast responses so repeated lookups for the
// same location are served without touching weatherapi.com.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	body      []byte
	expiresAt time.Time
}

type Cache struct {
	mu    sync.RWMutex
	items map[string]entry
	ttl   time.Duration
}

func New(ttl time.Duration) *Cache {
	return &Cache{items: make(map[string]entry), ttl: ttl}
}

// Key canonicalizes a location so "New   York" and "new york" share an entry.
func Key(location string) string {
	return strings.Join(strings.Fields(strings.ToLower(location)), " ")
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.items[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.body, true
}

func (c *Cache) Set(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = entry{body: body, expiresAt: time.Now().Add(c.ttl)}
}

// Sweep drops expired entries and reports how many were removed. Get already
// ignores stale entries; sweeping just keeps the map from growing unbounded.
func (c *Cache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	removed := 0
	for k, e := range c.items {
		if now.After(e.expiresAt) {
			delete(c.items, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
