package cache

import (
	"sort"
	"sync"
)

// LayoutCache maps layout names to their database IDs so repeated saves and
// loads skip the name lookup
type LayoutCache struct {
	mu      sync.RWMutex
	layouts map[string]uint
}

// NewLayoutCache creates a new LayoutCache
func NewLayoutCache() *LayoutCache {
	return &LayoutCache{
		layouts: make(map[string]uint),
	}
}

// Get retrieves a layout ID by name
func (c *LayoutCache) Get(name string) (uint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	id, ok := c.layouts[name]
	return id, ok
}

// Set stores a layout ID by name
func (c *LayoutCache) Set(name string, id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts[name] = id
}

// Delete removes a layout by name
func (c *LayoutCache) Delete(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.layouts, name)
}

// Names returns the cached layout names in sorted order
func (c *LayoutCache) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.layouts))
	for name := range c.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset clears all layouts from the cache
func (c *LayoutCache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.layouts = make(map[string]uint)
}
