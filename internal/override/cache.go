package override

import "sync"

// cache is an in-process index from override id to the parameters it was
// created with. It is a latency optimization only: deletion works from
// filters alone, so losing the index on restart is harmless.
type cache struct {
	mu      sync.RWMutex
	entries map[string]CreateInput
}

func newCache() *cache {
	return &cache{entries: make(map[string]CreateInput)}
}

func (c *cache) put(input CreateInput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[input.OverrideID] = input
}

func (c *cache) get(overrideID string) (CreateInput, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	input, ok := c.entries[overrideID]
	return input, ok
}

func (c *cache) remove(overrideID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, overrideID)
}
