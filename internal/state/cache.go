package state

import "sync"

// Cache holds lightweight shared state for the MCP session.
type Cache struct {
	mu         sync.RWMutex
	lastSearch string
	lastIssue  int
}

// NewCache creates a Cache.
func NewCache() *Cache {
	return &Cache{}
}

// SetLastSearch stores the last search term.
func (c *Cache) SetLastSearch(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSearch = term
}

// LastSearch retrieves the previous search term.
func (c *Cache) LastSearch() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSearch
}

// SetLastIssue records the issue number most recently touched. Non-positive
// numbers are ignored.
func (c *Cache) SetLastIssue(number int) {
	if number <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastIssue = number
}

// LastIssue returns the issue number most recently touched, or 0.
func (c *Cache) LastIssue() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastIssue
}

// ResolveIssue returns number, or the last issue touched when number is 0.
func (c *Cache) ResolveIssue(number int) (int, bool) {
	if number > 0 {
		return number, true
	}
	last := c.LastIssue()
	return last, last > 0
}
