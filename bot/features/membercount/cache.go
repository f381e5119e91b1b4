package membercount

import (
	"sync"
	"time"
)

// Entry is the cached human member count of one guild
type Entry struct {
	HumanCount   int
	LastVerified time.Time
}

// Cache holds per-guild human member counts in process memory
type Cache struct {
	mu      sync.Mutex
	entries map[int64]Entry
}

// NewCache creates an empty cache
func NewCache() *Cache {
	return &Cache{entries: make(map[int64]Entry)}
}

// Get returns the entry for guildID
func (c *Cache) Get(guildID int64) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[guildID]
	return entry, ok
}

// Set stores a verified count
func (c *Cache) Set(guildID int64, humanCount int, verifiedAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[guildID] = Entry{HumanCount: humanCount, LastVerified: verifiedAt}
}

// Increment adds one member; guilds without an entry are left for the next recount
func (c *Cache) Increment(guildID int64) (int, bool) {
	return c.adjust(guildID, 1)
}

// Decrement removes one member, never going below zero
func (c *Cache) Decrement(guildID int64) (int, bool) {
	return c.adjust(guildID, -1)
}

func (c *Cache) adjust(guildID int64, delta int) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[guildID]
	if !ok {
		return 0, false
	}
	entry.HumanCount = max(entry.HumanCount+delta, 0)
	c.entries[guildID] = entry
	return entry.HumanCount, true
}

// Delete drops the entry of a guild the bot left
func (c *Cache) Delete(guildID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, guildID)
}

// Len returns the number of cached guilds
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
