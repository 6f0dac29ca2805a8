// Package neighbor implements the fixed-capacity IPv6 neighbor cache mapping
// network addresses to link addresses. The cache is fed by explicit inserts
// and by passive RX snooping; it never rejects an insert; a full cache
// evicts its least recently confirmed entry instead.
package neighbor

import "github.com/seregonwar/rtnet-stack/internal/core"

// Entry is one cache slot.
type Entry struct {
	Addr     core.Addr
	Hardware core.HardwareAddr

	lastConfirmed uint32
	valid         bool
}

// Cache is the fixed-capacity neighbor cache. Callers serialize access.
type Cache struct {
	entries [core.MaxNeighborCache]Entry
}

// Lookup returns the link address for addr. A hit refreshes the entry's
// confirmation time.
func (c *Cache) Lookup(addr core.Addr, nowMs uint32) (core.HardwareAddr, bool) {
	for i := range c.entries {
		e := &c.entries[i]
		if e.valid && e.Addr.Equal(addr) {
			e.lastConfirmed = nowMs
			return e.Hardware, true
		}
	}
	return core.HardwareAddr{}, false
}

// Insert records or refreshes the mapping addr→hw. A free slot is used when
// one exists; otherwise the entry with the oldest confirmation time is
// overwritten. Insert always succeeds.
func (c *Cache) Insert(addr core.Addr, hw core.HardwareAddr, nowMs uint32) {
	// Refresh in place when the address is already cached.
	for i := range c.entries {
		e := &c.entries[i]
		if e.valid && e.Addr.Equal(addr) {
			e.Hardware = hw
			e.lastConfirmed = nowMs
			return
		}
	}

	victim := 0
	oldest := ^uint32(0)
	for i := range c.entries {
		e := &c.entries[i]
		if !e.valid {
			victim = i
			break
		}
		if e.lastConfirmed < oldest {
			oldest = e.lastConfirmed
			victim = i
		}
	}

	c.entries[victim] = Entry{
		Addr:          addr,
		Hardware:      hw,
		lastConfirmed: nowMs,
		valid:         true,
	}
}

// Age invalidates entries idle past the neighbor timeout.
func (c *Cache) Age(nowMs uint32) {
	for i := range c.entries {
		e := &c.entries[i]
		if e.valid && core.Elapsed(nowMs, e.lastConfirmed) > core.NeighborTimeoutMs {
			e.valid = false
		}
	}
}

// Valid counts the occupied slots.
func (c *Cache) Valid() int {
	n := 0
	for i := range c.entries {
		if c.entries[i].valid {
			n++
		}
	}
	return n
}

// Reset clears the cache. Used by stack re-init.
func (c *Cache) Reset() {
	c.entries = [core.MaxNeighborCache]Entry{}
}
