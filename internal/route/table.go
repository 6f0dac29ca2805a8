// Package route implements the fixed-capacity longest-prefix-match routing
// table. Entries live in stable slots: a route never moves between slots for
// its lifetime, so a slot index stays valid until the entry ages out.
package route

import "github.com/seregonwar/rtnet-stack/internal/core"

// Entry is one routing-table slot.
type Entry struct {
	Destination core.Addr
	NextHop     core.Addr // zero address = directly connected
	PrefixLen   uint8
	Metric      uint16

	lastUsed uint32
	valid    bool
}

// Directly reports whether the route has no gateway.
func (e *Entry) Directly() bool {
	return e.NextHop.IsUnspecified()
}

// Table is the fixed-capacity routing table. Callers serialize access; the
// table itself holds no lock.
type Table struct {
	entries [core.MaxRoutingEntries]Entry
}

// Add writes a route into the first free slot.
func (t *Table) Add(destination core.Addr, prefixLen uint8, nextHop core.Addr, metric uint16, nowMs uint32) error {
	if prefixLen > 128 {
		return core.ErrInvalidParam
	}

	for i := range t.entries {
		e := &t.entries[i]
		if e.valid {
			continue
		}
		*e = Entry{
			Destination: destination,
			NextHop:     nextHop,
			PrefixLen:   prefixLen,
			Metric:      metric,
			lastUsed:    nowMs,
			valid:       true,
		}
		return nil
	}

	return core.ErrOverflow
}

// Find returns the best route for dest, or nil. Longer prefix wins; on equal
// prefix length the lower metric wins; remaining ties keep the first slot in
// scan order, so the decision is deterministic. A hit stamps the entry's
// last-used time: this is the sole routing decision used by every send path.
func (t *Table) Find(dest core.Addr, nowMs uint32) *Entry {
	var best *Entry

	for i := range t.entries {
		e := &t.entries[i]
		if !e.valid || !dest.MatchPrefix(e.Destination, e.PrefixLen) {
			continue
		}
		if best == nil || e.PrefixLen > best.PrefixLen ||
			(e.PrefixLen == best.PrefixLen && e.Metric < best.Metric) {
			best = e
		}
	}

	if best != nil {
		best.lastUsed = nowMs
	}
	return best
}

// Age invalidates entries whose last use is older than the route timeout.
func (t *Table) Age(nowMs uint32) {
	for i := range t.entries {
		e := &t.entries[i]
		if e.valid && core.Elapsed(nowMs, e.lastUsed) > core.RouteTimeoutMs {
			e.valid = false
		}
	}
}

// Valid counts the occupied slots.
func (t *Table) Valid() int {
	n := 0
	for i := range t.entries {
		if t.entries[i].valid {
			n++
		}
	}
	return n
}

// Reset clears the table. Used by stack re-init.
func (t *Table) Reset() {
	t.entries = [core.MaxRoutingEntries]Entry{}
}
