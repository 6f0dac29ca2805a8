// Package mdns holds the service-discovery record table. The stack hosts
// the Query/Announce operations behind a stable signature, but no mDNS wire
// traffic is generated or consumed: announcements land in the local record
// table and queries are answered from it. Callers are unaffected by whether
// a real responder ever takes over.
package mdns

import "github.com/seregonwar/rtnet-stack/internal/core"

// MaxServiceNameLen bounds stored service names, matching the fixed record
// layout of the embedded targets.
const MaxServiceNameLen = 63

// Record is one service record.
type Record struct {
	Name string
	Addr core.Addr
	Port uint16
	TTL  uint32 // seconds

	lastSeen uint32
	valid    bool
}

// Table is the fixed-capacity record cache. Callers serialize access.
type Table struct {
	records [core.MaxMDNSRecords]Record
}

// Announce stores or refreshes the record for name. A free slot is
// preferred; with none left the record with the oldest lastSeen is
// overwritten, keeping announcements for live services flowing.
func (t *Table) Announce(name string, addr core.Addr, port uint16, ttlSec uint32, nowMs uint32) error {
	if name == "" || len(name) > MaxServiceNameLen || port == 0 || ttlSec == 0 {
		return core.ErrInvalidParam
	}

	victim := 0
	oldest := ^uint32(0)
	found := false
	for i := range t.records {
		r := &t.records[i]
		if r.valid && r.Name == name {
			victim = i
			found = true
			break
		}
	}
	if !found {
		for i := range t.records {
			r := &t.records[i]
			if !r.valid {
				victim = i
				break
			}
			if r.lastSeen < oldest {
				oldest = r.lastSeen
				victim = i
			}
		}
	}

	t.records[victim] = Record{
		Name:     name,
		Addr:     addr,
		Port:     port,
		TTL:      ttlSec,
		lastSeen: nowMs,
		valid:    true,
	}
	return nil
}

// Query answers name from the record table. A miss reports ErrTimeout, the
// same outcome a real responder produces when nobody answers.
func (t *Table) Query(name string, nowMs uint32) (Record, error) {
	if name == "" {
		return Record{}, core.ErrInvalidParam
	}

	for i := range t.records {
		r := &t.records[i]
		if r.valid && r.Name == name {
			r.lastSeen = nowMs
			return *r, nil
		}
	}

	return Record{}, core.ErrTimeout
}

// Valid counts the occupied slots.
func (t *Table) Valid() int {
	n := 0
	for i := range t.records {
		if t.records[i].valid {
			n++
		}
	}
	return n
}

// Reset clears the table. Used by stack re-init.
func (t *Table) Reset() {
	t.records = [core.MaxMDNSRecords]Record{}
}
