// Package pool implements the fixed-capacity buffer pools backing the
// transmit and receive paths. A pool never allocates after construction:
// "allocation" flips a slot's in-use flag, mirroring a DMA descriptor ring.
package pool

import "github.com/seregonwar/rtnet-stack/internal/core"

// Buffer is one pool slot. The data array is owned by the slot for the
// lifetime of the pool; callers work on Payload() views and must not retain
// them past Free.
type Buffer struct {
	Data        [core.BufferSize]byte
	Length      uint16
	Offset      uint16
	QoS         uint8
	AllocatedAt uint32

	inUse bool
}

// Payload returns the filled region of the buffer.
func (b *Buffer) Payload() []byte {
	return b.Data[b.Offset : b.Offset+b.Length]
}

// Pool is a fixed set of buffers scanned linearly. Capacity is small and
// fixed, so the O(capacity) scans have a provable bound.
type Pool struct {
	buffers []Buffer
}

// New returns a pool with capacity slots, all free.
func New(capacity int) *Pool {
	return &Pool{buffers: make([]Buffer, capacity)}
}

// Alloc claims a free slot and returns it, or nil when the pool is
// exhausted. The first pass prefers a slot already tagged with the requested
// QoS priority; the second takes any free slot and retags it. On success the
// slot length and offset are reset and the allocation time stamped.
func (p *Pool) Alloc(qos uint8, nowMs uint32) *Buffer {
	var selected *Buffer

	for i := range p.buffers {
		b := &p.buffers[i]
		if !b.inUse && b.QoS == qos {
			selected = b
			break
		}
	}

	if selected == nil {
		for i := range p.buffers {
			b := &p.buffers[i]
			if !b.inUse {
				selected = b
				break
			}
		}
	}

	if selected == nil {
		return nil
	}

	selected.inUse = true
	selected.QoS = qos
	selected.Length = 0
	selected.Offset = 0
	selected.AllocatedAt = nowMs
	return selected
}

// Free returns b to the pool. Contents are not wiped; buffers are trusted
// not to leak across unrelated uses by policy.
func (p *Pool) Free(b *Buffer) {
	if b != nil {
		b.inUse = false
	}
}

// InUse counts the currently claimed slots.
func (p *Pool) InUse() int {
	n := 0
	for i := range p.buffers {
		if p.buffers[i].inUse {
			n++
		}
	}
	return n
}

// Capacity returns the fixed slot count.
func (p *Pool) Capacity() int {
	return len(p.buffers)
}

// Reset frees every slot and clears QoS tags. Used by stack re-init.
func (p *Pool) Reset() {
	for i := range p.buffers {
		p.buffers[i] = Buffer{}
	}
}
