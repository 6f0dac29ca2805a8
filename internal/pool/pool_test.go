package pool

import (
	"testing"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

func TestAllocExhaustion(t *testing.T) {
	p := New(core.MaxTxBuffers)

	var bufs []*Buffer
	for i := 0; i < core.MaxTxBuffers; i++ {
		b := p.Alloc(core.QoSNormal, uint32(i))
		if b == nil {
			t.Fatalf("allocation %d failed with free slots remaining", i)
		}
		bufs = append(bufs, b)
	}

	if p.Alloc(core.QoSNormal, 100) != nil {
		t.Error("allocation beyond capacity must fail")
	}
	if got := p.InUse(); got != core.MaxTxBuffers {
		t.Errorf("InUse = %d, want %d", got, core.MaxTxBuffers)
	}

	// No double allocation: all returned buffers are distinct slots.
	seen := map[*Buffer]bool{}
	for _, b := range bufs {
		if seen[b] {
			t.Fatal("same slot handed out twice")
		}
		seen[b] = true
	}
}

func TestAllocPrefersMatchingQoS(t *testing.T) {
	p := New(4)

	// Tag two slots by allocating and freeing them.
	hi := p.Alloc(core.QoSHigh, 0)
	lo := p.Alloc(core.QoSLow, 0)
	p.Free(hi)
	p.Free(lo)

	// A high-priority request should land on the slot already tagged high,
	// not the first free slot in scan order.
	got := p.Alloc(core.QoSHigh, 1)
	if got != hi {
		t.Error("matching-QoS slot not preferred")
	}
}

func TestAllocRetagsWhenNoMatch(t *testing.T) {
	p := New(1)

	b := p.Alloc(core.QoSLow, 0)
	p.Free(b)

	b = p.Alloc(core.QoSCritical, 1)
	if b == nil {
		t.Fatal("free slot must be usable regardless of prior tag")
	}
	if b.QoS != core.QoSCritical {
		t.Errorf("slot QoS = %d, want %d", b.QoS, core.QoSCritical)
	}
}

func TestAllocResetsGeometry(t *testing.T) {
	p := New(1)

	b := p.Alloc(core.QoSNormal, 5)
	b.Length = 100
	b.Offset = 14
	p.Free(b)

	b = p.Alloc(core.QoSNormal, 9)
	if b.Length != 0 || b.Offset != 0 {
		t.Error("re-allocated buffer must start with zero length and offset")
	}
	if b.AllocatedAt != 9 {
		t.Errorf("AllocatedAt = %d, want 9", b.AllocatedAt)
	}
}

func TestFreeNilIsSafe(t *testing.T) {
	New(1).Free(nil)
}
