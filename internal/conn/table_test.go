package conn

import (
	"testing"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

func addrN(n byte) core.Addr {
	a, _ := core.ParseAddr("2001:db8::")
	a[15] = n
	return a
}

func TestOpenAdmitsStraightToEstablished(t *testing.T) {
	var tbl Table

	id, err := tbl.Open(addrN(1), addrN(2), 50000, 80, 1234, 0)
	if err != nil {
		t.Fatal(err)
	}

	c, err := tbl.Get(id)
	if err != nil {
		t.Fatal(err)
	}
	if c.State != StateEstablished {
		t.Errorf("state = %s, want ESTABLISHED", c.State)
	}
	if c.SendNext != 1234 || c.SendUnack != 1234 {
		t.Error("initial sequence number not recorded")
	}
	if c.SendWindow != core.TCPWindowSize || c.RecvWindow != core.TCPWindowSize {
		t.Error("windows must start at the configured size")
	}
}

func TestOpenExhaustsSlots(t *testing.T) {
	var tbl Table

	for i := 0; i < core.MaxTCPConnections; i++ {
		if _, err := tbl.Open(addrN(1), addrN(2), uint16(50000+i), 80, 0, 0); err != nil {
			t.Fatalf("Open %d: %v", i, err)
		}
	}

	if _, err := tbl.Open(addrN(1), addrN(2), 60000, 80, 0, 0); err != core.ErrNoBuffer {
		t.Errorf("Open past capacity = %v, want ErrNoBuffer", err)
	}
}

func TestGetValidation(t *testing.T) {
	var tbl Table

	if _, err := tbl.Get(core.MaxTCPConnections); err != core.ErrInvalidParam {
		t.Errorf("out-of-bounds id = %v, want ErrInvalidParam", err)
	}
	if _, err := tbl.Get(0); err != core.ErrConnection {
		t.Errorf("free slot id = %v, want ErrConnection", err)
	}
}

func TestReleaseFreesSlotForReuse(t *testing.T) {
	var tbl Table

	id, _ := tbl.Open(addrN(1), addrN(2), 50000, 80, 0, 0)
	if err := tbl.Release(id); err != nil {
		t.Fatal(err)
	}

	if _, err := tbl.Get(id); err != core.ErrConnection {
		t.Errorf("released id = %v, want ErrConnection", err)
	}
	if err := tbl.Release(id); err != core.ErrConnection {
		t.Errorf("double release = %v, want ErrConnection", err)
	}

	id2, err := tbl.Open(addrN(1), addrN(2), 50001, 80, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if id2 != id {
		t.Errorf("first-free slot selection should reuse slot %d, got %d", id, id2)
	}
}

func TestMatchFourTuple(t *testing.T) {
	var tbl Table

	local, remote := addrN(1), addrN(2)
	tbl.Open(local, remote, 50000, 80, 0, 0)

	if tbl.Match(remote, 80, local, 50000) == nil {
		t.Error("expected a 4-tuple match")
	}
	if tbl.Match(remote, 81, local, 50000) != nil {
		t.Error("remote port mismatch must not match")
	}
	if tbl.Match(addrN(3), 80, local, 50000) != nil {
		t.Error("remote address mismatch must not match")
	}
}

func TestSweepIdle(t *testing.T) {
	var tbl Table

	id, _ := tbl.Open(addrN(1), addrN(2), 50000, 80, 0, 1000)

	if n := tbl.SweepIdle(1000 + core.TCPTimeoutMs); n != 0 {
		t.Error("connection exactly at the timeout must survive")
	}
	if n := tbl.SweepIdle(1000 + core.TCPTimeoutMs + 1); n != 1 {
		t.Error("idle connection must be swept")
	}
	if _, err := tbl.Get(id); err != core.ErrConnection {
		t.Error("swept connection must read as gone")
	}
}

func TestSweepIdleOnEmptyTable(t *testing.T) {
	var tbl Table
	if n := tbl.SweepIdle(0); n != 0 {
		t.Error("sweeping an empty table must close nothing")
	}
}

func TestStateString(t *testing.T) {
	if StateEstablished.String() != "ESTABLISHED" {
		t.Error("state name mismatch")
	}
	if State(42).String() != "UNKNOWN" {
		t.Error("out-of-range state must print UNKNOWN")
	}
}
