package route

import (
	"testing"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

func mustAddr(t *testing.T, s string) core.Addr {
	t.Helper()
	a, err := core.ParseAddr(s)
	if err != nil {
		t.Fatalf("ParseAddr(%q): %v", s, err)
	}
	return a
}

func TestLongestPrefixWinsOverMetric(t *testing.T) {
	var tbl Table

	prefix := mustAddr(t, "2001:db8::")
	if err := tbl.Add(prefix, 32, core.Addr{}, 10, 0); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Add(prefix, 64, core.Addr{}, 5, 0); err != nil {
		t.Fatal(err)
	}

	got := tbl.Find(mustAddr(t, "2001:db8::1"), 0)
	if got == nil {
		t.Fatal("expected a route")
	}
	if got.PrefixLen != 64 {
		t.Errorf("chose /%d, want /64 (longer prefix wins regardless of metric)", got.PrefixLen)
	}
}

func TestMetricBreaksPrefixTie(t *testing.T) {
	var tbl Table

	prefix := mustAddr(t, "2001:db8::")
	hopA := mustAddr(t, "fe80::a")
	hopB := mustAddr(t, "fe80::b")

	if err := tbl.Add(prefix, 64, hopA, 10, 0); err != nil {
		t.Fatal(err)
	}
	if err := tbl.Add(prefix, 64, hopB, 5, 0); err != nil {
		t.Fatal(err)
	}

	got := tbl.Find(mustAddr(t, "2001:db8::1"), 0)
	if got == nil {
		t.Fatal("expected a route")
	}
	if !got.NextHop.Equal(hopB) {
		t.Error("equal prefix lengths must be decided by lower metric")
	}
}

func TestEqualRoutesKeepSlotOrder(t *testing.T) {
	var tbl Table

	prefix := mustAddr(t, "2001:db8::")
	hopA := mustAddr(t, "fe80::a")
	hopB := mustAddr(t, "fe80::b")

	tbl.Add(prefix, 64, hopA, 5, 0)
	tbl.Add(prefix, 64, hopB, 5, 0)

	got := tbl.Find(mustAddr(t, "2001:db8::1"), 0)
	if got == nil || !got.NextHop.Equal(hopA) {
		t.Error("full tie must resolve to the first slot in table order")
	}
}

func TestAddValidation(t *testing.T) {
	var tbl Table
	err := tbl.Add(mustAddr(t, "2001:db8::"), 129, core.Addr{}, 1, 0)
	if err != core.ErrInvalidParam {
		t.Errorf("Add with prefix 129 = %v, want ErrInvalidParam", err)
	}
}

func TestTableOverflow(t *testing.T) {
	var tbl Table

	base := mustAddr(t, "2001:db8::")
	for i := 0; i < core.MaxRoutingEntries; i++ {
		dest := base
		dest[15] = byte(i)
		if err := tbl.Add(dest, 128, core.Addr{}, 1, 0); err != nil {
			t.Fatalf("Add %d: %v", i, err)
		}
	}

	if err := tbl.Add(mustAddr(t, "2001:db9::"), 64, core.Addr{}, 1, 0); err != core.ErrOverflow {
		t.Errorf("Add past capacity = %v, want ErrOverflow", err)
	}
	if got := tbl.Valid(); got != core.MaxRoutingEntries {
		t.Errorf("Valid = %d, want %d", got, core.MaxRoutingEntries)
	}
}

func TestAgeExpiresUnusedRoutes(t *testing.T) {
	var tbl Table

	tbl.Add(mustAddr(t, "2001:db8::"), 64, core.Addr{}, 1, 0)

	// Lookup at t=1000 refreshes the entry.
	if tbl.Find(mustAddr(t, "2001:db8::1"), 1000) == nil {
		t.Fatal("expected a route")
	}

	tbl.Age(1000 + core.RouteTimeoutMs)
	if tbl.Valid() != 1 {
		t.Error("route exactly at the timeout must survive")
	}

	tbl.Age(1000 + core.RouteTimeoutMs + 1)
	if tbl.Valid() != 0 {
		t.Error("route past the unused timeout must age out")
	}
}

func TestAgeIsIdempotentWithFrozenTime(t *testing.T) {
	var tbl Table
	tbl.Add(mustAddr(t, "2001:db8::"), 64, core.Addr{}, 1, 0)

	for i := 0; i < 5; i++ {
		tbl.Age(100)
	}
	if tbl.Valid() != 1 {
		t.Error("repeated aging with frozen time must not change the table")
	}
}

func TestSlotReuseAfterAging(t *testing.T) {
	var tbl Table

	tbl.Add(mustAddr(t, "2001:db8::"), 64, core.Addr{}, 1, 0)
	tbl.Age(core.RouteTimeoutMs + 1)

	if err := tbl.Add(mustAddr(t, "2001:db9::"), 64, core.Addr{}, 1, 0); err != nil {
		t.Fatalf("freed slot not reusable: %v", err)
	}
}
