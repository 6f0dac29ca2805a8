package mdns

import (
	"fmt"
	"strings"
	"testing"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

func TestQueryMissReportsTimeout(t *testing.T) {
	var tbl Table
	if _, err := tbl.Query("_http._tcp.local", 0); err != core.ErrTimeout {
		t.Errorf("miss = %v, want ErrTimeout", err)
	}
}

func TestAnnounceThenQuery(t *testing.T) {
	var tbl Table
	addr, _ := core.ParseAddr("fe80::1")

	if err := tbl.Announce("_http._tcp.local", addr, 8080, 120, 0); err != nil {
		t.Fatal(err)
	}

	rec, err := tbl.Query("_http._tcp.local", 10)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Port != 8080 || rec.TTL != 120 || !rec.Addr.Equal(addr) {
		t.Errorf("record mismatch: %+v", rec)
	}
}

func TestAnnounceValidation(t *testing.T) {
	var tbl Table
	addr, _ := core.ParseAddr("fe80::1")

	cases := []struct {
		name   string
		port   uint16
		ttlSec uint32
	}{
		{"", 80, 60},
		{strings.Repeat("x", MaxServiceNameLen+1), 80, 60},
		{"_http._tcp.local", 0, 60},
		{"_http._tcp.local", 80, 0},
	}
	for _, c := range cases {
		if err := tbl.Announce(c.name, addr, c.port, c.ttlSec, 0); err != core.ErrInvalidParam {
			t.Errorf("Announce(%q,%d,%d) = %v, want ErrInvalidParam", c.name, c.port, c.ttlSec, err)
		}
	}
}

func TestAnnounceRefreshesExistingRecord(t *testing.T) {
	var tbl Table
	addr, _ := core.ParseAddr("fe80::1")

	tbl.Announce("_ssh._tcp.local", addr, 22, 60, 0)
	tbl.Announce("_ssh._tcp.local", addr, 2222, 90, 100)

	if tbl.Valid() != 1 {
		t.Fatalf("re-announce must reuse the slot, Valid = %d", tbl.Valid())
	}
	rec, _ := tbl.Query("_ssh._tcp.local", 200)
	if rec.Port != 2222 {
		t.Error("re-announce must update the record")
	}
}

func TestAnnounceEvictsOldestWhenFull(t *testing.T) {
	var tbl Table
	addr, _ := core.ParseAddr("fe80::1")

	for i := 0; i < core.MaxMDNSRecords; i++ {
		tbl.Announce(fmt.Sprintf("_svc%d._udp.local", i), addr, 80, 60, uint32(1000+i))
	}
	tbl.Announce("_new._udp.local", addr, 80, 60, 9000)

	if tbl.Valid() != core.MaxMDNSRecords {
		t.Errorf("table size %d exceeds capacity", tbl.Valid())
	}
	if _, err := tbl.Query("_svc0._udp.local", 9000); err != core.ErrTimeout {
		t.Error("oldest record must be the eviction victim")
	}
	if _, err := tbl.Query("_new._udp.local", 9000); err != nil {
		t.Error("new record must be present")
	}
}
