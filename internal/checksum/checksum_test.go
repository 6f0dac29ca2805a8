package checksum

import (
	"testing"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

func TestSumKnownVector(t *testing.T) {
	// Classic RFC 1071 worked example.
	b := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	if got := Sum(b, 0); got != ^uint16(0xddf2) {
		t.Errorf("Sum = %#04x, want %#04x", got, ^uint16(0xddf2))
	}
}

func TestSumOddLength(t *testing.T) {
	// Trailing odd byte is summed as the high octet of a zero-padded word.
	even := Sum([]byte{0xab, 0x00}, 0)
	odd := Sum([]byte{0xab}, 0)
	if even != odd {
		t.Errorf("odd-length padding mismatch: %#04x vs %#04x", odd, even)
	}
}

func TestSumEmpty(t *testing.T) {
	if got := Sum(nil, 0); got != 0xffff {
		t.Errorf("Sum(nil) = %#04x, want 0xffff", got)
	}
}

// Verification identity: summing a payload together with its own checksum
// folds to 0xffff (a recomputed Sum of zero).
func TestSumRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("hi"),
		[]byte("The quick brown fox jumps over the lazy dog"),
		{0x00},
		{0xff, 0xff, 0xff, 0xff, 0xff},
	}

	for _, p := range payloads {
		ck := Sum(p, 0)

		// Standard check: recompute over payload with the checksum folded in
		// as the initial value; the one's-complement result must be zero.
		if got := Sum(p, uint32(ck)); got != 0 {
			t.Errorf("round-trip over %q = %#04x, want 0", p, got)
		}
	}
}

func TestPseudoHeaderSumMatchesManualFold(t *testing.T) {
	src, _ := core.ParseAddr("fe80::1")
	dst, _ := core.ParseAddr("fe80::2")
	payload := []byte{0xde, 0xad, 0xbe, 0xef}

	partial := PseudoHeaderSum(src, dst, uint32(len(payload)), core.ProtoUDP)

	// Manual expansion of the pseudo header as raw bytes must agree.
	var raw []byte
	raw = append(raw, src[:]...)
	raw = append(raw, dst[:]...)
	raw = append(raw, 0, 0, 0, byte(len(payload)))
	raw = append(raw, 0, 0, 0, core.ProtoUDP)
	raw = append(raw, payload...)

	if got, want := Sum(payload, partial), Sum(raw, 0); got != want {
		t.Errorf("pseudo-header sum %#04x, raw expansion %#04x", got, want)
	}
}

func TestPseudoHeaderSumDiffersPerProtocol(t *testing.T) {
	src, _ := core.ParseAddr("2001:db8::1")
	dst, _ := core.ParseAddr("2001:db8::2")

	udp := PseudoHeaderSum(src, dst, 8, core.ProtoUDP)
	tcp := PseudoHeaderSum(src, dst, 8, core.ProtoTCP)
	if udp == tcp {
		t.Error("pseudo-header sum must include the next-header value")
	}
}
