// Package checksum implements the RFC 1071 Internet checksum and the IPv6
// pseudo-header sum used by UDP, TCP and ICMPv6 (RFC 8200 §8.1).
//
// Both functions are pure and allocation-free.
package checksum

import "github.com/seregonwar/rtnet-stack/internal/core"

// Sum computes the one's-complement Internet checksum of b, folded into 16
// bits. initial carries a pseudo-header partial sum; pass 0 when there is
// none. An odd trailing byte is summed into the high octet of its word.
func Sum(b []byte, initial uint32) uint16 {
	sum := initial

	n := len(b)
	if n&1 != 0 {
		n--
		sum += uint32(b[n]) << 8
	}

	for i := 0; i < n; i += 2 {
		sum += uint32(b[i])<<8 | uint32(b[i+1])
	}

	for sum>>16 != 0 {
		sum = sum&0xffff + sum>>16
	}

	return ^uint16(sum)
}

// PseudoHeaderSum computes the unfolded partial sum of the IPv6 pseudo
// header: the eight 16-bit words of each address, the 32-bit upper-layer
// length and the zero-extended next-header value. The result feeds Sum as
// its initial value.
func PseudoHeaderSum(src, dst core.Addr, payloadLen uint32, nextHeader uint8) uint32 {
	var sum uint32

	for i := 0; i < core.AddrLen; i += 2 {
		sum += uint32(src[i])<<8 | uint32(src[i+1])
		sum += uint32(dst[i])<<8 | uint32(dst[i+1])
	}

	sum += payloadLen >> 16
	sum += payloadLen & 0xffff
	sum += uint32(nextHeader)

	return sum
}
