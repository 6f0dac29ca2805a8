package core

import (
	"fmt"
	"net"
	"net/netip"
)

// AddrLen is the length of an IPv6 address in bytes.
const AddrLen = 16

// HardwareAddrLen is the length of an Ethernet MAC address in bytes.
const HardwareAddrLen = 6

// Addr is an IPv6 address in network byte order. It is a value type and is
// only ever compared through Equal and MatchPrefix.
type Addr [AddrLen]byte

// HardwareAddr is an Ethernet link-layer address.
type HardwareAddr [HardwareAddrLen]byte

// LinkLocalPrefix is fe80::/10, seeded into the routing table on Initialize.
var LinkLocalPrefix = Addr{0xfe, 0x80}

// LinkLocalPrefixLen is the prefix length of LinkLocalPrefix in bits.
const LinkLocalPrefixLen = 10

// Equal reports whether a and b are the same address. The comparison runs in
// constant time: the accumulated XOR never short-circuits on the first
// mismatching byte.
func (a Addr) Equal(b Addr) bool {
	var diff byte
	for i := 0; i < AddrLen; i++ {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// MatchPrefix reports whether the top prefixLen bits of a equal those of
// prefix. prefixLen > 128 is a contract violation and matches nothing.
func (a Addr) MatchPrefix(prefix Addr, prefixLen uint8) bool {
	if prefixLen > 128 {
		return false
	}

	fullBytes := int(prefixLen / 8)
	for i := 0; i < fullBytes; i++ {
		if a[i] != prefix[i] {
			return false
		}
	}

	if rem := prefixLen % 8; rem != 0 {
		mask := byte(0xff << (8 - rem))
		if a[fullBytes]&mask != prefix[fullBytes]&mask {
			return false
		}
	}

	return true
}

// IsUnspecified reports whether a is the all-zeros address (::).
func (a Addr) IsUnspecified() bool {
	return a.Equal(Addr{})
}

// IsMulticast reports whether a is an IPv6 multicast address (ff00::/8).
func (a Addr) IsMulticast() bool {
	return a[0] == 0xff
}

// SolicitedNodeMulticast returns the solicited-node multicast address for a
// (ff02::1:ffXX:XXXX, RFC 4291 §2.7.1).
func (a Addr) SolicitedNodeMulticast() Addr {
	return Addr{
		0xff, 0x02, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0x01, 0xff, a[13], a[14], a[15],
	}
}

// MulticastHardwareAddr maps an IPv6 multicast address to its Ethernet
// group address (33:33 + the low 32 bits, RFC 2464 §7).
func (a Addr) MulticastHardwareAddr() HardwareAddr {
	return HardwareAddr{0x33, 0x33, a[12], a[13], a[14], a[15]}
}

// String formats a in standard IPv6 notation.
func (a Addr) String() string {
	return netip.AddrFrom16(a).String()
}

// AddrFromNetip converts a netip.Addr into an Addr, mapping IPv4 addresses
// through their IPv4-in-IPv6 form.
func AddrFromNetip(ip netip.Addr) Addr {
	return Addr(ip.As16())
}

// ParseAddr parses s as an IPv6 address. Intended for configuration and CLI
// input, never for the packet path.
func ParseAddr(s string) (Addr, error) {
	ip, err := netip.ParseAddr(s)
	if err != nil {
		return Addr{}, fmt.Errorf("parse address %q: %w", s, err)
	}
	return AddrFromNetip(ip), nil
}

// ParseHardwareAddr parses s as a colon-separated MAC address.
func ParseHardwareAddr(s string) (HardwareAddr, error) {
	mac, err := net.ParseMAC(s)
	if err != nil || len(mac) != HardwareAddrLen {
		return HardwareAddr{}, fmt.Errorf("parse hardware address %q: %w", s, ErrInvalidParam)
	}
	var hw HardwareAddr
	copy(hw[:], mac)
	return hw, nil
}

// String formats hw as a colon-separated MAC address.
func (hw HardwareAddr) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
		hw[0], hw[1], hw[2], hw[3], hw[4], hw[5])
}
