// Package codec implements explicit field-by-field encoding and decoding of
// the wire headers the stack handles: Ethernet, IPv6, UDP, TCP and ICMPv6.
// Headers are never aliased onto packed structs; every field is read and
// written at its byte offset in big-endian order.
package codec

import (
	"encoding/binary"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

// EthernetHeaderLen is the length of an untagged Ethernet header.
const EthernetHeaderLen = 14

// EthernetHeader is a decoded L2 header.
type EthernetHeader struct {
	Dst       core.HardwareAddr
	Src       core.HardwareAddr
	EtherType uint16
}

// DecodeEthernet decodes the header at the start of frame and returns it
// with the remaining payload.
func DecodeEthernet(frame []byte) (EthernetHeader, []byte, error) {
	if len(frame) < EthernetHeaderLen {
		return EthernetHeader{}, nil, core.ErrInvalidParam
	}

	var h EthernetHeader
	copy(h.Dst[:], frame[0:6])
	copy(h.Src[:], frame[6:12])
	h.EtherType = binary.BigEndian.Uint16(frame[12:14])

	return h, frame[EthernetHeaderLen:], nil
}

// EncodeEthernet writes h into b, which must hold at least
// EthernetHeaderLen bytes, and returns the bytes written.
func EncodeEthernet(b []byte, h EthernetHeader) int {
	copy(b[0:6], h.Dst[:])
	copy(b[6:12], h.Src[:])
	binary.BigEndian.PutUint16(b[12:14], h.EtherType)
	return EthernetHeaderLen
}
