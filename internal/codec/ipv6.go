package codec

import (
	"encoding/binary"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

// IPv6HeaderLen is the fixed IPv6 header length (RFC 8200; no extension
// headers are processed by this stack).
const IPv6HeaderLen = 40

// IPv6Version is the value of the version field.
const IPv6Version = 6

// IPv6DefaultHopLimit is used for all locally originated packets.
const IPv6DefaultHopLimit = 64

// IPv6Header is a decoded fixed IPv6 header.
type IPv6Header struct {
	TrafficClass uint8
	FlowLabel    uint32
	PayloadLen   uint16
	NextHeader   uint8
	HopLimit     uint8
	Src          core.Addr
	Dst          core.Addr
}

// DecodeIPv6 decodes the fixed header at the start of b and returns it with
// the remaining payload. The version field is checked here; a non-6 version
// is a malformed packet, not a dispatchable one.
func DecodeIPv6(b []byte) (IPv6Header, []byte, error) {
	if len(b) < IPv6HeaderLen {
		return IPv6Header{}, nil, core.ErrInvalidParam
	}
	if b[0]>>4 != IPv6Version {
		return IPv6Header{}, nil, core.ErrInvalidParam
	}

	h := IPv6Header{
		TrafficClass: b[0]<<4 | b[1]>>4,
		FlowLabel:    uint32(b[1]&0x0f)<<16 | uint32(b[2])<<8 | uint32(b[3]),
		PayloadLen:   binary.BigEndian.Uint16(b[4:6]),
		NextHeader:   b[6],
		HopLimit:     b[7],
	}
	copy(h.Src[:], b[8:24])
	copy(h.Dst[:], b[24:40])

	return h, b[IPv6HeaderLen:], nil
}

// EncodeIPv6 writes h into b, which must hold at least IPv6HeaderLen bytes,
// and returns the bytes written. The bit-packed version/class/flow word is
// assembled explicitly.
func EncodeIPv6(b []byte, h IPv6Header) int {
	b[0] = IPv6Version<<4 | h.TrafficClass>>4
	b[1] = h.TrafficClass<<4 | uint8(h.FlowLabel>>16)&0x0f
	b[2] = uint8(h.FlowLabel >> 8)
	b[3] = uint8(h.FlowLabel)
	binary.BigEndian.PutUint16(b[4:6], h.PayloadLen)
	b[6] = h.NextHeader
	b[7] = h.HopLimit
	copy(b[8:24], h.Src[:])
	copy(b[24:40], h.Dst[:])
	return IPv6HeaderLen
}
