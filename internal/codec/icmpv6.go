package codec

import (
	"encoding/binary"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

// ICMPv6HeaderLen is the fixed part of an ICMPv6 message (RFC 4443).
const ICMPv6HeaderLen = 4

// ICMPv6 message types handled by the stack.
const (
	ICMPv6EchoRequest       uint8 = 128
	ICMPv6EchoReply         uint8 = 129
	ICMPv6NeighborSolicit   uint8 = 135
	ICMPv6NeighborAdvertise uint8 = 136
)

// ICMPv6Header is the fixed type/code/checksum prefix of an ICMPv6 message.
type ICMPv6Header struct {
	Type     uint8
	Code     uint8
	Checksum uint16
}

// DecodeICMPv6 decodes the fixed header at the start of b and returns it
// with the message body.
func DecodeICMPv6(b []byte) (ICMPv6Header, []byte, error) {
	if len(b) < ICMPv6HeaderLen {
		return ICMPv6Header{}, nil, core.ErrInvalidParam
	}

	h := ICMPv6Header{
		Type:     b[0],
		Code:     b[1],
		Checksum: binary.BigEndian.Uint16(b[2:4]),
	}

	return h, b[ICMPv6HeaderLen:], nil
}

// EncodeICMPv6 writes h into b, which must hold at least ICMPv6HeaderLen
// bytes, and returns the bytes written.
func EncodeICMPv6(b []byte, h ICMPv6Header) int {
	b[0] = h.Type
	b[1] = h.Code
	binary.BigEndian.PutUint16(b[2:4], h.Checksum)
	return ICMPv6HeaderLen
}
