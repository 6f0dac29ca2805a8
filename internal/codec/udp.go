package codec

import (
	"encoding/binary"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

// UDPHeaderLen is the UDP header length (RFC 768).
const UDPHeaderLen = 8

// UDPHeader is a decoded UDP header.
type UDPHeader struct {
	SrcPort  uint16
	DstPort  uint16
	Length   uint16 // header plus payload
	Checksum uint16
}

// DecodeUDP decodes the header at the start of b and returns it with the
// remaining payload.
func DecodeUDP(b []byte) (UDPHeader, []byte, error) {
	if len(b) < UDPHeaderLen {
		return UDPHeader{}, nil, core.ErrInvalidParam
	}

	h := UDPHeader{
		SrcPort:  binary.BigEndian.Uint16(b[0:2]),
		DstPort:  binary.BigEndian.Uint16(b[2:4]),
		Length:   binary.BigEndian.Uint16(b[4:6]),
		Checksum: binary.BigEndian.Uint16(b[6:8]),
	}

	return h, b[UDPHeaderLen:], nil
}

// EncodeUDP writes h into b, which must hold at least UDPHeaderLen bytes,
// and returns the bytes written.
func EncodeUDP(b []byte, h UDPHeader) int {
	binary.BigEndian.PutUint16(b[0:2], h.SrcPort)
	binary.BigEndian.PutUint16(b[2:4], h.DstPort)
	binary.BigEndian.PutUint16(b[4:6], h.Length)
	binary.BigEndian.PutUint16(b[6:8], h.Checksum)
	return UDPHeaderLen
}
