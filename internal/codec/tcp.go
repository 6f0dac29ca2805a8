package codec

import (
	"encoding/binary"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

// TCPHeaderLen is the option-less TCP header length this stack emits and
// expects. Options present on inbound segments are skipped via DataOffset.
const TCPHeaderLen = 20

// TCP flag bits.
const (
	TCPFlagFin uint8 = 1 << iota
	TCPFlagSyn
	TCPFlagRst
	TCPFlagPsh
	TCPFlagAck
	TCPFlagUrg
)

// TCPHeader is a decoded TCP header.
type TCPHeader struct {
	SrcPort    uint16
	DstPort    uint16
	SeqNum     uint32
	AckNum     uint32
	DataOffset uint8 // header length in 32-bit words
	Flags      uint8
	Window     uint16
	Checksum   uint16
	Urgent     uint16
}

// DecodeTCP decodes the header at the start of b and returns it with the
// segment payload (past any options).
func DecodeTCP(b []byte) (TCPHeader, []byte, error) {
	if len(b) < TCPHeaderLen {
		return TCPHeader{}, nil, core.ErrInvalidParam
	}

	h := TCPHeader{
		SrcPort:    binary.BigEndian.Uint16(b[0:2]),
		DstPort:    binary.BigEndian.Uint16(b[2:4]),
		SeqNum:     binary.BigEndian.Uint32(b[4:8]),
		AckNum:     binary.BigEndian.Uint32(b[8:12]),
		DataOffset: b[12] >> 4,
		Flags:      b[13] & 0x3f,
		Window:     binary.BigEndian.Uint16(b[14:16]),
		Checksum:   binary.BigEndian.Uint16(b[16:18]),
		Urgent:     binary.BigEndian.Uint16(b[18:20]),
	}

	headerLen := int(h.DataOffset) * 4
	if headerLen < TCPHeaderLen || headerLen > len(b) {
		return TCPHeader{}, nil, core.ErrInvalidParam
	}

	return h, b[headerLen:], nil
}

// EncodeTCP writes h into b as an option-less header, which must hold at
// least TCPHeaderLen bytes, and returns the bytes written. DataOffset is
// forced to the option-less value.
func EncodeTCP(b []byte, h TCPHeader) int {
	binary.BigEndian.PutUint16(b[0:2], h.SrcPort)
	binary.BigEndian.PutUint16(b[2:4], h.DstPort)
	binary.BigEndian.PutUint32(b[4:8], h.SeqNum)
	binary.BigEndian.PutUint32(b[8:12], h.AckNum)
	b[12] = (TCPHeaderLen / 4) << 4
	b[13] = h.Flags & 0x3f
	binary.BigEndian.PutUint16(b[14:16], h.Window)
	binary.BigEndian.PutUint16(b[16:18], h.Checksum)
	binary.BigEndian.PutUint16(b[18:20], h.Urgent)
	return TCPHeaderLen
}
