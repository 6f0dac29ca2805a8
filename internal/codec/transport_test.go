package codec

import (
	"bytes"
	"testing"

	"github.com/seregonwar/rtnet-stack/internal/core"
)

func TestUDPEncodeDecode(t *testing.T) {
	in := UDPHeader{
		SrcPort:  49152,
		DstPort:  7,
		Length:   UDPHeaderLen + 2,
		Checksum: 0x1234,
	}

	b := make([]byte, UDPHeaderLen+2)
	EncodeUDP(b, in)
	b[8], b[9] = 'h', 'i'

	out, payload, err := DecodeUDP(b)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v vs %+v", in, out)
	}
	if !bytes.Equal(payload, []byte("hi")) {
		t.Error("payload view wrong")
	}
}

func TestDecodeUDPShort(t *testing.T) {
	if _, _, err := DecodeUDP(make([]byte, UDPHeaderLen-1)); err != core.ErrInvalidParam {
		t.Errorf("short datagram = %v, want ErrInvalidParam", err)
	}
}

func TestTCPEncodeDecode(t *testing.T) {
	in := TCPHeader{
		SrcPort:    49152,
		DstPort:    80,
		SeqNum:     0xdeadbeef,
		AckNum:     0x01020304,
		DataOffset: TCPHeaderLen / 4,
		Flags:      TCPFlagPsh | TCPFlagAck,
		Window:     core.TCPWindowSize,
		Checksum:   0xabcd,
		Urgent:     0,
	}

	b := make([]byte, TCPHeaderLen+3)
	EncodeTCP(b, in)
	copy(b[TCPHeaderLen:], "GET")

	out, payload, err := DecodeTCP(b)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip mismatch:\n in %+v\nout %+v", in, out)
	}
	if !bytes.Equal(payload, []byte("GET")) {
		t.Error("payload view wrong")
	}
}

func TestDecodeTCPSkipsOptions(t *testing.T) {
	b := make([]byte, 24+1)
	EncodeTCP(b, TCPHeader{SrcPort: 1, DstPort: 2})
	b[12] = (24 / 4) << 4 // 4 bytes of options
	b[20], b[21] = 0x01, 0x01
	b[24] = 'x'

	_, payload, err := DecodeTCP(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(payload, []byte("x")) {
		t.Errorf("payload after options = %q", payload)
	}
}

func TestDecodeTCPRejectsBadDataOffset(t *testing.T) {
	b := make([]byte, TCPHeaderLen)
	EncodeTCP(b, TCPHeader{})
	b[12] = 4 << 4 // header length 16 < minimum 20
	if _, _, err := DecodeTCP(b); err != core.ErrInvalidParam {
		t.Errorf("undersized data offset = %v, want ErrInvalidParam", err)
	}

	b[12] = 15 << 4 // header length 60 > segment length
	if _, _, err := DecodeTCP(b); err != core.ErrInvalidParam {
		t.Errorf("oversized data offset = %v, want ErrInvalidParam", err)
	}
}

func TestICMPv6EncodeDecode(t *testing.T) {
	in := ICMPv6Header{Type: ICMPv6EchoRequest, Code: 0, Checksum: 0x4242}

	b := make([]byte, ICMPv6HeaderLen+4)
	EncodeICMPv6(b, in)
	copy(b[ICMPv6HeaderLen:], []byte{1, 2, 3, 4})

	out, body, err := DecodeICMPv6(b)
	if err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip mismatch: %+v vs %+v", in, out)
	}
	if len(body) != 4 {
		t.Errorf("body length = %d, want 4", len(body))
	}
}
