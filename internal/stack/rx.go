package stack

import (
	"github.com/seregonwar/rtnet-stack/internal/checksum"
	"github.com/seregonwar/rtnet-stack/internal/codec"
	"github.com/seregonwar/rtnet-stack/internal/core"
	"github.com/seregonwar/rtnet-stack/internal/log"
	"github.com/seregonwar/rtnet-stack/internal/pool"
)

// udpDelivery is a pending handler invocation, captured inside the critical
// section and executed after it is released. It pins the RX buffer the
// payload lives in; the buffer returns to the pool once the handler is
// done.
type udpDelivery struct {
	handler UDPHandler
	buf     *pool.Buffer
	src     core.Addr
	srcPort uint16
	dstPort uint16
	payload []byte
}

// ProcessRxPacket consumes one raw link-layer frame. It is the sole inbound
// entry point and runs in the link driver's receive context, so it never
// blocks and every loop in it is bounded by a fixed table capacity.
//
// Frames shorter than the link plus fixed IPv6 header are rejected before
// admission and touch no counters. Every admitted frame is copied into an
// RX buffer and counts as a received packet, with the error counters
// tracking the failure branch it dies on, if any.
func (s *Stack) ProcessRxPacket(frame []byte) error {
	if len(frame) < codec.EthernetHeaderLen+codec.IPv6HeaderLen {
		return core.ErrInvalidParam
	}

	s.plat.Enter()

	if !s.initialized {
		s.plat.Exit()
		return core.ErrNotInitialized
	}

	delivery, err := s.rx(frame)
	s.plat.Exit()

	if delivery != nil {
		// The handler runs outside the critical section so it may call
		// back into the stack.
		delivery.handler(delivery.src, delivery.srcPort, delivery.dstPort, delivery.payload)

		s.plat.Enter()
		s.rxPool.Free(delivery.buf)
		s.plat.Exit()
	}
	return err
}

// rx is the admission-to-dispatch pipeline. Caller holds the critical
// section. When rx hands back a delivery, ownership of its RX buffer moves
// to the caller; on every other path the buffer is freed here.
func (s *Stack) rx(frame []byte) (*udpDelivery, error) {
	s.stats.RxPackets++
	now := s.plat.NowMs()

	if len(frame) > core.BufferSize {
		s.stats.RxErrors++
		return nil, core.ErrInvalidParam
	}

	buf := s.rxPool.Alloc(core.QoSNormal, now)
	if buf == nil {
		s.stats.RxDropped++
		return nil, core.ErrNoBuffer
	}
	buf.Length = uint16(copy(buf.Data[:], frame))
	frame = buf.Payload()

	delivery, err := s.dispatch(frame, buf, now)
	if delivery == nil {
		s.rxPool.Free(buf)
	}
	return delivery, err
}

func (s *Stack) dispatch(frame []byte, buf *pool.Buffer, now uint32) (*udpDelivery, error) {
	eth, rest, err := codec.DecodeEthernet(frame)
	if err != nil || eth.EtherType != core.EtherTypeIPv6 {
		s.stats.RxErrors++
		return nil, core.ErrInvalidParam
	}

	ip, payload, err := codec.DecodeIPv6(rest)
	if err != nil {
		s.stats.RxErrors++
		return nil, core.ErrInvalidParam
	}
	if int(ip.PayloadLen) > len(payload) {
		s.stats.RxErrors++
		return nil, core.ErrInvalidParam
	}
	payload = payload[:ip.PayloadLen]

	// Passive learning: every frame confirms its sender's link address, so
	// the neighbor cache stays warm without explicit resolution traffic.
	if !ip.Src.IsUnspecified() && !ip.Src.IsMulticast() {
		s.neighbors.Insert(ip.Src, eth.Src, now)
	}

	if !s.forLocal(ip.Dst) {
		if s.routes.Find(ip.Dst, now) == nil {
			s.stats.RoutingErrors++
			return nil, core.ErrNoRoute
		}
		// A route exists but this stack does not forward; the frame is
		// dropped, not errored.
		s.stats.RxDropped++
		return nil, nil
	}

	switch ip.NextHeader {
	case core.ProtoICMPv6:
		return nil, s.rxICMPv6(ip, payload, now)
	case core.ProtoUDP:
		return s.rxUDP(ip, payload, buf)
	case core.ProtoTCP:
		return nil, s.rxTCP(ip, payload, now)
	default:
		s.stats.RxDropped++
		return nil, nil
	}
}

// forLocal reports whether dst selects this node: its own unicast address,
// all-nodes multicast or its solicited-node group.
func (s *Stack) forLocal(dst core.Addr) bool {
	if dst.Equal(s.localAddr) {
		return true
	}
	allNodes := core.Addr{0xff, 0x02, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
	if dst.Equal(allNodes) {
		return true
	}
	return dst.Equal(s.localAddr.SolicitedNodeMulticast())
}

// verifyChecksum recomputes the upper-layer checksum over the pseudo header
// and payload. Summing the bytes together with the embedded checksum field
// must fold to zero.
func (s *Stack) verifyChecksum(ip codec.IPv6Header, payload []byte) bool {
	partial := checksum.PseudoHeaderSum(ip.Src, ip.Dst, uint32(len(payload)), ip.NextHeader)
	return checksum.Sum(payload, partial) == 0
}

func (s *Stack) rxICMPv6(ip codec.IPv6Header, payload []byte, now uint32) error {
	if !s.verifyChecksum(ip, payload) {
		s.stats.ChecksumErrors++
		return core.ErrChecksum
	}

	h, body, err := codec.DecodeICMPv6(payload)
	if err != nil {
		s.stats.RxErrors++
		return core.ErrInvalidParam
	}

	if h.Type == codec.ICMPv6EchoRequest && ip.Dst.Equal(s.localAddr) {
		s.txEchoReply(ip.Src, body, now)
	}
	return nil
}

func (s *Stack) rxUDP(ip codec.IPv6Header, payload []byte, buf *pool.Buffer) (*udpDelivery, error) {
	if !s.verifyChecksum(ip, payload) {
		s.stats.ChecksumErrors++
		return nil, core.ErrChecksum
	}

	h, data, err := codec.DecodeUDP(payload)
	if err != nil || int(h.Length) < codec.UDPHeaderLen || int(h.Length) > len(payload) {
		s.stats.RxErrors++
		return nil, core.ErrInvalidParam
	}
	data = data[:h.Length-codec.UDPHeaderLen]

	if s.udpHandler == nil {
		s.stats.RxDropped++
		return nil, nil
	}

	return &udpDelivery{
		handler: s.udpHandler,
		buf:     buf,
		src:     ip.Src,
		srcPort: h.SrcPort,
		dstPort: h.DstPort,
		payload: data,
	}, nil
}

func (s *Stack) rxTCP(ip codec.IPv6Header, payload []byte, now uint32) error {
	if !s.verifyChecksum(ip, payload) {
		s.stats.ChecksumErrors++
		return core.ErrChecksum
	}

	h, data, err := codec.DecodeTCP(payload)
	if err != nil {
		s.stats.RxErrors++
		return core.ErrInvalidParam
	}

	c := s.conns.Match(ip.Src, h.SrcPort, ip.Dst, h.DstPort)
	if c == nil {
		// No listener concept: a segment without a connection is dropped.
		s.stats.RxDropped++
		return nil
	}

	c.RecvNext = h.SeqNum + uint32(len(data))
	c.SendWindow = h.Window
	c.LastActivity = now

	if log.GetLogger().IsDebugEnabled() {
		log.GetLogger().Debugf("tcp rx: conn %s:%d<-%s:%d len %d",
			ip.Dst, h.DstPort, ip.Src, h.SrcPort, len(data))
	}
	return nil
}
