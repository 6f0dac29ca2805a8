package stack

import (
	"github.com/seregonwar/rtnet-stack/internal/checksum"
	"github.com/seregonwar/rtnet-stack/internal/codec"
	"github.com/seregonwar/rtnet-stack/internal/core"
	"github.com/seregonwar/rtnet-stack/internal/log"
	"github.com/seregonwar/rtnet-stack/internal/pool"
	"github.com/seregonwar/rtnet-stack/internal/route"
)

// SendUDP transmits one datagram. srcPort 0 requests an ephemeral port.
// Validation comes first and touches nothing; the routing and buffer
// failures are counted on the corresponding statistics before they are
// reported.
func (s *Stack) SendUDP(dest core.Addr, destPort, srcPort uint16, payload []byte, qos uint8) error {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return core.ErrNotInitialized
	}
	if dest.IsUnspecified() || destPort == 0 || len(payload) == 0 || len(payload) > core.MTU {
		return core.ErrInvalidParam
	}

	if srcPort == 0 {
		srcPort = s.ephemeralPort()
	}

	now := s.plat.NowMs()
	rt := s.routes.Find(dest, now)
	if rt == nil {
		s.stats.RoutingErrors++
		return core.ErrNoRoute
	}

	buf := s.txPool.Alloc(qos, now)
	if buf == nil {
		s.stats.TxDropped++
		return core.ErrNoBuffer
	}
	defer s.txPool.Free(buf)

	udpLen := codec.UDPHeaderLen + len(payload)
	if codec.EthernetHeaderLen+codec.IPv6HeaderLen+udpLen > core.BufferSize {
		return core.ErrInvalidParam
	}

	// Upper layer first: header plus payload, checksummed over the pseudo
	// header.
	upper := buf.Data[codec.EthernetHeaderLen+codec.IPv6HeaderLen:]
	codec.EncodeUDP(upper, codec.UDPHeader{
		SrcPort: srcPort,
		DstPort: destPort,
		Length:  uint16(udpLen),
	})
	copy(upper[codec.UDPHeaderLen:], payload)

	partial := checksum.PseudoHeaderSum(s.localAddr, dest, uint32(udpLen), core.ProtoUDP)
	ck := checksum.Sum(upper[:udpLen], partial)
	upper[6] = byte(ck >> 8)
	upper[7] = byte(ck)

	s.transmit(buf, rt, dest, core.ProtoUDP, udpLen, now)
	s.stats.TxPackets++
	return nil
}

// Connect admits a new TCP-lite connection and returns its id. The slot
// goes straight to Established: no SYN exchange happens on the wire, the
// transition is a local admission decision.
func (s *Stack) Connect(dest core.Addr, destPort uint16) (uint8, error) {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return 0, core.ErrNotInitialized
	}
	if dest.IsUnspecified() || destPort == 0 {
		return 0, core.ErrInvalidParam
	}

	now := s.plat.NowMs()
	if s.routes.Find(dest, now) == nil {
		s.stats.RoutingErrors++
		return 0, core.ErrNoRoute
	}

	id, err := s.conns.Open(s.localAddr, dest, s.ephemeralPort(), destPort, s.nextISN(), now)
	if err != nil {
		return 0, err
	}

	log.GetLogger().Debugf("tcp connect: id %d -> %s:%d", id, dest, destPort)
	return id, nil
}

// Send transmits data on an established connection as a single PSH|ACK
// segment. Data is not segmented against the MSS; callers respect it
// externally, and a payload that cannot fit one frame is rejected.
func (s *Stack) Send(id uint8, data []byte) error {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return core.ErrNotInitialized
	}
	if len(data) == 0 {
		return core.ErrInvalidParam
	}

	c, err := s.conns.Get(id)
	if err != nil {
		return err
	}

	tcpLen := codec.TCPHeaderLen + len(data)
	if codec.EthernetHeaderLen+codec.IPv6HeaderLen+tcpLen > core.BufferSize {
		return core.ErrInvalidParam
	}

	now := s.plat.NowMs()
	rt := s.routes.Find(c.RemoteAddr, now)
	if rt == nil {
		s.stats.RoutingErrors++
		return core.ErrNoRoute
	}

	buf := s.txPool.Alloc(core.QoSNormal, now)
	if buf == nil {
		s.stats.TxDropped++
		return core.ErrNoBuffer
	}
	defer s.txPool.Free(buf)

	upper := buf.Data[codec.EthernetHeaderLen+codec.IPv6HeaderLen:]
	codec.EncodeTCP(upper, codec.TCPHeader{
		SrcPort: c.LocalPort,
		DstPort: c.RemotePort,
		SeqNum:  c.SendNext,
		AckNum:  c.RecvNext,
		Flags:   codec.TCPFlagPsh | codec.TCPFlagAck,
		Window:  c.RecvWindow,
	})
	copy(upper[codec.TCPHeaderLen:], data)

	partial := checksum.PseudoHeaderSum(s.localAddr, c.RemoteAddr, uint32(tcpLen), core.ProtoTCP)
	ck := checksum.Sum(upper[:tcpLen], partial)
	upper[16] = byte(ck >> 8)
	upper[17] = byte(ck)

	s.transmit(buf, rt, c.RemoteAddr, core.ProtoTCP, tcpLen, now)

	c.SendNext += uint32(len(data))
	c.LastActivity = now
	s.stats.TxPackets++
	return nil
}

// Close releases a connection synchronously. There is no FIN_WAIT or
// TIME_WAIT linger: the slot is free for reuse when Close returns.
func (s *Stack) Close(id uint8) error {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return core.ErrNotInitialized
	}

	if err := s.conns.Release(id); err != nil {
		return err
	}

	log.GetLogger().Debugf("tcp close: id %d", id)
	return nil
}

// txEchoReply answers an echo request. Reply failures are invisible to the
// pinger and only show up as TX drop counters. Caller holds the critical
// section.
func (s *Stack) txEchoReply(dest core.Addr, body []byte, now uint32) {
	rt := s.routes.Find(dest, now)
	if rt == nil {
		s.stats.RoutingErrors++
		return
	}

	buf := s.txPool.Alloc(core.QoSHigh, now)
	if buf == nil {
		s.stats.TxDropped++
		return
	}
	defer s.txPool.Free(buf)

	icmpLen := codec.ICMPv6HeaderLen + len(body)
	if codec.EthernetHeaderLen+codec.IPv6HeaderLen+icmpLen > core.BufferSize {
		return
	}

	upper := buf.Data[codec.EthernetHeaderLen+codec.IPv6HeaderLen:]
	codec.EncodeICMPv6(upper, codec.ICMPv6Header{Type: codec.ICMPv6EchoReply})
	copy(upper[codec.ICMPv6HeaderLen:], body)

	partial := checksum.PseudoHeaderSum(s.localAddr, dest, uint32(icmpLen), core.ProtoICMPv6)
	ck := checksum.Sum(upper[:icmpLen], partial)
	upper[2] = byte(ck >> 8)
	upper[3] = byte(ck)

	s.transmit(buf, rt, dest, core.ProtoICMPv6, icmpLen, now)
	s.stats.TxPackets++
}

// transmit wraps the prepared upper-layer bytes in IPv6 and Ethernet
// headers and hands the frame to the platform. Caller holds the critical
// section and owns buf.
func (s *Stack) transmit(buf *pool.Buffer, rt *route.Entry, dest core.Addr, proto uint8, upperLen int, now uint32) {
	codec.EncodeIPv6(buf.Data[codec.EthernetHeaderLen:], codec.IPv6Header{
		PayloadLen: uint16(upperLen),
		NextHeader: proto,
		HopLimit:   codec.IPv6DefaultHopLimit,
		Src:        s.localAddr,
		Dst:        dest,
	})

	codec.EncodeEthernet(buf.Data[:], codec.EthernetHeader{
		Dst:       s.resolveLinkAddr(rt, dest, now),
		Src:       s.localMAC,
		EtherType: core.EtherTypeIPv6,
	})

	buf.Offset = 0
	buf.Length = uint16(codec.EthernetHeaderLen + codec.IPv6HeaderLen + upperLen)
	s.plat.Transmit(buf.Payload())
}

// resolveLinkAddr picks the destination MAC: the next hop's cached link
// address for gatewayed routes, the neighbor's for on-link traffic, the
// RFC 2464 group mapping for multicast. An unresolved unicast neighbor
// falls back to its solicited-node group so the frame still reaches the
// target's NIC filter.
func (s *Stack) resolveLinkAddr(rt *route.Entry, dest core.Addr, now uint32) core.HardwareAddr {
	target := dest
	if !rt.Directly() {
		target = rt.NextHop
	}

	if target.IsMulticast() {
		return target.MulticastHardwareAddr()
	}
	if hw, ok := s.neighbors.Lookup(target, now); ok {
		return hw
	}
	return target.SolicitedNodeMulticast().MulticastHardwareAddr()
}
