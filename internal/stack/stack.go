// Package stack wires the protocol engine together: the buffer pools,
// routing table, neighbor cache, connection table and service records, all
// owned by a single Stack and serialized through the platform critical
// section. RX runs in the link driver's context, TX on caller threads and
// maintenance on a timer tick; none of them block and none of them allocate
// on the packet path.
package stack

import (
	"github.com/seregonwar/rtnet-stack/internal/conn"
	"github.com/seregonwar/rtnet-stack/internal/core"
	"github.com/seregonwar/rtnet-stack/internal/log"
	"github.com/seregonwar/rtnet-stack/internal/mdns"
	"github.com/seregonwar/rtnet-stack/internal/neighbor"
	"github.com/seregonwar/rtnet-stack/internal/platform"
	"github.com/seregonwar/rtnet-stack/internal/pool"
	"github.com/seregonwar/rtnet-stack/internal/route"
)

// UDPHandler receives locally delivered datagrams. It is invoked outside
// the critical section; implementations may call back into the stack.
type UDPHandler func(src core.Addr, srcPort, dstPort uint16, payload []byte)

// Stack is the process-wide protocol engine instance. All mutable state
// lives here; Initialize fully resets it and is a precondition for every
// other operation.
type Stack struct {
	plat platform.Platform

	rxPool    *pool.Pool
	txPool    *pool.Pool
	routes    route.Table
	neighbors neighbor.Cache
	conns     conn.Table
	services  mdns.Table

	localAddr core.Addr
	localMAC  core.HardwareAddr

	stats         Statistics
	nextEphemeral uint16
	isn           uint32
	initialized   bool

	udpHandler UDPHandler
}

// New returns a stack bound to plat. The stack is unusable until
// Initialize.
func New(plat platform.Platform) *Stack {
	return &Stack{
		plat:   plat,
		rxPool: pool.New(core.MaxRxBuffers),
		txPool: pool.New(core.MaxTxBuffers),
	}
}

// Initialize resets the whole stack, tables, pools and counters, and adopts
// the local identity. Destructive: a re-init wipes live connections and
// learned routes. The link-local prefix is seeded so on-link traffic works
// before any route is configured.
func (s *Stack) Initialize(localAddr core.Addr, localMAC core.HardwareAddr) error {
	if localAddr.IsUnspecified() || localAddr.IsMulticast() {
		return core.ErrInvalidParam
	}

	s.plat.Enter()
	defer s.plat.Exit()

	now := s.plat.NowMs()

	s.rxPool.Reset()
	s.txPool.Reset()
	s.routes.Reset()
	s.neighbors.Reset()
	s.conns.Reset()
	s.services.Reset()
	s.stats = Statistics{}

	s.localAddr = localAddr
	s.localMAC = localMAC
	s.nextEphemeral = core.EphemeralPortBase
	s.isn = now
	s.initialized = true

	if err := s.routes.Add(core.LinkLocalPrefix, core.LinkLocalPrefixLen, core.Addr{}, 1, now); err != nil {
		return err
	}

	log.GetLogger().WithFields(map[string]interface{}{
		"addr": localAddr.String(),
		"mac":  localMAC.String(),
	}).Info("stack initialized")

	return nil
}

// AddRoute installs a static route. A zero nextHop means directly
// connected.
func (s *Stack) AddRoute(destination core.Addr, prefixLen uint8, nextHop core.Addr, metric uint16) error {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return core.ErrNotInitialized
	}

	if err := s.routes.Add(destination, prefixLen, nextHop, metric, s.plat.NowMs()); err != nil {
		return err
	}

	log.GetLogger().Debugf("route added: %s/%d via %s metric %d",
		destination, prefixLen, nextHop, metric)
	return nil
}

// SetUDPHandler registers the delivery callback for inbound datagrams.
func (s *Stack) SetUDPHandler(h UDPHandler) {
	s.plat.Enter()
	s.udpHandler = h
	s.plat.Exit()
}

// Announce stores a service record behind the discovery boundary. No mDNS
// frames leave the node; the announcement is counted as a transmitted
// packet, matching the boundary contract.
func (s *Stack) Announce(name string, port uint16, ttlSec uint32) error {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return core.ErrNotInitialized
	}

	if err := s.services.Announce(name, s.localAddr, port, ttlSec, s.plat.NowMs()); err != nil {
		return err
	}

	s.stats.TxPackets++
	return nil
}

// Query resolves a service name from the local record table. A miss reports
// ErrTimeout, exactly as an unanswered wire query would.
func (s *Stack) Query(name string) (mdns.Record, error) {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return mdns.Record{}, core.ErrNotInitialized
	}

	return s.services.Query(name, s.plat.NowMs())
}

// LocalAddr returns the stack's own IPv6 address.
func (s *Stack) LocalAddr() core.Addr {
	s.plat.Enter()
	defer s.plat.Exit()
	return s.localAddr
}

// ephemeralPort hands out the next source port. The cursor wraps back to
// the ephemeral base, never into well-known ports. Caller holds the
// critical section.
func (s *Stack) ephemeralPort() uint16 {
	p := s.nextEphemeral
	s.nextEphemeral++
	if s.nextEphemeral == 0 {
		s.nextEphemeral = core.EphemeralPortBase
	}
	return p
}

// nextISN returns an initial sequence number for a new connection. Coarse
// spacing keeps segments from adjacent connections apart. Caller holds the
// critical section.
func (s *Stack) nextISN() uint32 {
	s.isn += 64000
	return s.isn
}
