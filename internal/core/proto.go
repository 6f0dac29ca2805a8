package core

// IPv6 next-header protocol numbers handled by the stack.
const (
	ProtoTCP    uint8 = 6
	ProtoUDP    uint8 = 17
	ProtoICMPv6 uint8 = 58
)

// EtherTypeIPv6 is the Ethernet frame type for IPv6.
const EtherTypeIPv6 uint16 = 0x86dd

// Wire and pool geometry. Fixed at compile time so every table scan has a
// provable bound.
const (
	MTU        = 1500
	BufferSize = 1536 // MTU plus link-header headroom

	MaxRxBuffers      = 8
	MaxTxBuffers      = 8
	MaxTCPConnections = 4
	MaxRoutingEntries = 32
	MaxNeighborCache  = 16
	MaxMDNSRecords    = 8
)

// TCP-lite tuning constants.
const (
	TCPMSS        = 1280 // IPv6 minimum MTU minus headers
	TCPWindowSize = 4096
	TCPMaxRetries = 3
	TCPTimeoutMs  = 5000
)

// Aging timeouts, in milliseconds of GetTimeMs time.
const (
	NeighborTimeoutMs = 30 * 1000
	RouteTimeoutMs    = 5 * 60 * 1000
)

// EphemeralPortBase is the bottom of the IANA dynamic port range. The
// ephemeral cursor starts here and wraps back here, never into well-known
// ports. Port 0 is reserved as "auto-assign" in requests.
const EphemeralPortBase uint16 = 49152

// QoS priority levels for outbound buffers, highest first.
const (
	QoSCritical uint8 = 0
	QoSHigh     uint8 = 1
	QoSNormal   uint8 = 2
	QoSLow      uint8 = 3
)

// Elapsed returns now-then in wraparound-safe uint32 millisecond arithmetic.
// GetTimeMs wraps at 2^32; unsigned subtraction keeps ages correct across
// the wrap.
func Elapsed(now, then uint32) uint32 {
	return now - then
}
