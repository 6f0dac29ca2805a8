package stack

// Statistics are the stack's monotonic counters. They only ever reset on a
// full re-Initialize. Counters are uint32 like the clock: on the embedded
// targets these live in a fixed context block and wrap rather than grow.
type Statistics struct {
	RxPackets      uint32
	TxPackets      uint32
	RxErrors       uint32
	TxErrors       uint32
	RxDropped      uint32
	TxDropped      uint32
	ChecksumErrors uint32
	RoutingErrors  uint32
}

// GetStatistics returns a snapshot taken under the critical section, so no
// reader ever observes a counter mid-increment.
func (s *Stack) GetStatistics() Statistics {
	s.plat.Enter()
	defer s.plat.Exit()
	return s.stats
}
