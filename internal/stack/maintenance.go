package stack

import "github.com/seregonwar/rtnet-stack/internal/log"

// PeriodicTask runs one housekeeping sweep: stale neighbors, idle routes
// and dead connections are reclaimed in that order. The sweep never
// allocates and never fails; calling it on an uninitialized stack is a
// no-op. Intended cadence is roughly once per second but any rate works.
func (s *Stack) PeriodicTask() {
	s.plat.Enter()
	defer s.plat.Exit()

	if !s.initialized {
		return
	}

	now := s.plat.NowMs()
	s.neighbors.Age(now)
	s.routes.Age(now)

	if n := s.conns.SweepIdle(now); n > 0 {
		log.GetLogger().Debugf("maintenance: reclaimed %d idle connections", n)
	}
}
