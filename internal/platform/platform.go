// Package platform defines the capability interface the protocol engine
// needs from its target: a millisecond clock, a critical section and the
// hardware transmit hook. One implementation exists per target and is
// injected at stack construction, so the engine itself stays free of
// platform conditionals.
package platform

import (
	"sync"
	"time"
)

// Platform is the full set of collaborators the stack depends on.
type Platform interface {
	// NowMs returns monotonic milliseconds since boot. The value wraps at
	// 2^32; consumers must compare ages with wraparound-safe subtraction.
	NowMs() uint32

	// Enter and Exit bracket every read-modify-write of shared stack state.
	// No blocking, waiting or recursion is permitted inside the section.
	Enter()
	Exit()

	// Transmit hands a fully formed frame to the link layer. Fire and
	// forget: the stack never observes a transmit status.
	Transmit(frame []byte)
}

// TransmitFunc adapts a plain function to the transmit hook.
type TransmitFunc func(frame []byte)

// Host is the hosted (non-bare-metal) platform: wall-clock driven
// millisecond time, a mutex-backed critical section and a pluggable
// transmit function. It backs the AF_PACKET link driver and the tests.
type Host struct {
	mu    sync.Mutex
	start time.Time
	tx    TransmitFunc
}

// NewHost returns a Host transmitting through tx. A nil tx discards frames,
// which is what loopback-only tests want.
func NewHost(tx TransmitFunc) *Host {
	return &Host{start: time.Now(), tx: tx}
}

func (h *Host) NowMs() uint32 {
	return uint32(time.Since(h.start).Milliseconds())
}

func (h *Host) Enter() { h.mu.Lock() }
func (h *Host) Exit()  { h.mu.Unlock() }

func (h *Host) Transmit(frame []byte) {
	if h.tx != nil {
		h.tx(frame)
	}
}
