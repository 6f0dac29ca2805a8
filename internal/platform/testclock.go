package platform

import "sync"

// Fake is a Platform with a manually advanced clock and a frame recorder.
// Tests drive time explicitly so aging behavior is deterministic.
type Fake struct {
	mu     sync.Mutex
	now    uint32
	Frames [][]byte
}

// NewFake returns a Fake starting at time zero.
func NewFake() *Fake {
	return &Fake{}
}

// Advance moves the clock forward by ms.
func (f *Fake) Advance(ms uint32) {
	f.now += ms
}

// SetNow jumps the clock to an absolute value, including across the uint32
// wrap.
func (f *Fake) SetNow(ms uint32) {
	f.now = ms
}

func (f *Fake) NowMs() uint32 { return f.now }

func (f *Fake) Enter() { f.mu.Lock() }
func (f *Fake) Exit() { f.mu.Unlock() }

func (f *Fake) Transmit(frame []byte) {
	cp := make([]byte, len(frame))
	copy(cp, frame)
	f.Frames = append(f.Frames, cp)
}

// LastFrame returns the most recently transmitted frame, or nil.
func (f *Fake) LastFrame() []byte {
	if len(f.Frames) == 0 {
		return nil
	}
	return f.Frames[len(f.Frames)-1]
}
