// Package conn implements the fixed table of TCP-lite connection control
// blocks. A connection is identified externally by its slot index; the index
// is reused only after the slot returns to the free state.
//
// The state machine is deliberately simplified: Open admits a connection
// straight to Established (no wire handshake), Release closes it
// synchronously (no FIN_WAIT or TIME_WAIT linger), and the only other exit
// is the inactivity sweep driven by periodic maintenance.
package conn

import "github.com/seregonwar/rtnet-stack/internal/core"

// State is a TCP-lite connection state.
type State uint8

// Connection states. New slots start Closed.
const (
	StateClosed State = iota
	StateListen
	StateSynSent
	StateSynRcvd
	StateEstablished
	StateFinWait
	StateCloseWait
	StateClosing
	StateTimeWait
)

var stateNames = [...]string{
	"CLOSED", "LISTEN", "SYN_SENT", "SYN_RCVD", "ESTABLISHED",
	"FIN_WAIT", "CLOSE_WAIT", "CLOSING", "TIME_WAIT",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "UNKNOWN"
}

// Connection is one control block.
type Connection struct {
	LocalAddr  core.Addr
	RemoteAddr core.Addr
	LocalPort  uint16
	RemotePort uint16

	State State

	SendNext   uint32 // next sequence to send
	SendUnack  uint32 // oldest unacknowledged
	RecvNext   uint32 // next expected sequence
	SendWindow uint16
	RecvWindow uint16

	RetransmitCount uint8
	LastActivity    uint32

	inUse bool
}

// Table is the fixed connection table. Callers serialize access.
type Table struct {
	conns [core.MaxTCPConnections]Connection
}

// Open claims a free slot for an admitted connection and returns its id.
// The slot goes straight to Established; admission is a local decision, no
// SYN exchange happens on the wire.
func (t *Table) Open(local, remote core.Addr, localPort, remotePort uint16, isn, nowMs uint32) (uint8, error) {
	for i := range t.conns {
		c := &t.conns[i]
		if c.inUse {
			continue
		}
		*c = Connection{
			LocalAddr:    local,
			RemoteAddr:   remote,
			LocalPort:    localPort,
			RemotePort:   remotePort,
			State:        StateEstablished,
			SendNext:     isn,
			SendUnack:    isn,
			SendWindow:   core.TCPWindowSize,
			RecvWindow:   core.TCPWindowSize,
			LastActivity: nowMs,
			inUse:        true,
		}
		return uint8(i), nil
	}
	return 0, core.ErrNoBuffer
}

// Get validates id against both the table bounds and the slot's in-use tag
// and returns the control block.
func (t *Table) Get(id uint8) (*Connection, error) {
	if int(id) >= len(t.conns) {
		return nil, core.ErrInvalidParam
	}
	c := &t.conns[id]
	if !c.inUse {
		return nil, core.ErrConnection
	}
	return c, nil
}

// Release closes id synchronously and frees its slot.
func (t *Table) Release(id uint8) error {
	c, err := t.Get(id)
	if err != nil {
		return err
	}
	c.State = StateClosed
	c.inUse = false
	return nil
}

// Match returns the established connection for the RX 4-tuple, or nil.
func (t *Table) Match(remote core.Addr, remotePort uint16, local core.Addr, localPort uint16) *Connection {
	for i := range t.conns {
		c := &t.conns[i]
		if c.inUse &&
			c.RemotePort == remotePort && c.LocalPort == localPort &&
			c.RemoteAddr.Equal(remote) && c.LocalAddr.Equal(local) {
			return c
		}
	}
	return nil
}

// SweepIdle force-closes connections inactive past the TCP timeout and
// returns how many were closed. An implicit close is not an error to any
// caller; nobody is notified synchronously.
func (t *Table) SweepIdle(nowMs uint32) int {
	closed := 0
	for i := range t.conns {
		c := &t.conns[i]
		if c.inUse && core.Elapsed(nowMs, c.LastActivity) > core.TCPTimeoutMs {
			c.State = StateClosed
			c.inUse = false
			closed++
		}
	}
	return closed
}

// InUse counts the occupied slots.
func (t *Table) InUse() int {
	n := 0
	for i := range t.conns {
		if t.conns[i].inUse {
			n++
		}
	}
	return n
}

// Reset clears the table. Used by stack re-init.
func (t *Table) Reset() {
	t.conns = [core.MaxTCPConnections]Connection{}
}
