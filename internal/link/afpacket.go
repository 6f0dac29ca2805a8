// Package link drives a real network interface for the stack: an AF_PACKET
// ring delivers raw frames into ProcessRxPacket, and outbound frames from
// the platform Transmit hook go out the same socket. A kernel BPF filter
// drops non-IPv6 traffic before it ever crosses into user space.
package link

import (
	"context"
	"errors"
	"net"
	"os"

	"github.com/google/gopacket/afpacket"
	"golang.org/x/net/bpf"

	"github.com/seregonwar/rtnet-stack/internal/core"
	"github.com/seregonwar/rtnet-stack/internal/log"
)

// Config selects the capture interface and sizes the AF_PACKET ring.
type Config struct {
	Device       string `mapstructure:"device" yaml:"device"`
	SnapLen      int    `mapstructure:"snap_len" yaml:"snap_len"`
	BufferSizeMB int    `mapstructure:"buffer_size_mb" yaml:"buffer_size_mb"`
	TimeoutMs    int    `mapstructure:"timeout_ms" yaml:"timeout_ms"`
	FanoutID     uint16 `mapstructure:"fanout_id" yaml:"fanout_id"`
}

// DefaultConfig returns ring parameters sized for the stack's frame
// geometry.
func DefaultConfig() Config {
	return Config{
		SnapLen:      core.BufferSize,
		BufferSizeMB: 4,
		TimeoutMs:    100,
	}
}

// Driver owns one AF_PACKET TPACKET_V3 handle.
type Driver struct {
	handle *afpacket.TPacket
	device string
}

// Open creates the ring on cfg.Device and installs the IPv6-only filter.
func Open(cfg Config) (*Driver, error) {
	if cfg.Device == "" {
		return nil, core.ErrInvalidParam
	}
	if cfg.SnapLen <= 0 {
		cfg.SnapLen = core.BufferSize
	}
	if cfg.BufferSizeMB <= 0 {
		cfg.BufferSizeMB = 4
	}
	if cfg.TimeoutMs <= 0 {
		cfg.TimeoutMs = 100
	}

	frameSize, blockSize, numBlocks, err := ringGeometry(cfg.BufferSizeMB, cfg.SnapLen, os.Getpagesize())
	if err != nil {
		return nil, err
	}

	tp, err := afpacket.NewTPacket(
		afpacket.OptInterface(cfg.Device),
		afpacket.OptFrameSize(frameSize),
		afpacket.OptBlockSize(blockSize),
		afpacket.OptNumBlocks(numBlocks),
		afpacket.OptPollTimeout(cfg.TimeoutMs),
		afpacket.SocketRaw,
		afpacket.TPacketVersion3,
	)
	if err != nil {
		return nil, err
	}

	if cfg.FanoutID > 0 {
		if err := tp.SetFanout(afpacket.FanoutHashWithDefrag, cfg.FanoutID); err != nil {
			tp.Close()
			return nil, err
		}
	}

	filter, err := ipv6Filter(cfg.SnapLen)
	if err != nil {
		tp.Close()
		return nil, err
	}
	if err := tp.SetBPF(filter); err != nil {
		tp.Close()
		return nil, err
	}

	log.GetLogger().WithFields(map[string]interface{}{
		"device":     cfg.Device,
		"frame_size": frameSize,
		"block_size": blockSize,
		"num_blocks": numBlocks,
	}).Info("link opened")

	return &Driver{handle: tp, device: cfg.Device}, nil
}

// Run reads frames until ctx is cancelled, handing each one to rx. Poll
// timeouts just re-check the context; rx errors are the stack's verdict on
// a frame and are logged, not fatal.
func (d *Driver) Run(ctx context.Context, rx func(frame []byte) error) error {
	logger := log.GetLogger()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		data, _, err := d.handle.ReadPacketData()
		if err != nil {
			if errors.Is(err, afpacket.ErrTimeout) {
				continue
			}
			if errors.Is(err, afpacket.ErrPoll) {
				logger.WithError(err).Warn("link poll error")
				continue
			}
			return err
		}

		if err := rx(data); err != nil && logger.IsDebugEnabled() {
			logger.WithError(err).Debugf("rx rejected frame of %d bytes", len(data))
		}
	}
}

// Transmit writes one frame to the wire. It matches the platform Transmit
// hook signature, which has no error path; a send failure is logged and
// the frame is gone, the same as a drop on a congested link.
func (d *Driver) Transmit(frame []byte) {
	if err := d.handle.WritePacketData(frame); err != nil {
		log.GetLogger().WithError(err).Warn("link transmit failed")
	}
}

// Close tears down the ring.
func (d *Driver) Close() error {
	d.handle.Close()
	return nil
}

// Identity reads the device's MAC and link-local IPv6 address, the natural
// node identity for Initialize.
func Identity(device string) (core.Addr, core.HardwareAddr, error) {
	ifi, err := net.InterfaceByName(device)
	if err != nil {
		return core.Addr{}, core.HardwareAddr{}, err
	}

	var mac core.HardwareAddr
	if len(ifi.HardwareAddr) != len(mac) {
		return core.Addr{}, core.HardwareAddr{}, core.ErrInvalidParam
	}
	copy(mac[:], ifi.HardwareAddr)

	addrs, err := ifi.Addrs()
	if err != nil {
		return core.Addr{}, mac, err
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		ip := ipNet.IP.To16()
		if ip == nil || ip.To4() != nil || !ip.IsLinkLocalUnicast() {
			continue
		}
		var addr core.Addr
		copy(addr[:], ip)
		return addr, mac, nil
	}

	return core.Addr{}, mac, core.ErrNoRoute
}

// ipv6Filter assembles the classic "ether proto 0x86dd" program: load the
// EtherType halfword, accept the frame up to snapLen when it is IPv6,
// reject everything else in the kernel.
func ipv6Filter(snapLen int) ([]bpf.RawInstruction, error) {
	return bpf.Assemble([]bpf.Instruction{
		bpf.LoadAbsolute{Off: 12, Size: 2},
		bpf.JumpIf{Cond: bpf.JumpEqual, Val: uint32(core.EtherTypeIPv6), SkipTrue: 1},
		bpf.RetConstant{Val: 0},
		bpf.RetConstant{Val: uint32(snapLen)},
	})
}
