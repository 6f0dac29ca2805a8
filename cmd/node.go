package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/seregonwar/rtnet-stack/internal/config"
	"github.com/seregonwar/rtnet-stack/internal/core"
	"github.com/seregonwar/rtnet-stack/internal/link"
	"github.com/seregonwar/rtnet-stack/internal/log"
	"github.com/seregonwar/rtnet-stack/internal/metrics"
	"github.com/seregonwar/rtnet-stack/internal/platform"
	"github.com/seregonwar/rtnet-stack/internal/stack"
)

// node bundles a running stack with the link that feeds it.
type node struct {
	cfg    *config.Config
	stack  *stack.Stack
	driver *link.Driver
}

// startNode opens the configured device, initializes the stack with the
// node identity (configured or auto-detected from the device) and installs
// the static routes.
func startNode(cfg *config.Config) (*node, error) {
	drv, err := link.Open(cfg.Link)
	if err != nil {
		return nil, err
	}

	st := stack.New(platform.NewHost(drv.Transmit))

	addr, mac, err := nodeIdentity(cfg)
	if err != nil {
		drv.Close()
		return nil, err
	}
	if err := st.Initialize(addr, mac); err != nil {
		drv.Close()
		return nil, err
	}

	for _, r := range cfg.Routes {
		dest, err := core.ParseAddr(r.Destination)
		if err != nil {
			drv.Close()
			return nil, err
		}
		var nextHop core.Addr
		if r.NextHop != "" {
			if nextHop, err = core.ParseAddr(r.NextHop); err != nil {
				drv.Close()
				return nil, err
			}
		}
		if err := st.AddRoute(dest, r.PrefixLen, nextHop, r.Metric); err != nil {
			drv.Close()
			return nil, err
		}
	}

	return &node{cfg: cfg, stack: st, driver: drv}, nil
}

func nodeIdentity(cfg *config.Config) (core.Addr, core.HardwareAddr, error) {
	if cfg.Node.Address == "" || cfg.Node.MAC == "" {
		return link.Identity(cfg.Link.Device)
	}
	addr, err := core.ParseAddr(cfg.Node.Address)
	if err != nil {
		return core.Addr{}, core.HardwareAddr{}, err
	}
	mac, err := core.ParseHardwareAddr(cfg.Node.MAC)
	if err != nil {
		return core.Addr{}, core.HardwareAddr{}, err
	}
	return addr, mac, nil
}

// run pumps frames into the stack until SIGINT/SIGTERM, with the
// maintenance ticker and the optional metrics endpoint alongside.
func (n *node) run(parent context.Context) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer n.driver.Close()

	if n.cfg.Metrics.Enabled {
		srv := metrics.NewServer(n.cfg.Metrics.Listen, n.cfg.Metrics.Path, n.stack)
		if err := srv.Start(ctx); err != nil {
			return err
		}
		defer srv.Stop(context.Background())
	}

	go func() {
		ticker := time.NewTicker(time.Duration(n.cfg.Maintenance.IntervalMs) * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n.stack.PeriodicTask()
			}
		}
	}()

	err := n.driver.Run(ctx, n.stack.ProcessRxPacket)
	if ctx.Err() != nil {
		log.GetLogger().Info("shutting down")
		return nil
	}
	return err
}
