// Package config handles node configuration loading using viper.
package config

import (
	"fmt"

	"github.com/seregonwar/rtnet-stack/internal/core"
	"github.com/seregonwar/rtnet-stack/internal/link"
	"github.com/seregonwar/rtnet-stack/internal/log"
)

// Config is the top-level node configuration.
type Config struct {
	Node        NodeConfig        `mapstructure:"node" yaml:"node"`
	Link        link.Config       `mapstructure:"link" yaml:"link"`
	Routes      []RouteConfig     `mapstructure:"routes" yaml:"routes"`
	Maintenance MaintenanceConfig `mapstructure:"maintenance" yaml:"maintenance"`
	Metrics     MetricsConfig     `mapstructure:"metrics" yaml:"metrics"`
	Log         log.Config        `mapstructure:"log" yaml:"log"`
}

// NodeConfig is the stack's own identity. Empty address or MAC means
// auto-detect from the link device.
type NodeConfig struct {
	Address string `mapstructure:"address" yaml:"address"`
	MAC     string `mapstructure:"mac" yaml:"mac"`
}

// RouteConfig is one static route installed at startup.
type RouteConfig struct {
	Destination string `mapstructure:"destination" yaml:"destination"`
	PrefixLen   uint8  `mapstructure:"prefix_len" yaml:"prefix_len"`
	NextHop     string `mapstructure:"next_hop" yaml:"next_hop"`
	Metric      uint16 `mapstructure:"metric" yaml:"metric"`
}

// MaintenanceConfig sets the housekeeping cadence.
type MaintenanceConfig struct {
	IntervalMs int `mapstructure:"interval_ms" yaml:"interval_ms"`
}

// MetricsConfig configures the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Listen  string `mapstructure:"listen" yaml:"listen"`
	Path    string `mapstructure:"path" yaml:"path"`
}

// Validate rejects configurations the stack could not start with.
func (c *Config) Validate() error {
	if c.Node.Address != "" {
		if _, err := core.ParseAddr(c.Node.Address); err != nil {
			return fmt.Errorf("node.address: %w", err)
		}
	}
	if c.Node.MAC != "" {
		if _, err := core.ParseHardwareAddr(c.Node.MAC); err != nil {
			return fmt.Errorf("node.mac: %w", err)
		}
	}
	if len(c.Routes) > core.MaxRoutingEntries {
		return fmt.Errorf("routes: %d static routes exceed the table capacity of %d",
			len(c.Routes), core.MaxRoutingEntries)
	}
	for i, r := range c.Routes {
		if _, err := core.ParseAddr(r.Destination); err != nil {
			return fmt.Errorf("routes[%d].destination: %w", i, err)
		}
		if r.PrefixLen > 128 {
			return fmt.Errorf("routes[%d].prefix_len: %d exceeds 128", i, r.PrefixLen)
		}
		if r.NextHop != "" {
			if _, err := core.ParseAddr(r.NextHop); err != nil {
				return fmt.Errorf("routes[%d].next_hop: %w", i, err)
			}
		}
	}
	if c.Maintenance.IntervalMs <= 0 {
		return fmt.Errorf("maintenance.interval_ms: must be positive, got %d", c.Maintenance.IntervalMs)
	}
	if c.Metrics.Enabled && c.Metrics.Listen == "" {
		return fmt.Errorf("metrics.listen: required when metrics are enabled")
	}
	return nil
}
