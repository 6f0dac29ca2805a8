// Package metrics exposes the stack's counters as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/seregonwar/rtnet-stack/internal/stack"
)

// Collector reads one statistics snapshot per scrape, so every family in a
// scrape comes from the same instant.
type Collector struct {
	stack *stack.Stack

	rxPackets      *prometheus.Desc
	txPackets      *prometheus.Desc
	rxErrors       *prometheus.Desc
	txErrors       *prometheus.Desc
	rxDropped      *prometheus.Desc
	txDropped      *prometheus.Desc
	checksumErrors *prometheus.Desc
	routingErrors  *prometheus.Desc
}

// NewCollector wraps s. Register the result on a prometheus.Registerer.
func NewCollector(s *stack.Stack) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc("rtnet_"+name, help, nil, nil)
	}
	return &Collector{
		stack:          s,
		rxPackets:      desc("rx_packets_total", "Frames admitted by the receive path"),
		txPackets:      desc("tx_packets_total", "Packets handed to the link for transmission"),
		rxErrors:       desc("rx_errors_total", "Malformed frames rejected after admission"),
		txErrors:       desc("tx_errors_total", "Transmit-side failures"),
		rxDropped:      desc("rx_dropped_total", "Valid frames dropped without an error verdict"),
		txDropped:      desc("tx_dropped_total", "Sends abandoned for want of a buffer"),
		checksumErrors: desc("checksum_errors_total", "Upper-layer checksum verification failures"),
		routingErrors:  desc("routing_errors_total", "Lookups with no matching route"),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.rxPackets
	ch <- c.txPackets
	ch <- c.rxErrors
	ch <- c.txErrors
	ch <- c.rxDropped
	ch <- c.txDropped
	ch <- c.checksumErrors
	ch <- c.routingErrors
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	st := c.stack.GetStatistics()
	counter := func(d *prometheus.Desc, v uint32) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v))
	}
	counter(c.rxPackets, st.RxPackets)
	counter(c.txPackets, st.TxPackets)
	counter(c.rxErrors, st.RxErrors)
	counter(c.txErrors, st.TxErrors)
	counter(c.rxDropped, st.RxDropped)
	counter(c.txDropped, st.TxDropped)
	counter(c.checksumErrors, st.ChecksumErrors)
	counter(c.routingErrors, st.RoutingErrors)
}
