// Package dhcpmetrics exports DHCPv4 client activity as Prometheus metrics.
package dhcpmetrics

import (
	"net/netip"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/soypat/dhcpc/dhcpv4"
)

// Collector implements [dhcpv4.Observer] and [prometheus.Collector]. A
// Collector observes a single client. Label the metrics with ConstLabels
// through [NewCollector] to tell clients apart when several share a registry.
type Collector struct {
	drops       *prometheus.CounterVec
	transmits   *prometheus.CounterVec
	transitions *prometheus.CounterVec
	conflicts   prometheus.Counter
	leased      prometheus.Gauge
	lastPeer    *prometheus.GaugeVec
}

var _ dhcpv4.Observer = (*Collector)(nil)

// NewCollector returns a Collector whose metric names are prefixed with
// namespace. labels are attached to every metric and may be nil.
func NewCollector(namespace string, labels prometheus.Labels) *Collector {
	return &Collector{
		drops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "dhcp_drops_total",
			Help:        "Received datagrams dropped by the DHCP client by reason.",
			ConstLabels: labels,
		}, []string{"reason"}),
		transmits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "dhcp_transmits_total",
			Help:        "DHCP messages sent by type and destination kind.",
			ConstLabels: labels,
		}, []string{"message", "dst"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "dhcp_state_transitions_total",
			Help:        "DHCP client state transitions.",
			ConstLabels: labels,
		}, []string{"from", "to"}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "dhcp_address_conflicts_total",
			Help:        "Address conflicts detected on leased or probed addresses.",
			ConstLabels: labels,
		}),
		leased: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "dhcp_leased",
			Help:        "Whether the DHCP client currently holds a usable lease.",
			ConstLabels: labels,
		}),
		lastPeer: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "dhcp_conflict_address_info",
			Help:        "Last address that was found in conflict, value is always 1.",
			ConstLabels: labels,
		}, []string{"addr"}),
	}
}

// OnDrop implements [dhcpv4.Observer].
func (c *Collector) OnDrop(reason error) {
	label := "unknown"
	if reason != nil {
		label = reason.Error()
	}
	c.drops.WithLabelValues(label).Inc()
}

// OnTransmit implements [dhcpv4.Observer].
func (c *Collector) OnTransmit(mt dhcpv4.MessageType, dst [4]byte) {
	kind := "unicast"
	if dst == [4]byte{255, 255, 255, 255} {
		kind = "broadcast"
	}
	c.transmits.WithLabelValues(mt.String(), kind).Inc()
}

// OnStateChange implements [dhcpv4.Observer].
func (c *Collector) OnStateChange(from, to dhcpv4.ClientState) {
	c.transitions.WithLabelValues(from.String(), to.String()).Inc()
	if to.IsLeased() {
		c.leased.Set(1)
	} else {
		c.leased.Set(0)
	}
}

// OnConflict implements [dhcpv4.Observer].
func (c *Collector) OnConflict(addr [4]byte, peer [6]byte) {
	c.conflicts.Inc()
	c.lastPeer.Reset()
	c.lastPeer.WithLabelValues(netip.AddrFrom4(addr).String()).Set(1)
}

// Describe implements [prometheus.Collector].
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.drops.Describe(ch)
	c.transmits.Describe(ch)
	c.transitions.Describe(ch)
	c.conflicts.Describe(ch)
	c.leased.Describe(ch)
	c.lastPeer.Describe(ch)
}

// Collect implements [prometheus.Collector].
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.drops.Collect(ch)
	c.transmits.Collect(ch)
	c.transitions.Collect(ch)
	c.conflicts.Collect(ch)
	c.leased.Collect(ch)
	c.lastPeer.Collect(ch)
}
