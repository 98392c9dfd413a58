package dhcpv4

import (
	"errors"

	"github.com/soypat/dhcpc"
)

// Clients is a caller owned collection of clients keyed by interface index.
// Like [Client] its methods must be serialized by the caller.
type Clients struct {
	entries []clientEntry
}

type clientEntry struct {
	iface int
	c     *Client
}

var errDuplicateIface = errors.New("interface already has a DHCPv4 client")

// Add registers c for the interface. Each interface holds at most one client.
func (cs *Clients) Add(iface int, c *Client) error {
	if c == nil {
		return errors.New("nil client")
	} else if cs.index(iface) >= 0 {
		return errDuplicateIface
	}
	cs.entries = append(cs.entries, clientEntry{iface: iface, c: c})
	return nil
}

// Remove stops and removes the client of the interface and returns it, or
// nil if none is registered.
func (cs *Clients) Remove(iface int) *Client {
	i := cs.index(iface)
	if i < 0 {
		return nil
	}
	c := cs.entries[i].c
	c.StopAssign()
	cs.entries = append(cs.entries[:i], cs.entries[i+1:]...)
	return c
}

// Client returns the client of the interface or nil.
func (cs *Clients) Client(iface int) *Client {
	i := cs.index(iface)
	if i < 0 {
		return nil
	}
	return cs.entries[i].c
}

// Len returns the number of registered clients.
func (cs *Clients) Len() int { return len(cs.entries) }

func (cs *Clients) index(iface int) int {
	for i := range cs.entries {
		if cs.entries[i].iface == iface {
			return i
		}
	}
	return -1
}

// Tick advances every registered client.
func (cs *Clients) Tick(seconds uint32) {
	for i := range cs.entries {
		cs.entries[i].c.Tick(seconds)
	}
}

// Received delivers a datagram received on iface to its client.
func (cs *Clients) Received(iface int, src [4]byte, srcPort uint16, payload []byte) error {
	c := cs.Client(iface)
	if c == nil {
		return dhcpc.ErrPacketDrop
	}
	return c.Received(src, srcPort, payload)
}

func (cs *Clients) StartAssign(iface int) error {
	c := cs.Client(iface)
	if c == nil {
		return errNotConfigured
	}
	return c.StartAssign()
}

func (cs *Clients) StopAssign(iface int) {
	if c := cs.Client(iface); c != nil {
		c.StopAssign()
	}
}

func (cs *Clients) OnBroadcastAddressAvailability(iface int, ready bool) {
	if c := cs.Client(iface); c != nil {
		c.OnBroadcastAddressAvailability(ready)
	}
}

func (cs *Clients) OnLinkAddressReady(iface int, hw [6]byte) {
	if c := cs.Client(iface); c != nil {
		c.OnLinkAddressReady(hw)
	}
}

func (cs *Clients) OnConflictDetected(iface int, peer [6]byte) {
	if c := cs.Client(iface); c != nil {
		c.OnConflictDetected(peer)
	}
}

func (cs *Clients) OnProbeResult(iface int, unique bool, peer [6]byte) {
	if c := cs.Client(iface); c != nil {
		c.OnProbeResult(unique, peer)
	}
}

// LeasedAddr returns the leased address of the interface client.
func (cs *Clients) LeasedAddr(iface int) ([4]byte, bool) {
	if c := cs.Client(iface); c != nil {
		return c.LeasedAddr()
	}
	return [4]byte{}, false
}
