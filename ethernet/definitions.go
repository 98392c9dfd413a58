package ethernet

import "errors"

// SizeHeader is the length of an untagged Ethernet header.
const SizeHeader = 14

// BroadcastAddr returns the all 0xff's broadcast hardware/MAC address.
func BroadcastAddr() [6]byte {
	return [6]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
}

// Type is the EtherType field of an Ethernet header. Values up to 1500
// encode the payload size instead.
type Type uint16

// IsSize returns true if the EtherType is actually the size of the payload
// and should NOT be interpreted as an EtherType.
func (et Type) IsSize() bool { return et <= 1500 }

// EtherTypes used by address configuration.
const (
	TypeIPv4 Type = 0x0800
	TypeARP  Type = 0x0806
	TypeVLAN Type = 0x8100
)

var (
	errShort   = errors.New("ethernet: too short")
	errTagged  = errors.New("ethernet: VLAN tagged frame")
	errBadSize = errors.New("ethernet: size field exceeds frame")
)
