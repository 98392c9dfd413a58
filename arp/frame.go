package arp

import (
	"encoding/binary"

	"github.com/soypat/dhcpc"
	"github.com/soypat/dhcpc/ethernet"
)

// NewFrame returns a Frame with data set to buf.
// An error is returned if the buffer size is smaller than 28 (IPv4 min size).
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < sizeHeaderv4 {
		return Frame{buf: nil}, errShortARP
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an IPv4 over Ethernet ARP packet. See [RFC826].
//
// [RFC826]: https://tools.ietf.org/html/rfc826
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (afrm Frame) RawData() []byte { return afrm.buf }

// Hardware returns the link protocol type and address length. Ethernet is 1.
func (afrm Frame) Hardware() (Type uint16, length uint8) {
	return binary.BigEndian.Uint16(afrm.buf[0:2]), afrm.buf[4]
}

// SetHardware sets the link protocol type and address length.
func (afrm Frame) SetHardware(Type uint16, length uint8) {
	binary.BigEndian.PutUint16(afrm.buf[0:2], Type)
	afrm.buf[4] = length
}

// Protocol returns the internet protocol EtherType and address length.
func (afrm Frame) Protocol() (Type ethernet.Type, length uint8) {
	return ethernet.Type(binary.BigEndian.Uint16(afrm.buf[2:4])), afrm.buf[5]
}

// SetProtocol sets the protocol type and length fields of the ARP frame.
func (afrm Frame) SetProtocol(Type ethernet.Type, length uint8) {
	binary.BigEndian.PutUint16(afrm.buf[2:4], uint16(Type))
	afrm.buf[5] = length
}

// Operation returns the ARP header operation field. See [Operation].
func (afrm Frame) Operation() Operation { return Operation(binary.BigEndian.Uint16(afrm.buf[6:8])) }

// SetOperation sets the ARP header operation field. See [Operation].
func (afrm Frame) SetOperation(op Operation) { binary.BigEndian.PutUint16(afrm.buf[6:8], uint16(op)) }

// Sender4 returns the sender hardware and IPv4 addresses.
func (afrm Frame) Sender4() (hardwareAddr *[6]byte, proto *[4]byte) {
	return (*[6]byte)(afrm.buf[8:14]), (*[4]byte)(afrm.buf[14:18])
}

// Target4 returns the target hardware and IPv4 addresses. The target
// hardware address is ignored in requests.
func (afrm Frame) Target4() (hardwareAddr *[6]byte, proto *[4]byte) {
	return (*[6]byte)(afrm.buf[18:24]), (*[4]byte)(afrm.buf[24:28])
}

// ClearHeader zeros out the fixed(non-variable) header contents.
func (afrm Frame) ClearHeader() {
	clear(afrm.buf[:sizeHeader])
}

// setHeader4 writes the fixed header of an IPv4 over Ethernet packet.
func (afrm Frame) setHeader4(op Operation) {
	afrm.SetHardware(htypeEthernet, 6)
	afrm.SetProtocol(ethernet.TypeIPv4, 4)
	afrm.SetOperation(op)
}

// ValidateSize checks the frame's address length fields against the buffer.
func (afrm Frame) ValidateSize(v *dhcpc.Validator) {
	_, hlen := afrm.Hardware()
	_, ilen := afrm.Protocol()
	minLen := sizeHeader + 2*(int(hlen)+int(ilen))
	if len(afrm.buf) < minLen {
		v.AddError(errShortARP)
	}
}

// Validate4 checks the frame is an IPv4 over Ethernet packet.
func (afrm Frame) Validate4(v *dhcpc.Validator) {
	afrm.ValidateSize(v)
	if htype, hlen := afrm.Hardware(); htype != htypeEthernet || hlen != 6 {
		v.AddError(errBadHardware)
	}
	if ptype, plen := afrm.Protocol(); ptype != ethernet.TypeIPv4 || plen != 4 {
		v.AddError(errBadProtocol)
	}
	if op := afrm.Operation(); op != OpRequest && op != OpReply {
		v.AddError(errARPUnsupported)
	}
}
