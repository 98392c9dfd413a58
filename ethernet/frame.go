package ethernet

import (
	"encoding/binary"

	"github.com/soypat/dhcpc"
)

// NewFrame returns a Frame with data set to buf.
// An error is returned if the buffer is shorter than [SizeHeader].
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < SizeHeader {
		return Frame{buf: nil}, errShort
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of an untagged Ethernet frame without
// preamble, so the first byte is the start of the destination address.
// See [IEEE 802.3].
//
// [IEEE 802.3]: https://standards.ieee.org/ieee/802.3/7071/
type Frame struct {
	buf []byte
}

// RawData returns the underlying slice with which the frame was created.
func (efrm Frame) RawData() []byte { return efrm.buf }

// Payload returns the data following the header. When the EtherType field
// holds a size the payload is cut to it. Call [Frame.ValidateSize] first.
func (efrm Frame) Payload() []byte {
	et := efrm.EtherTypeOrSize()
	if et.IsSize() {
		return efrm.buf[SizeHeader : SizeHeader+int(et)]
	}
	return efrm.buf[SizeHeader:]
}

// DestinationHardwareAddr returns the target's MAC/hardware address.
func (efrm Frame) DestinationHardwareAddr() (dst *[6]byte) {
	return (*[6]byte)(efrm.buf[0:6])
}

// IsBroadcast returns true if the destination is ff:ff:ff:ff:ff:ff.
func (efrm Frame) IsBroadcast() bool {
	return *efrm.DestinationHardwareAddr() == BroadcastAddr()
}

// SourceHardwareAddr returns the sender's MAC/hardware address.
func (efrm Frame) SourceHardwareAddr() (src *[6]byte) {
	return (*[6]byte)(efrm.buf[6:12])
}

// EtherTypeOrSize returns the EtherType/Size field. See [Type.IsSize].
func (efrm Frame) EtherTypeOrSize() Type {
	return Type(binary.BigEndian.Uint16(efrm.buf[12:14]))
}

// SetEtherType sets the EtherType field.
func (efrm Frame) SetEtherType(v Type) {
	binary.BigEndian.PutUint16(efrm.buf[12:14], uint16(v))
}

// SetHeader writes a complete untagged header.
func (efrm Frame) SetHeader(dst, src [6]byte, et Type) {
	*efrm.DestinationHardwareAddr() = dst
	*efrm.SourceHardwareAddr() = src
	efrm.SetEtherType(et)
}

// ClearHeader zeros out the header.
func (efrm Frame) ClearHeader() {
	clear(efrm.buf[:SizeHeader])
}

// ValidateSize checks the size field against the buffer. VLAN tagged frames
// are reported as invalid since only untagged links are supported.
func (efrm Frame) ValidateSize(v *dhcpc.Validator) {
	et := efrm.EtherTypeOrSize()
	if et == TypeVLAN {
		v.AddError(errTagged)
	} else if et.IsSize() && len(efrm.buf)-SizeHeader < int(et) {
		v.AddError(errBadSize)
	}
}
