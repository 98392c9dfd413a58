package dhcpv4

import (
	"errors"

	"github.com/soypat/dhcpc"
)

// NewFrame returns a new DHCPv4 Frame with data set to buf.
// An error is returned if the buffer size is smaller than 240.
func NewFrame(buf []byte) (Frame, error) {
	if len(buf) < OptionsOffset {
		return Frame{}, dhcpc.ErrShortFrame
	}
	return Frame{buf: buf}, nil
}

// Frame encapsulates the raw data of a DHCP packet
// and provides methods for manipulating, validating and
// retrieving fields and payload data. See [RFC2131].
//
// [RFC2131]: https://tools.ietf.org/html/rfc2131
type Frame struct {
	buf []byte
}

// RawData returns the underlying buffer of the frame.
func (frm Frame) RawData() []byte { return frm.buf }

// OptionsPayload returns the options portion of the DHCP frame. May be zero lengthed.
func (frm Frame) OptionsPayload() []byte {
	return frm.buf[OptionsOffset:]
}

func (frm Frame) Op() Op      { return Op(frm.buf[0]) }
func (frm Frame) SetOp(op Op) { frm.buf[0] = byte(op) }

func (frm Frame) Hardware() (Type, Len, Ops uint8) {
	return frm.buf[1], frm.buf[2], frm.buf[3]
}

func (frm Frame) SetHardware(Type, Len, Ops uint8) {
	frm.buf[1], frm.buf[2], frm.buf[3] = Type, Len, Ops
}

func (frm Frame) XID() uint32       { return readU32(frm.buf[4:8]) }
func (frm Frame) SetXID(xid uint32) { writeU32(frm.buf[4:8], xid) }

func (frm Frame) Secs() uint16        { return readU16(frm.buf[8:10]) }
func (frm Frame) SetSecs(secs uint16) { writeU16(frm.buf[8:10], secs) }

func (frm Frame) Flags() Flags         { return Flags(readU16(frm.buf[10:12])) }
func (frm Frame) SetFlags(flags Flags) { writeU16(frm.buf[10:12], uint16(flags)) }

// CIAddr is the client IP address. If the client has not obtained an IP
// address yet, this field is set to 0.
func (frm Frame) CIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[12:16])
}

// YIAddr is the IP address offered by the server to the client.
func (frm Frame) YIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[16:20])
}

// SIAddr is the IP address of the next server to use in bootstrap. This
// field is used in DHCPOFFER and DHCPACK messages.
func (frm Frame) SIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[20:24])
}

// GIAddr is the gateway IP address.
func (frm Frame) GIAddr() *[4]byte {
	return (*[4]byte)(frm.buf[24:28])
}

// CHAddrAs6 returns [Frame.CHAddr] but limited to first 6 bytes.
func (frm Frame) CHAddrAs6() *[6]byte {
	return (*[6]byte)(frm.buf[28 : 28+6])
}

// CHAddr is the client hardware address. Can be up to 16 bytes in length but
// is usually 6 bytes for Ethernet.
func (frm Frame) CHAddr() *[16]byte {
	return (*[16]byte)(frm.buf[28:44])
}

// SName is the optional server host name field. It carries options when
// the overload option has the sname bit set.
func (frm Frame) SName() *[sizeSName]byte {
	return (*[sizeSName]byte)(frm.buf[snameOffset:fileOffset])
}

// File is the boot file name field. It carries options when the overload
// option has the file bit set.
func (frm Frame) File() *[sizeBootFile]byte {
	return (*[sizeBootFile]byte)(frm.buf[fileOffset:sizeFixedHeader])
}

func (frm Frame) MagicCookie() uint32 { return readU32(frm.buf[magicCookieOffset:]) }
func (frm Frame) SetMagicCookie(cookie uint32) {
	writeU32(frm.buf[magicCookieOffset:], cookie)
}

// ClearHeader zeros out the header contents.
func (frm Frame) ClearHeader() {
	clear(frm.buf[:OptionsOffset])
}

// ValidateReply checks the fixed fields a client expects in a server reply.
func (frm Frame) ValidateReply() error {
	if len(frm.buf) <= OptionsOffset {
		return dhcpc.ErrShortFrame
	} else if frm.Op() != OpReply {
		return dhcpc.ErrNotBootReply
	}
	htype, hlen, _ := frm.Hardware()
	if htype != 1 || hlen != 6 {
		return dhcpc.ErrBadHardware
	} else if frm.MagicCookie() != MagicCookie {
		return dhcpc.ErrBadCookie
	}
	return nil
}

// ForEachOption calls fn for every option in the frame, pad and end options
// excluded. The options area must be terminated by an end option. When an
// overload option is found the file field and then the sname field are
// scanned as additional option space, each of which must also be terminated
// by an end option. Scanning stops at the first malformed option or at the
// first error returned by fn.
func (frm Frame) ForEachOption(fn func(off int, opt OptNum, data []byte) error) error {
	if fn == nil {
		return errors.New("nil function to parse DHCP")
	} else if len(frm.buf) <= OptionsOffset {
		return dhcpc.ErrShortFrame
	}
	var overload uint8
	end, err := scanOptions(frm.buf, OptionsOffset, func(off int, opt OptNum, data []byte) error {
		if opt == OptOptionOverload {
			overload = data[0]
		}
		return fn(off, opt, data)
	})
	if err != nil {
		return err
	} else if !end {
		return dhcpc.ErrMissingEnd
	}
	if overload&overloadFile != 0 {
		end, err = scanOptions(frm.buf[:sizeFixedHeader], fileOffset, fn)
		if err != nil {
			return err
		} else if !end {
			return dhcpc.ErrMissingEnd
		}
	}
	if overload&overloadSName != 0 {
		end, err = scanOptions(frm.buf[:fileOffset], snameOffset, fn)
		if err != nil {
			return err
		} else if !end {
			return dhcpc.ErrMissingEnd
		}
	}
	return nil
}

