package dhcpv4

import (
	"encoding/binary"
	"errors"

	"github.com/soypat/dhcpc"
)

func readU16(b []byte) uint16     { return binary.BigEndian.Uint16(b) }
func readU32(b []byte) uint32     { return binary.BigEndian.Uint32(b) }
func writeU16(b []byte, v uint16) { binary.BigEndian.PutUint16(b, v) }
func writeU32(b []byte, v uint32) { binary.BigEndian.PutUint32(b, v) }

// EncodeOption writes the option code, length and data to dst and returns
// the number of bytes written.
func EncodeOption(dst []byte, opt OptNum, data ...byte) (int, error) {
	if len(data) > 255 {
		return 0, errors.New("DHCPv4 option data too long (>255)")
	} else if len(dst) < 2+len(data) {
		return 0, dhcpc.ErrShortBuffer
	}
	dst[0] = byte(opt)
	dst[1] = byte(len(data))
	copy(dst[2:], data)
	return 2 + len(data), nil
}

// optionLen returns the total size of the option starting at b[0], code and
// length fields included. Pad and end options are 1 byte long.
func optionLen(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, dhcpc.ErrMalformedOption
	}
	opt := OptNum(b[0])
	if opt == OptPad || opt == OptEnd {
		return 1, nil
	} else if len(b) < 2 {
		return 0, dhcpc.ErrMalformedOption
	}
	optlen := int(b[1])
	if optlen > len(b)-2 || !validOptionLen(opt, optlen) {
		return 0, dhcpc.ErrMalformedOption
	}
	return 2 + optlen, nil
}

// validOptionLen checks the data length of options with a defined size.
// Variable length options, empty ones included, are always valid.
func validOptionLen(opt OptNum, optlen int) bool {
	if fixed := opt.fixedLen(); fixed != 0 {
		return optlen == fixed
	} else if opt == OptRouter {
		return optlen >= 4 && optlen%4 == 0
	}
	return true
}

// scanOptions iterates over the options in buf starting at off and calls fn
// with the offset of each option and its data. It returns true if an end
// option terminated the scan.
func scanOptions(buf []byte, off int, fn func(off int, opt OptNum, data []byte) error) (end bool, err error) {
	for off < len(buf) {
		n, err := optionLen(buf[off:])
		if err != nil {
			return false, err
		}
		opt := OptNum(buf[off])
		switch opt {
		case OptEnd:
			return true, nil
		case OptPad:
			off++
			continue
		}
		err = fn(off, opt, buf[off+2:off+n])
		if err != nil {
			return false, err
		}
		off += n
	}
	return false, nil
}
