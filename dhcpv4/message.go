package dhcpv4

import (
	"github.com/soypat/dhcpc"
)

// txParams holds everything needed to build a client message. Slices
// reference client owned buffers.
type txParams struct {
	kind     msgKind
	xid      uint32
	secs     uint16
	flags    Flags
	ciaddr   [4]byte
	chaddr   [6]byte
	reqAddr  [4]byte
	serverID [4]byte
	// FQDN option domain name. Omitted when empty.
	domain []byte
	// Configured option values, may be nil.
	opts *optionStore
}

// messageLength returns the exact size of the message built by buildMessage
// for the same parameters.
func messageLength(p *txParams) int {
	n := OptionsOffset + sizeMsgTypeAndEnd
	switch p.kind {
	case kindSimpleDiscover:
		return n
	case kindDecline:
		return n + 2*sizeAddrOption
	case kindRequestOffer:
		n += 2 * sizeAddrOption
	}
	n += paramReqListLen(p.opts.paramReqExtra())
	n += fqdnLen(p.domain)
	n += p.opts.txLen()
	return n
}

// buildMessage writes the message described by p to dst and returns the
// number of bytes written.
func buildMessage(dst []byte, p *txParams) (int, error) {
	mt := p.kind.messageType()
	if mt == msg {
		return 0, dhcpc.ErrUnexpectedMessage
	}
	want := messageLength(p)
	if len(dst) < want {
		return 0, dhcpc.ErrShortBuffer
	}
	frm, err := NewFrame(dst[:want])
	if err != nil {
		return 0, err
	}
	frm.ClearHeader()
	frm.SetOp(OpRequest)
	frm.SetHardware(1, 6, 0)
	frm.SetXID(p.xid)
	frm.SetSecs(p.secs)
	frm.SetFlags(p.flags)
	*frm.CIAddr() = p.ciaddr
	*frm.CHAddrAs6() = p.chaddr
	frm.SetMagicCookie(MagicCookie)

	opts := dst[OptionsOffset:want]
	n, err := EncodeOption(opts, OptMessageType, byte(mt))
	if err != nil {
		return 0, err
	}
	var nopt int
	if p.kind == kindRequestOffer || p.kind == kindDecline {
		nopt, err = EncodeOption(opts[n:], OptRequestedIPaddress, p.reqAddr[:]...)
		n += nopt
		if err != nil {
			return 0, err
		}
		nopt, err = EncodeOption(opts[n:], OptServerIdentification, p.serverID[:]...)
		n += nopt
		if err != nil {
			return 0, err
		}
	}
	if p.kind != kindSimpleDiscover && p.kind != kindDecline {
		nopt, err = encodeParamReqList(opts[n:], p.opts.paramReqExtra())
		n += nopt
		if err != nil {
			return 0, err
		}
		nopt, err = encodeFQDN(opts[n:], p.domain)
		n += nopt
		if err != nil {
			return 0, err
		}
		nopt, err = p.opts.encodeTx(opts[n:])
		n += nopt
		if err != nil {
			return 0, err
		}
	}
	if n >= len(opts) {
		return 0, dhcpc.ErrLengthMismatch
	}
	opts[n] = byte(OptEnd)
	n += OptionsOffset + 1
	if n != want {
		return 0, dhcpc.ErrLengthMismatch
	}
	return n, nil
}

type addr4 struct {
	addr  [4]byte
	valid bool
}

func (a *addr4) unpack() ([4]byte, bool) {
	return a.addr, a.valid
}

func (a *addr4) set4(addr [4]byte) {
	a.valid = true
	a.addr = addr
}

// reply is the structured content of a server reply.
type reply struct {
	xid      uint32
	msgType  MessageType
	yiaddr   [4]byte
	netmask  addr4
	router   addr4 // First router of the router option.
	serverID addr4
	// Lease time in seconds, infiniteLease if absent.
	lease    uint32
	t1       uint32
	t2       uint32
	overload uint8
}

// parseReply validates a server reply and extracts the options the client
// acts on. In simple mode only subnet mask and message type options are
// allowed. Nothing is returned unless the whole reply is well formed.
func parseReply(frm Frame, simple bool) (reply, error) {
	err := frm.ValidateReply()
	if err != nil {
		return reply{}, err
	}
	rx := reply{
		xid:    frm.XID(),
		yiaddr: *frm.YIAddr(),
		lease:  infiniteLease,
	}
	err = frm.ForEachOption(func(_ int, opt OptNum, data []byte) error {
		if simple && opt != OptSubnetMask && opt != OptMessageType {
			return dhcpc.ErrOptionNotAllowed
		}
		switch opt {
		case OptSubnetMask:
			rx.netmask.set4([4]byte(data))
		case OptRouter:
			rx.router.set4([4]byte(data[:4]))
		case OptIPAddressLeaseTime:
			rx.lease = readU32(data)
		case OptOptionOverload:
			rx.overload = data[0]
		case OptMessageType:
			rx.msgType = MessageType(data[0])
		case OptServerIdentification:
			rx.serverID.set4([4]byte(data))
		case OptRenewTimeValue:
			rx.t1 = readU32(data)
		case OptRebindingTimeValue:
			rx.t2 = readU32(data)
		}
		return nil
	})
	if err != nil {
		return reply{}, err
	}
	return rx, nil
}
