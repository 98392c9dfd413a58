package dhcpv4

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/gopacket/layers"
	"github.com/soypat/dhcpc"
	"github.com/soypat/dhcpc/internal"
)

var broadcastAddr = [4]byte{255, 255, 255, 255}

// ClientConfig configures a [Client]. Transport is required, all other
// collaborators are optional unless noted.
type ClientConfig struct {
	// HardwareAddr is the client hardware address placed in chaddr. May be
	// set later with [Client.OnLinkAddressReady].
	HardwareAddr [6]byte
	// InitDelay is the time in seconds spent in INIT before a DISCOVER is
	// sent. Zero is treated as one second.
	InitDelay uint16
	// TransmitRetries bounds the immediate resends after a failed transmit.
	TransmitRetries uint8
	// ConflictDetection probes the offered address before use and defends it
	// while leased. Requires Prober.
	ConflictDetection bool
	// Simple enables the reduced client: non-standard ports, no requests,
	// offers with a subnet mask bind directly with an infinite lease.
	Simple bool
	// DomainNameSize is the FQDN buffer size including the terminator.
	// Zero selects [DefaultDomainNameSize].
	DomainNameSize int
	// DomainName is the initial FQDN option name in wire format, without the
	// root terminator. See [FQDNFromHostname].
	DomainName []byte
	// Options configures the option store slots.
	Options []OptionConfig
	// OptionValues preloads values into configured Options slots.
	OptionValues layers.DHCPOptions
	// StaticNetmask and StaticGateway are used when the server provides none.
	StaticNetmask [4]byte
	StaticGateway [4]byte
	// RandomSeed seeds transaction ID and probe delay generation. Zero derives
	// a seed from the hardware address.
	RandomSeed uint32

	Transport   Transport
	AddrManager AddrManager
	Prober      Prober
	Observer    Observer
	Logger      *slog.Logger
}

// Client is a DHCPv4 client for a single interface. Its methods must be
// serialized by the caller except for [Client.State].
type Client struct {
	state atomic.Uint32
	logger

	tr  Transport
	am  AddrManager
	pr  Prober
	obs Observer

	hwaddr     [6]byte
	initDelay  uint32
	retries    uint8
	dad        bool
	simple     bool
	staticMask [4]byte
	staticGW   [4]byte
	domainSize int
	domain     []byte
	opts       optionStore
	rng        internal.Rand
	txbuf      []byte

	xid      uint32
	secs     uint16
	lt       leaseTimes
	addr     [4]byte // Held address, zero when none.
	reqAddr  [4]byte // Offered address.
	serverID [4]byte
	gateway  addr4
	netmask  addr4

	rtx          uint32
	stateTimer   uint32
	backoff      internal.Backoff
	retryCount   uint8
	retryPending bool
	conflicts    uint8

	broadcastReady bool
	socketOpen     bool
	txKind         msgKind
	txDst          [4]byte
}

// input carries event data to the dispatcher.
type input struct {
	rx   reply
	frm  Frame
	peer [6]byte
}

var (
	errNoTransport    = errors.New("nil Transport")
	errNoProber       = errors.New("conflict detection requires a Prober")
	errDomainSize     = errors.New("domain name size out of range [2, 252]")
	errDomainTooLong  = errors.New("domain name exceeds domain name size")
	errNotConfigured  = errors.New("DHCPv4 client not configured")
	errAlreadyStarted = errors.New("DHCPv4 client already started")
)

// Reset stops the client and applies a new configuration. On error the
// client is left inactive and unconfigured.
func (c *Client) Reset(cfg ClientConfig) error {
	c.StopAssign()
	c.tr = nil
	domainSize := cfg.DomainNameSize
	if domainSize == 0 {
		domainSize = DefaultDomainNameSize
	}
	v := dhcpc.NewValidator(dhcpc.ValidateAllowMultiErrors)
	if cfg.Transport == nil {
		v.AddFieldErr("Transport", errNoTransport)
	}
	if cfg.ConflictDetection && cfg.Prober == nil {
		v.AddFieldErr("Prober", errNoProber)
	}
	if domainSize < 2 || domainSize > 255-sizeFQDNFixed {
		v.AddFieldErr("DomainNameSize", errDomainSize)
	} else if len(cfg.DomainName) > domainSize-1 {
		v.AddFieldErr("DomainName", errDomainTooLong)
	}
	if v.HasError() {
		return v.Err()
	}
	err := c.opts.reset(cfg.Options)
	if err != nil {
		return err
	}
	err = c.opts.preload(cfg.OptionValues)
	if err != nil {
		return err
	}
	if cap(c.domain) < domainSize-1 {
		c.domain = make([]byte, 0, domainSize-1)
	}
	c.domain = append(c.domain[:0], cfg.DomainName...)
	c.domainSize = domainSize
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = readU32(cfg.HardwareAddr[2:6])
	}
	c.logger = logger{log: cfg.Logger}
	c.tr = cfg.Transport
	c.am = cfg.AddrManager
	c.pr = cfg.Prober
	c.obs = cfg.Observer
	c.hwaddr = cfg.HardwareAddr
	c.initDelay = uint32(cfg.InitDelay)
	c.retries = cfg.TransmitRetries
	c.dad = cfg.ConflictDetection
	c.simple = cfg.Simple
	c.staticMask = cfg.StaticNetmask
	c.staticGW = cfg.StaticGateway
	c.rng = internal.NewRand(seed)
	c.broadcastReady = false
	c.socketOpen = false
	if n := c.maxMessageLength(); cap(c.txbuf) < n {
		c.txbuf = make([]byte, n)
	} else {
		c.txbuf = c.txbuf[:n]
	}
	return nil
}

func (c *Client) maxMessageLength() int {
	extra := 0
	if i := c.opts.index(OptParameterRequestList); i >= 0 {
		extra = int(c.opts.cfg[i].MaxLen)
	}
	return OptionsOffset + sizeMsgTypeAndEnd + 2*sizeAddrOption +
		2 + defaultParamReqLen + extra +
		2 + sizeFQDNFixed + c.domainSize +
		c.opts.maxTxLen()
}

// StartAssign starts address acquisition. If the broadcast address is
// already usable the client binds its endpoint and enters INIT.
func (c *Client) StartAssign() error {
	if c.tr == nil {
		return errNotConfigured
	} else if c.State() != StateInactive {
		return errAlreadyStarted
	}
	c.info("DHCPv4:start", internal.SlogAddr6("hw", &c.hwaddr), slog.Bool("simple", c.simple))
	c.setState(StateStartDelay)
	if c.broadcastReady {
		c.bindAndInit()
	}
	return nil
}

// StopAssign releases any held address, closes the endpoint and clears all
// runtime state. Configuration is kept.
func (c *Client) StopAssign() {
	state := c.State()
	if state == StateInactive {
		return
	}
	c.info("DHCPv4:stop", slog.String("state", state.String()))
	if state.IsLeased() {
		c.unassign()
	}
	if state == StateProbing || state.IsLeased() {
		c.stopProbe()
	}
	c.unbind()
	c.clearRuntime()
	c.conflicts = 0
	c.setState(StateInactive)
}

// OnBroadcastAddressAvailability reports whether the limited broadcast
// address can be used on the interface.
func (c *Client) OnBroadcastAddressAvailability(ready bool) {
	c.broadcastReady = ready
	if ready {
		c.dispatch(evBroadcastReady, nil)
	} else {
		c.dispatch(evBroadcastLost, nil)
	}
}

// OnLinkAddressReady sets the hardware address used in subsequent messages.
func (c *Client) OnLinkAddressReady(hw [6]byte) {
	c.hwaddr = hw
}

// OnConflictDetected reports that peer claims the leased address.
func (c *Client) OnConflictDetected(peer [6]byte) {
	c.dispatch(evConflict, &input{peer: peer})
}

// OnProbeResult reports the result of a probe started by the client. peer is
// the hardware address of the conflicting host when unique is false.
func (c *Client) OnProbeResult(unique bool, peer [6]byte) {
	if unique {
		c.dispatch(evProbeUnique, nil)
	} else {
		c.dispatch(evProbeDuplicate, &input{peer: peer})
	}
}

// Received processes a UDP payload received on the client port. A returned
// error means the datagram was dropped and the client state is unchanged.
func (c *Client) Received(src [4]byte, srcPort uint16, payload []byte) error {
	state := c.State()
	if state == StateInactive {
		return c.drop(dhcpc.ErrInactive)
	} else if state < StateSelecting || c.xid == 0 {
		return c.drop(dhcpc.ErrUnexpectedMessage)
	} else if srcPort != c.serverPort() {
		return c.drop(dhcpc.ErrPacketDrop)
	}
	frm, err := NewFrame(payload)
	if err != nil {
		return c.drop(err)
	}
	var in input
	in.rx, err = parseReply(frm, c.simple)
	if err != nil {
		return c.drop(err)
	} else if in.rx.xid != c.xid {
		return c.drop(dhcpc.ErrMismatchXID)
	}
	in.frm = frm
	c.trace("DHCPv4:recv",
		internal.SlogAddr4("src", &src),
		slog.String("msg", in.rx.msgType.String()),
		slog.String("state", state.String()),
	)
	err = c.dispatch(evReceived, &in)
	if err != nil {
		return c.drop(err)
	}
	return nil
}

func (c *Client) drop(err error) error {
	c.trace("DHCPv4:drop", internal.SlogErr(err))
	if c.obs != nil {
		c.obs.OnDrop(err)
	}
	return err
}

// dispatch runs the state machine for an event. Only received messages can
// be rejected with an error.
func (c *Client) dispatch(ev event, in *input) error {
	state := c.State()
	switch ev {
	case evBroadcastReady:
		if state == StateStartDelay {
			c.bindAndInit()
		} else if state != StateInactive && !c.socketOpen {
			c.bind()
		}
		return nil
	case evBroadcastLost:
		if state != StateInactive {
			c.unbind()
		}
		return nil
	}

	switch state {
	case StateInit:
		if ev == evStateTimeout {
			c.enterSelecting()
		}

	case StateSelecting:
		switch ev {
		case evReceived:
			if in.rx.msgType != MsgOffer {
				return dhcpc.ErrUnexpectedMessage
			} else if c.simple {
				return c.simpleOffer(in)
			}
			return c.enterRequesting(in)
		case evRetransTimeout, evImmediateRetry:
			c.retransmit(ev)
		case evStateTimeout:
			c.enterInit(c.initDelay)
		}

	case StateRequesting:
		switch ev {
		case evReceived:
			switch in.rx.msgType {
			case MsgAck:
				c.requestAcked(in)
			case MsgNack:
				c.info("DHCPv4:nak", slog.String("state", state.String()))
				c.enterInit(c.initDelay)
			default:
				return dhcpc.ErrUnexpectedMessage
			}
		case evRetransTimeout, evImmediateRetry:
			c.retransmit(ev)
		case evStateTimeout:
			c.enterInit(c.initDelay)
		}

	case StateProbing:
		switch ev {
		case evReceived:
			return dhcpc.ErrUnexpectedMessage
		case evProbeUnique:
			c.enterBound()
		case evProbeDuplicate:
			c.decline(in.peer)
		case evStateTimeout:
			c.stopProbe()
			c.enterInit(c.initDelay)
		}

	case StateBound:
		switch ev {
		case evReceived:
			if c.simple && in.rx.msgType == MsgOffer {
				return c.simpleOffer(in)
			}
			return dhcpc.ErrUnexpectedMessage
		case evStateTimeout:
			c.enterRenewing()
		case evConflict:
			c.decline(in.peer)
		}

	case StateRenewing, StateRebinding:
		switch ev {
		case evReceived:
			switch in.rx.msgType {
			case MsgAck:
				c.extendAcked(in)
			case MsgNack:
				c.info("DHCPv4:nak", slog.String("state", state.String()))
				c.release()
			default:
				return dhcpc.ErrUnexpectedMessage
			}
		case evRetransTimeout, evImmediateRetry:
			c.retransmit(ev)
		case evStateTimeout:
			if state == StateRenewing {
				c.enterRebinding()
			} else {
				c.info("DHCPv4:lease-expired", internal.SlogAddr4("addr", &c.addr))
				c.release()
			}
		case evConflict:
			c.decline(in.peer)
		}

	default:
		if ev == evReceived {
			return dhcpc.ErrUnexpectedMessage
		}
	}
	return nil
}

func (c *Client) bindAndInit() {
	if c.bind() {
		c.enterInit(c.initDelay)
	}
}

func (c *Client) bind() bool {
	if c.socketOpen {
		return true
	}
	err := c.tr.Bind(c.clientPort())
	if err != nil {
		c.error("DHCPv4:bind", internal.SlogErr(err))
		return false
	}
	c.socketOpen = true
	return true
}

func (c *Client) unbind() {
	if !c.socketOpen {
		return
	}
	c.socketOpen = false
	err := c.tr.Close()
	if err != nil {
		c.warn("DHCPv4:close", internal.SlogErr(err))
	}
}

func (c *Client) clearRuntime() {
	c.xid = 0
	c.secs = secsStop
	c.lt = leaseTimes{}
	c.addr = [4]byte{}
	c.reqAddr = [4]byte{}
	c.serverID = [4]byte{}
	c.gateway = addr4{}
	c.netmask = addr4{}
	c.rtx = 0
	c.stateTimer = 0
	c.retryCount = 0
	c.retryPending = false
	c.txKind = kindNone
}

func (c *Client) enterInit(delay uint32) {
	c.clearRuntime()
	c.stateTimer = max(delay, 1)
	c.setState(StateInit)
}

func (c *Client) enterSelecting() {
	if c.simple {
		c.xid = readU32(c.hwaddr[2:6])
	} else {
		c.xid = c.rng.Uint32()
	}
	c.armAcquisition()
	if !c.simple {
		c.stateTimer = selectingTimeout
	}
	c.setState(StateSelecting)
	kind := kindDiscover
	if c.simple {
		kind = kindSimpleDiscover
	}
	c.send(kind, broadcastAddr)
}

func (c *Client) enterRequesting(in *input) error {
	serverID, ok := in.rx.serverID.unpack()
	if !ok || in.rx.yiaddr == [4]byte{} {
		return dhcpc.ErrPacketDrop
	}
	c.serverID = serverID
	c.reqAddr = in.rx.yiaddr
	c.secs = 0
	c.armAcquisition()
	c.stateTimer = selectingTimeout
	c.setState(StateRequesting)
	c.send(kindRequestOffer, broadcastAddr)
	return nil
}

// evaluateReply applies lease validation and the probing T1 threshold.
func (c *Client) evaluateReply(rx *reply) (leaseTimes, bool) {
	lt, ok := evaluateLease(rx.lease, rx.t1, rx.t2, c.secsValue())
	if ok && c.dad && lt.t1 != 0 && lt.t1 <= minProbeT1 {
		ok = false
	}
	return lt, ok
}

func (c *Client) requestAcked(in *input) {
	lt, ok := c.evaluateReply(&in.rx)
	if !ok {
		c.warn("DHCPv4:lease-rejected", slog.Uint64("lease", uint64(in.rx.lease)))
		c.enterInit(c.initDelay)
		return
	}
	c.addr = in.rx.yiaddr
	c.gateway = in.rx.router
	c.netmask = in.rx.netmask
	c.captureOptions(in.frm)
	c.applyLease(lt)
	if c.dad {
		c.enterProbing()
	} else {
		c.enterBound()
	}
}

func (c *Client) extendAcked(in *input) {
	lt, ok := c.evaluateReply(&in.rx)
	if !ok {
		c.warn("DHCPv4:lease-rejected", slog.Uint64("lease", uint64(in.rx.lease)))
		c.release()
		return
	}
	if in.rx.serverID.valid {
		c.serverID = in.rx.serverID.addr
	}
	if in.rx.router.valid {
		c.gateway = in.rx.router
	}
	if in.rx.netmask.valid {
		c.netmask = in.rx.netmask
	}
	c.captureOptions(in.frm)
	c.applyLease(lt)
	c.setState(StateBound)
}

// applyLease stops retransmission and arms the state timer with T1.
func (c *Client) applyLease(lt leaseTimes) {
	c.rtx = 0
	c.retryPending = false
	c.retryCount = 0
	c.txKind = kindNone
	c.lt = lt
	c.secs = secsStop
	c.stateTimer = lt.t1
	c.debug("DHCPv4:lease",
		internal.SlogAddr4("addr", &c.addr),
		slog.Uint64("lease", uint64(lt.lease)),
		slog.Uint64("t1", uint64(lt.t1)),
		slog.Uint64("t2", uint64(lt.t2)),
	)
}

func (c *Client) simpleOffer(in *input) error {
	mask, ok := in.rx.netmask.unpack()
	if !ok || in.rx.yiaddr == [4]byte{} {
		return dhcpc.ErrPacketDrop
	}
	if c.State().IsLeased() {
		c.unassign()
	}
	c.addr = in.rx.yiaddr
	c.reqAddr = in.rx.yiaddr
	c.netmask.set4(mask)
	c.applyLease(leaseTimes{})
	c.enterBound()
	return nil
}

func (c *Client) enterProbing() {
	var units uint32
	if c.conflicts >= maxConflicts {
		units = rateLimitInterval*10 + 1
	} else {
		units = c.rng.Intn(probeWait * 10)
	}
	c.setState(StateProbing)
	c.pr.StartProbe(c.addr, time.Duration(units)*100*time.Millisecond)
}

func (c *Client) enterBound() {
	c.setState(StateBound)
	c.info("DHCPv4:bound", internal.SlogAddr4("addr", &c.addr))
	if c.am != nil {
		mask, _ := c.Netmask()
		gw, _ := c.Gateway()
		c.am.Assigned(c.addr, mask, gw)
	}
	if c.dad {
		c.pr.Announce(c.addr)
	}
}

func (c *Client) enterRenewing() {
	window := c.lt.t2 - c.lt.t1
	c.secs = 0
	c.stateTimer = window
	c.armRenewal(window)
	c.setState(StateRenewing)
	dst := c.serverID
	if dst == [4]byte{} {
		dst = broadcastAddr
	}
	c.send(kindRequestExtend, dst)
}

func (c *Client) enterRebinding() {
	window := c.lt.lease - c.lt.t2
	c.stateTimer = window
	c.armRenewal(window)
	c.setState(StateRebinding)
	c.send(kindRequestExtend, broadcastAddr)
}

// release gives up the held address and restarts acquisition.
func (c *Client) release() {
	c.unassign()
	c.stopProbe()
	c.enterInit(c.initDelay)
}

// decline gives up a conflicting address, tells the server and restarts
// acquisition after a cool-down.
func (c *Client) decline(peer [6]byte) {
	declined := c.reqAddr
	c.warn("DHCPv4:conflict", internal.SlogAddr4("addr", &declined), internal.SlogAddr6("peer", &peer))
	if c.State().IsLeased() {
		c.unassign()
	}
	c.stopProbe()
	if c.obs != nil {
		c.obs.OnConflict(declined, peer)
	}
	c.addr = [4]byte{}
	c.secs = secsStop
	c.send(kindDecline, broadcastAddr)
	if c.conflicts < maxConflicts {
		c.conflicts++
	}
	c.enterInit(c.initDelay + conflictDiscoverDelay)
}

func (c *Client) unassign() {
	if c.am != nil && c.addr != [4]byte{} {
		c.am.Unassigned(c.addr)
	}
}

func (c *Client) stopProbe() {
	if c.pr != nil {
		c.pr.Stop()
	}
}

func (c *Client) captureOptions(frm Frame) {
	if len(c.opts.cfg) == 0 {
		return
	}
	frm.ForEachOption(func(_ int, opt OptNum, data []byte) error {
		c.opts.capture(opt, data)
		return nil
	})
}

// send builds and transmits a message of the given kind and arms the
// retransmission timer. Declines are never retransmitted.
func (c *Client) send(kind msgKind, dst [4]byte) {
	c.txKind = kind
	c.txDst = dst
	c.transmit()
	if kind != kindDecline {
		c.rtx = c.backoff.Wait()
	}
}

// transmit sends the current message. A failed send schedules an immediate
// retry on the next tick.
func (c *Client) transmit() {
	if c.txKind == kindNone {
		return
	}
	p := txParams{
		kind:     c.txKind,
		xid:      c.xid,
		secs:     c.secsValue(),
		flags:    FlagBroadcast,
		ciaddr:   c.addr,
		chaddr:   c.hwaddr,
		reqAddr:  c.reqAddr,
		serverID: c.serverID,
		domain:   c.domain,
		opts:     &c.opts,
	}
	if c.txKind == kindDecline {
		p.flags = 0
	}
	mt := c.txKind.messageType()
	n, err := buildMessage(c.txbuf, &p)
	if err != nil {
		c.error("DHCPv4:build", slog.String("msg", mt.String()), internal.SlogErr(err))
		return
	}
	if !c.socketOpen {
		c.debug("DHCPv4:send-unbound", slog.String("msg", mt.String()))
		return
	}
	err = c.tr.SendTo(c.txbuf[:n], c.addr, c.txDst, c.serverPort())
	if err != nil {
		c.warn("DHCPv4:send", slog.String("msg", mt.String()), internal.SlogErr(err))
		c.retryPending = true
		return
	}
	c.retryCount = 0
	c.trace("DHCPv4:sent",
		slog.String("msg", mt.String()),
		internal.SlogAddr4("dst", &c.txDst),
		slog.Uint64("xid", uint64(c.xid)),
		slog.Int("len", n),
	)
	if c.obs != nil {
		c.obs.OnTransmit(mt, c.txDst)
	}
}

func (c *Client) setState(s ClientState) {
	old := c.State()
	if old == s {
		return
	}
	c.state.Store(uint32(s))
	c.debug("DHCPv4:state", slog.String("from", old.String()), slog.String("to", s.String()))
	if c.obs != nil {
		c.obs.OnStateChange(old, s)
	}
}

func (c *Client) secsValue() uint16 {
	if c.secs == secsStop {
		return 0
	}
	return c.secs
}

func (c *Client) clientPort() uint16 {
	if c.simple {
		return SimpleClientPort
	}
	return DefaultClientPort
}

func (c *Client) serverPort() uint16 {
	if c.simple {
		return SimpleServerPort
	}
	return DefaultServerPort
}

// State returns the current client state. Safe for concurrent use.
func (c *Client) State() ClientState { return ClientState(c.state.Load()) }

// LeasedAddr returns the leased address. ok is false unless the client is
// bound, renewing or rebinding.
func (c *Client) LeasedAddr() (addr [4]byte, ok bool) {
	if !c.State().IsLeased() {
		return [4]byte{}, false
	}
	return c.addr, true
}

// Gateway returns the first router offered by the server or the configured
// static gateway.
func (c *Client) Gateway() ([4]byte, bool) {
	if c.gateway.valid {
		return c.gateway.addr, true
	}
	return c.staticGW, c.staticGW != [4]byte{}
}

// Netmask returns the subnet mask offered by the server or the configured
// static netmask.
func (c *Client) Netmask() ([4]byte, bool) {
	if c.netmask.valid {
		return c.netmask.addr, true
	}
	return c.staticMask, c.staticMask != [4]byte{}
}

// ServerAddr returns the server identifier of the server that made the
// accepted offer.
func (c *Client) ServerAddr() ([4]byte, bool) {
	return c.serverID, c.serverID != [4]byte{}
}

// XID returns the transaction ID of the current attempt, zero if none.
func (c *Client) XID() uint32 { return c.xid }

// LeaseTimes returns lease, T1 and T2 in seconds. Zero lease means infinite.
func (c *Client) LeaseTimes() (lease, t1, t2 uint32) {
	return c.lt.lease, c.lt.t1, c.lt.t2
}

// ReadOption copies the stored value of a configured option or of the
// client FQDN option to dst.
func (c *Client) ReadOption(opt OptNum, dst []byte) (int, error) {
	if opt == OptClientFQDN {
		if len(dst) < len(c.domain) {
			return 0, dhcpc.ErrShortBuffer
		}
		return copy(dst, c.domain), nil
	}
	return c.opts.read(opt, dst)
}

// WriteOption sets the value of a configured option or of the client FQDN
// option. The FQDN name can hold up to DomainNameSize-1 bytes.
func (c *Client) WriteOption(opt OptNum, data []byte) error {
	if opt == OptClientFQDN {
		if c.domainSize == 0 {
			return errNotConfigured
		} else if len(data) > c.domainSize-1 {
			return dhcpc.ErrOptionLength
		}
		c.domain = append(c.domain[:0], data...)
		return nil
	}
	return c.opts.write(opt, data)
}
