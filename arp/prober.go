package arp

import (
	"errors"
	"log/slog"
	"time"

	"github.com/soypat/dhcpc"
	"github.com/soypat/dhcpc/dhcpv4"
	"github.com/soypat/dhcpc/ethernet"
	"github.com/soypat/dhcpc/internal"
)

var _ dhcpv4.Prober = (*Prober)(nil)

// ProberConfig configures a [Prober].
type ProberConfig struct {
	HardwareAddr [6]byte
	// OnResult receives the outcome of a probe started with
	// [Prober.StartProbe]. peer is the conflicting host when unique is false.
	OnResult func(unique bool, peer [6]byte)
	// OnConflict is called when a host keeps claiming the announced address
	// after it was defended once.
	OnConflict func(peer [6]byte)
	// RandomSeed seeds the spacing between probes.
	RandomSeed uint32
	Logger     *slog.Logger
}

type proberState uint8

const (
	proberIdle proberState = iota
	proberProbing
	proberAnnouncing
	proberDefending
)

// Prober performs IPv4 address conflict detection as described in RFC 5227.
// It probes a candidate address, announces a claimed address and then
// defends it. Prober is poll driven: outgoing packets are written by
// [Prober.Encapsulate] and incoming ARP packets are passed to [Prober.Demux].
// Methods must not be called concurrently.
type Prober struct {
	log        *slog.Logger
	hw         [6]byte
	onResult   func(unique bool, peer [6]byte)
	onConflict func(peer [6]byte)
	rng        internal.Rand

	state proberState
	addr  [4]byte
	sent  uint8
	// wait is applied on the next Encapsulate call, which arms next.
	wait  time.Duration
	next  time.Time
	armed bool

	lastDefend   time.Time
	defended     bool
	defendQueued bool
	replyQueued  bool
	replyHW      [6]byte
	replyAddr    [4]byte
}

// Reset configures the prober and stops any ongoing activity.
func (p *Prober) Reset(cfg ProberConfig) error {
	v := dhcpc.NewValidator(dhcpc.ValidateAllowMultiErrors)
	if cfg.HardwareAddr == [6]byte{} {
		v.AddFieldErr("HardwareAddr", errors.New("zero hardware address"))
	}
	if cfg.OnResult == nil {
		v.AddFieldErr("OnResult", errors.New("nil callback"))
	}
	if cfg.OnConflict == nil {
		v.AddFieldErr("OnConflict", errors.New("nil callback"))
	}
	if v.HasError() {
		return v.Err()
	}
	*p = Prober{
		log:        cfg.Logger,
		hw:         cfg.HardwareAddr,
		onResult:   cfg.OnResult,
		onConflict: cfg.OnConflict,
		rng:        internal.NewRand(cfg.RandomSeed),
	}
	return nil
}

// StartProbe begins probing addr. The first probe is sent delay after the
// next call to Encapsulate.
func (p *Prober) StartProbe(addr [4]byte, delay time.Duration) {
	p.begin(proberProbing, addr, delay)
	p.logattrs(slog.LevelDebug, "ARP:probe-start", internal.SlogAddr4("addr", &addr), slog.Duration("delay", delay))
}

// Announce claims addr with gratuitous ARP requests and then defends it.
func (p *Prober) Announce(addr [4]byte) {
	p.begin(proberAnnouncing, addr, 0)
	p.logattrs(slog.LevelDebug, "ARP:announce-start", internal.SlogAddr4("addr", &addr))
}

// Stop cancels any probe, announcement or defense in progress.
func (p *Prober) Stop() {
	if p.state != proberIdle {
		p.logattrs(internal.LevelTrace, "ARP:stop", internal.SlogAddr4("addr", &p.addr))
	}
	p.begin(proberIdle, [4]byte{}, 0)
}

// Probing reports whether a probe is in progress.
func (p *Prober) Probing() bool { return p.state == proberProbing }

// Defending reports whether the prober guards an announced address.
func (p *Prober) Defending() bool {
	return p.state == proberAnnouncing || p.state == proberDefending
}

func (p *Prober) begin(state proberState, addr [4]byte, wait time.Duration) {
	p.state = state
	p.addr = addr
	p.sent = 0
	p.wait = wait
	p.armed = false
	p.defended = false
	p.defendQueued = false
	p.replyQueued = false
}

// Encapsulate writes the next due ARP packet into carrier[frameOffset:] and
// returns its length. If frameOffset leaves room for an Ethernet header it is
// written just before the packet. Zero is returned when nothing is due.
// A finished probe is reported through OnResult from within Encapsulate.
func (p *Prober) Encapsulate(carrier []byte, frameOffset int, now time.Time) (int, error) {
	if frameOffset < 0 || len(carrier)-frameOffset < sizeHeaderv4 {
		return 0, errShortARP
	}
	b := carrier[frameOffset:sizeHeaderv4+frameOffset]
	if p.replyQueued {
		p.replyQueued = false
		p.writeEthernet(carrier, frameOffset, p.replyHW)
		p.encode(b, OpReply, p.addr, p.replyHW, p.replyAddr)
		return sizeHeaderv4, nil
	}
	if p.defendQueued {
		p.defendQueued = false
		p.writeEthernet(carrier, frameOffset, ethernet.BroadcastAddr())
		p.encode(b, OpRequest, p.addr, [6]byte{}, p.addr)
		return sizeHeaderv4, nil
	}
	if p.state == proberIdle || p.state == proberDefending {
		return 0, nil
	}
	if !p.armed {
		p.next = now.Add(p.wait)
		p.armed = true
	}
	if now.Before(p.next) {
		return 0, nil
	}
	switch p.state {
	case proberProbing:
		if p.sent == ProbeNum {
			addr := p.addr
			p.begin(proberIdle, [4]byte{}, 0)
			p.logattrs(slog.LevelInfo, "ARP:probe-unique", internal.SlogAddr4("addr", &addr))
			p.onResult(true, [6]byte{})
			return 0, nil
		}
		p.sent++
		if p.sent < ProbeNum {
			p.next = now.Add(ProbeMin + time.Duration(p.rng.Intn(uint32((ProbeMax-ProbeMin)/time.Millisecond)+1))*time.Millisecond)
		} else {
			p.next = now.Add(AnnounceWait)
		}
		p.writeEthernet(carrier, frameOffset, ethernet.BroadcastAddr())
		p.encode(b, OpRequest, [4]byte{}, [6]byte{}, p.addr)
		p.logattrs(internal.LevelTrace, "ARP:probe", internal.SlogAddr4("addr", &p.addr), slog.Int("n", int(p.sent)))

	case proberAnnouncing:
		p.sent++
		if p.sent < AnnounceNum {
			p.next = now.Add(AnnounceInterval)
		} else {
			p.state = proberDefending
		}
		p.writeEthernet(carrier, frameOffset, ethernet.BroadcastAddr())
		p.encode(b, OpRequest, p.addr, [6]byte{}, p.addr)
		p.logattrs(internal.LevelTrace, "ARP:announce", internal.SlogAddr4("addr", &p.addr), slog.Int("n", int(p.sent)))
	}
	return sizeHeaderv4, nil
}

// Demux processes a received ARP packet. Packets sent by this host are
// ignored. Conflicts are reported through the configured callbacks from
// within Demux.
func (p *Prober) Demux(frame []byte, now time.Time) error {
	afrm, err := NewFrame(frame)
	if err != nil {
		return err
	}
	var vld dhcpc.Validator
	afrm.Validate4(&vld)
	if vld.HasError() {
		return vld.Err()
	}
	senderHW, senderAddr := afrm.Sender4()
	_, targetAddr := afrm.Target4()
	if *senderHW == p.hw || p.state == proberIdle {
		return nil
	}
	switch p.state {
	case proberProbing:
		// Any use of the address, or a simultaneous probe for it, is a conflict.
		probeCollision := afrm.Operation() == OpRequest && *senderAddr == [4]byte{} && *targetAddr == p.addr
		if *senderAddr != p.addr && !probeCollision {
			return nil
		}
		addr, peer := p.addr, *senderHW
		p.begin(proberIdle, [4]byte{}, 0)
		p.logattrs(slog.LevelWarn, "ARP:probe-conflict", internal.SlogAddr4("addr", &addr), internal.SlogAddr6("peer", &peer))
		p.onResult(false, peer)

	case proberAnnouncing, proberDefending:
		if *senderAddr == p.addr {
			p.defend(*senderHW, now)
			return nil
		}
		if afrm.Operation() == OpRequest && *targetAddr == p.addr {
			p.replyQueued = true
			p.replyHW = *senderHW
			p.replyAddr = *senderAddr
		}
	}
	return nil
}

// defend answers a conflicting packet with an announcement unless the
// address was defended within DefendInterval, in which case the conflict is
// reported and the prober stops.
func (p *Prober) defend(peer [6]byte, now time.Time) {
	if !p.defended || now.Sub(p.lastDefend) >= DefendInterval {
		p.defended = true
		p.lastDefend = now
		p.defendQueued = true
		p.logattrs(slog.LevelInfo, "ARP:defend", internal.SlogAddr4("addr", &p.addr), internal.SlogAddr6("peer", &peer))
		return
	}
	addr := p.addr
	p.begin(proberIdle, [4]byte{}, 0)
	p.logattrs(slog.LevelWarn, "ARP:conflict", internal.SlogAddr4("addr", &addr), internal.SlogAddr6("peer", &peer))
	p.onConflict(peer)
}

func (p *Prober) encode(b []byte, op Operation, senderAddr [4]byte, targetHW [6]byte, targetAddr [4]byte) {
	afrm := Frame{buf: b}
	afrm.setHeader4(op)
	shw, sproto := afrm.Sender4()
	*shw = p.hw
	*sproto = senderAddr
	thw, tproto := afrm.Target4()
	*thw = targetHW
	*tproto = targetAddr
}

func (p *Prober) writeEthernet(carrier []byte, frameOffset int, dst [6]byte) {
	if frameOffset < ethernet.SizeHeader {
		return
	}
	efrm, _ := ethernet.NewFrame(carrier[frameOffset-ethernet.SizeHeader : frameOffset])
	efrm.SetHeader(dst, p.hw, ethernet.TypeARP)
}

func (p *Prober) logattrs(lvl slog.Level, msg string, attrs ...slog.Attr) {
	internal.LogAttrs(p.log, lvl, msg, attrs...)
}
