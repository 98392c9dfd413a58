package arp

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/soypat/dhcpc"
	"github.com/soypat/dhcpc/ethernet"
)

var (
	ourHW    = [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	peerHW   = [6]byte{0xc0, 0xff, 0xee, 0xc0, 0xff, 0xee}
	testAddr = [4]byte{192, 168, 1, 10}
	bcast    = ethernet.BroadcastAddr()
)

type proberEnv struct {
	p         Prober
	now       time.Time
	results   []bool
	peers     [][6]byte
	conflicts [][6]byte
	buf       [64]byte
}

func newProberEnv(t *testing.T) *proberEnv {
	t.Helper()
	env := &proberEnv{now: time.Unix(1000, 0)}
	err := env.p.Reset(ProberConfig{
		HardwareAddr: ourHW,
		RandomSeed:   1,
		OnResult: func(unique bool, peer [6]byte) {
			env.results = append(env.results, unique)
			env.peers = append(env.peers, peer)
		},
		OnConflict: func(peer [6]byte) {
			env.conflicts = append(env.conflicts, peer)
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return env
}

// poll advances the clock by step and returns the decoded ARP packet sent, if any.
func (env *proberEnv) poll(t *testing.T, step time.Duration) *layers.ARP {
	t.Helper()
	env.now = env.now.Add(step)
	n, err := env.p.Encapsulate(env.buf[:], ethernet.SizeHeader, env.now)
	if err != nil {
		t.Fatal(err)
	} else if n == 0 {
		return nil
	}
	pkt := gopacket.NewPacket(env.buf[:ethernet.SizeHeader+n], layers.LayerTypeEthernet, gopacket.Default)
	arpLayer, ok := pkt.Layer(layers.LayerTypeARP).(*layers.ARP)
	if !ok {
		t.Fatalf("sent packet is not ARP: %v", pkt)
	}
	return arpLayer
}

// collect polls in 100ms steps for at most d and returns the packets sent.
func (env *proberEnv) collect(t *testing.T, d time.Duration) (sent []*layers.ARP) {
	t.Helper()
	for elapsed := time.Duration(0); elapsed < d; elapsed += 100 * time.Millisecond {
		if a := env.poll(t, 100*time.Millisecond); a != nil {
			sent = append(sent, a)
		}
	}
	return sent
}

func serializeARP(t *testing.T, op uint16, senderHW [6]byte, senderAddr [4]byte, targetAddr [4]byte) []byte {
	t.Helper()
	eth := layers.Ethernet{
		SrcMAC:       net.HardwareAddr(senderHW[:]),
		DstMAC:       net.HardwareAddr(bcast[:]),
		EthernetType: layers.EthernetTypeARP,
	}
	a := layers.ARP{
		AddrType:          layers.LinkTypeEthernet,
		Protocol:          layers.EthernetTypeIPv4,
		HwAddressSize:     6,
		ProtAddressSize:   4,
		Operation:         op,
		SourceHwAddress:   senderHW[:],
		SourceProtAddress: senderAddr[:],
		DstHwAddress:      make([]byte, 6),
		DstProtAddress:    targetAddr[:],
	}
	buf := gopacket.NewSerializeBuffer()
	err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{}, &eth, &a)
	if err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()[ethernet.SizeHeader:]
}

func TestProbeUnique(t *testing.T) {
	env := newProberEnv(t)
	if a := env.poll(t, 0); a != nil {
		t.Fatal("idle prober sent packet")
	}
	env.p.StartProbe(testAddr, 500*time.Millisecond)
	if !env.p.Probing() {
		t.Fatal("not probing")
	}
	if a := env.poll(t, 0); a != nil {
		t.Fatal("probe sent before delay")
	}
	if a := env.poll(t, 400*time.Millisecond); a != nil {
		t.Fatal("probe sent before delay")
	}
	first := env.poll(t, 100*time.Millisecond)
	if first == nil {
		t.Fatal("no probe after delay")
	}
	if first.Operation != layers.ARPRequest ||
		!bytes.Equal(first.SourceProtAddress, []byte{0, 0, 0, 0}) ||
		!bytes.Equal(first.DstProtAddress, testAddr[:]) ||
		!bytes.Equal(first.SourceHwAddress, ourHW[:]) ||
		!bytes.Equal(first.DstHwAddress, make([]byte, 6)) {
		t.Errorf("bad probe %+v", first)
	}
	efrm, _ := ethernet.NewFrame(env.buf[:])
	if !efrm.IsBroadcast() || *efrm.SourceHardwareAddr() != ourHW || efrm.EtherTypeOrSize() != ethernet.TypeARP {
		t.Errorf("bad ethernet header % x", env.buf[:ethernet.SizeHeader])
	}
	sent := env.collect(t, 2*ProbeMax+AnnounceWait)
	if len(sent) != ProbeNum-1 {
		t.Fatalf("want %d more probes, got %d", ProbeNum-1, len(sent))
	}
	if len(env.results) != 1 || !env.results[0] {
		t.Fatalf("want unique result, got %v", env.results)
	}
	if env.p.Probing() || env.poll(t, time.Hour) != nil {
		t.Error("prober active after result")
	}
}

func TestProbeSpacing(t *testing.T) {
	env := newProberEnv(t)
	env.p.StartProbe(testAddr, 0)
	start := env.now
	var last time.Time
	for len(env.results) == 0 {
		if a := env.poll(t, 10*time.Millisecond); a != nil {
			if !last.IsZero() {
				gap := env.now.Sub(last)
				if gap < ProbeMin || gap > ProbeMax+10*time.Millisecond {
					t.Errorf("probe gap %v out of range", gap)
				}
			}
			last = env.now
		}
		if env.now.Sub(start) > time.Minute {
			t.Fatal("probe never finished")
		}
	}
	if wait := env.now.Sub(last); wait < AnnounceWait || wait > AnnounceWait+10*time.Millisecond {
		t.Errorf("want result %v after last probe, got %v", AnnounceWait, wait)
	}
}

func TestProbeConflict(t *testing.T) {
	for _, tc := range []struct {
		name       string
		op         uint16
		senderAddr [4]byte
		targetAddr [4]byte
		conflict   bool
	}{
		{name: "reply from owner", op: layers.ARPReply, senderAddr: testAddr, targetAddr: [4]byte{192, 168, 1, 1}, conflict: true},
		{name: "announce from owner", op: layers.ARPRequest, senderAddr: testAddr, targetAddr: testAddr, conflict: true},
		{name: "simultaneous probe", op: layers.ARPRequest, targetAddr: testAddr, conflict: true},
		{name: "unrelated request", op: layers.ARPRequest, senderAddr: [4]byte{192, 168, 1, 20}, targetAddr: [4]byte{192, 168, 1, 1}},
		{name: "unrelated probe", op: layers.ARPRequest, targetAddr: [4]byte{192, 168, 1, 30}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			env := newProberEnv(t)
			env.p.StartProbe(testAddr, 0)
			if env.poll(t, 0) == nil {
				t.Fatal("no probe")
			}
			err := env.p.Demux(serializeARP(t, tc.op, peerHW, tc.senderAddr, tc.targetAddr), env.now)
			if err != nil {
				t.Fatal(err)
			}
			if !tc.conflict {
				if len(env.results) != 0 || !env.p.Probing() {
					t.Fatalf("unexpected result %v", env.results)
				}
				return
			}
			if len(env.results) != 1 || env.results[0] || env.peers[0] != peerHW {
				t.Fatalf("want duplicate from %x, got %v %x", peerHW, env.results, env.peers)
			}
			if env.p.Probing() || env.poll(t, time.Minute) != nil {
				t.Error("prober active after conflict")
			}
		})
	}
}

func TestProbeIgnoresOwnPackets(t *testing.T) {
	env := newProberEnv(t)
	env.p.StartProbe(testAddr, 0)
	env.poll(t, 0)
	err := env.p.Demux(serializeARP(t, layers.ARPRequest, ourHW, [4]byte{}, testAddr), env.now)
	if err != nil {
		t.Fatal(err)
	} else if len(env.results) != 0 {
		t.Fatal("own probe reported as conflict")
	}
}

func TestAnnounceAndDefend(t *testing.T) {
	env := newProberEnv(t)
	env.p.Announce(testAddr)
	first := env.poll(t, 0)
	if first == nil {
		t.Fatal("no announcement")
	} else if first.Operation != layers.ARPRequest ||
		!bytes.Equal(first.SourceProtAddress, testAddr[:]) ||
		!bytes.Equal(first.DstProtAddress, testAddr[:]) {
		t.Errorf("bad announcement %+v", first)
	}
	sent := env.collect(t, 2*AnnounceInterval)
	if len(sent) != AnnounceNum-1 {
		t.Fatalf("want %d more announcements, got %d", AnnounceNum-1, len(sent))
	}
	if !env.p.Defending() {
		t.Fatal("not defending after announcements")
	}

	// Requests for the address are answered.
	peerAddr := [4]byte{192, 168, 1, 1}
	err := env.p.Demux(serializeARP(t, layers.ARPRequest, peerHW, peerAddr, testAddr), env.now)
	if err != nil {
		t.Fatal(err)
	}
	reply := env.poll(t, 0)
	if reply == nil || reply.Operation != layers.ARPReply ||
		!bytes.Equal(reply.DstHwAddress, peerHW[:]) || !bytes.Equal(reply.DstProtAddress, peerAddr[:]) ||
		!bytes.Equal(reply.SourceProtAddress, testAddr[:]) {
		t.Fatalf("bad reply %+v", reply)
	}
	if !bytes.Equal(env.buf[:6], peerHW[:]) {
		t.Errorf("reply not unicast: % x", env.buf[:6])
	}

	// First conflict is defended.
	conflicting := serializeARP(t, layers.ARPReply, peerHW, testAddr, peerAddr)
	if err = env.p.Demux(conflicting, env.now); err != nil {
		t.Fatal(err)
	}
	if a := env.poll(t, 0); a == nil || !bytes.Equal(a.SourceProtAddress, testAddr[:]) {
		t.Fatal("address not defended")
	}
	if len(env.conflicts) != 0 {
		t.Fatal("conflict reported on first defense")
	}
	// Second conflict after the defend interval is defended again.
	env.now = env.now.Add(DefendInterval)
	env.p.Demux(conflicting, env.now)
	if env.poll(t, 0) == nil || len(env.conflicts) != 0 {
		t.Fatal("address not defended after interval")
	}
	// Third conflict within the interval gives up.
	env.now = env.now.Add(time.Second)
	env.p.Demux(conflicting, env.now)
	if len(env.conflicts) != 1 || env.conflicts[0] != peerHW {
		t.Fatalf("want conflict from %x, got %x", peerHW, env.conflicts)
	}
	if env.p.Defending() || env.poll(t, 0) != nil {
		t.Error("prober active after giving up")
	}
}

func TestProberStop(t *testing.T) {
	env := newProberEnv(t)
	env.p.StartProbe(testAddr, 0)
	env.poll(t, 0)
	env.p.Stop()
	if env.poll(t, time.Minute) != nil || len(env.results) != 0 {
		t.Error("stopped probe still running")
	}
	env.p.Announce(testAddr)
	env.p.Stop()
	if env.poll(t, 0) != nil {
		t.Error("stopped announcement sent")
	}
	err := env.p.Demux(serializeARP(t, layers.ARPReply, peerHW, testAddr, testAddr), env.now)
	if err != nil || len(env.conflicts) != 0 {
		t.Error("idle prober reported conflict")
	}
}

func TestProberReset(t *testing.T) {
	var p Prober
	if err := p.Reset(ProberConfig{}); err == nil {
		t.Fatal("empty config accepted")
	}
	var buf [sizeHeaderv4 - 1]byte
	if _, err := p.Encapsulate(buf[:], 0, time.Time{}); err == nil {
		t.Error("short buffer accepted")
	}
}

func TestFrameValidate(t *testing.T) {
	b := serializeARP(t, layers.ARPRequest, peerHW, [4]byte{}, testAddr)
	afrm, err := NewFrame(b)
	if err != nil {
		t.Fatal(err)
	}
	var vld dhcpc.Validator
	afrm.Validate4(&vld)
	if vld.HasError() {
		t.Fatal(vld.Err())
	}
	if afrm.Operation() != OpRequest || afrm.Operation().String() != "request" {
		t.Errorf("bad operation %v", afrm.Operation())
	}
	hw, proto := afrm.Sender4()
	if *hw != peerHW || *proto != [4]byte{} {
		t.Errorf("bad sender %x %v", *hw, *proto)
	}
	afrm.SetOperation(3)
	afrm.Validate4(&vld)
	if !vld.HasError() {
		t.Error("unsupported operation accepted")
	}
	vld.ResetErr()
	afrm.SetOperation(OpReply)
	afrm.SetProtocol(0x86dd, 16)
	afrm.Validate4(&vld)
	if !vld.HasError() {
		t.Error("IPv6 ARP accepted")
	}
	if _, err = NewFrame(b[:sizeHeaderv4-1]); err == nil {
		t.Error("short frame accepted")
	}
}
