package ethernet

import (
	"bytes"
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/soypat/dhcpc"
)

func TestFrameHeader(t *testing.T) {
	src := [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	payload := []byte("payload")
	buf := make([]byte, SizeHeader+len(payload))
	copy(buf[SizeHeader:], payload)
	efrm, err := NewFrame(buf)
	if err != nil {
		t.Fatal(err)
	}
	efrm.SetHeader(BroadcastAddr(), src, TypeARP)
	if !efrm.IsBroadcast() {
		t.Error("want broadcast destination")
	}
	var vld dhcpc.Validator
	efrm.ValidateSize(&vld)
	if vld.HasError() {
		t.Fatal(vld.Err())
	}
	if !bytes.Equal(efrm.Payload(), payload) {
		t.Errorf("want payload %q, got %q", payload, efrm.Payload())
	}

	pkt := gopacket.NewPacket(buf, layers.LayerTypeEthernet, gopacket.Default)
	eth, ok := pkt.Layer(layers.LayerTypeEthernet).(*layers.Ethernet)
	if !ok {
		t.Fatalf("not decoded as ethernet: %v", pkt)
	}
	if eth.EthernetType != layers.EthernetTypeARP ||
		!bytes.Equal(eth.SrcMAC, src[:]) ||
		!bytes.Equal(eth.DstMAC, net.HardwareAddr{0xff, 0xff, 0xff, 0xff, 0xff, 0xff}) {
		t.Errorf("bad header %+v", eth)
	}

	efrm.ClearHeader()
	if efrm.IsBroadcast() || *efrm.SourceHardwareAddr() != [6]byte{} || efrm.EtherTypeOrSize() != 0 {
		t.Errorf("header not cleared % x", buf[:SizeHeader])
	}
}

func TestFrameValidateSize(t *testing.T) {
	if _, err := NewFrame(make([]byte, SizeHeader-1)); err == nil {
		t.Error("short frame accepted")
	}
	tests := []struct {
		et      Type
		size    int
		wantErr bool
	}{
		{et: TypeIPv4, size: SizeHeader},
		{et: 4, size: SizeHeader + 4},
		{et: 5, size: SizeHeader + 4, wantErr: true},
		{et: TypeVLAN, size: SizeHeader + 4, wantErr: true},
	}
	for _, tt := range tests {
		efrm, _ := NewFrame(make([]byte, tt.size))
		efrm.SetEtherType(tt.et)
		var vld dhcpc.Validator
		efrm.ValidateSize(&vld)
		if vld.HasError() != tt.wantErr {
			t.Errorf("type %#x size %d: want error %v, got %v", uint16(tt.et), tt.size, tt.wantErr, vld.Err())
		}
	}
}
