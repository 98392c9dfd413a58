package dhcpv4

import (
	"math/rand"
	"testing"
)

func TestEvaluateLease(t *testing.T) {
	tests := []struct {
		raw, t1, t2 uint32
		secs        uint16
		want        leaseTimes
		ok          bool
	}{
		{raw: 3600, want: leaseTimes{3600, 1800, 3150}, ok: true},
		{raw: 3600, secs: 4, want: leaseTimes{3604, 1802, 3153}, ok: true},
		{raw: infiniteLease, t1: 100, want: leaseTimes{}, ok: true},
		{raw: maxValidLease, want: leaseTimes{maxValidLease, maxValidLease >> 1, maxValidLease * 7 >> 3}, ok: true},
		{raw: maxValidLease + 1},
		{raw: 3600, t1: 1000, t2: 2000, want: leaseTimes{3600, 1000, 2000}, ok: true},
		{raw: 3600, t1: 3200}, // T1 past default T2.
		{raw: 3600, t2: 3600}, // T2 not before lease.
		{raw: 3600, t1: 2000, t2: 2000},
		{raw: 1}, // T1 == T2 == 0.
	}
	for _, tt := range tests {
		got, ok := evaluateLease(tt.raw, tt.t1, tt.t2, tt.secs)
		if ok != tt.ok {
			t.Errorf("evaluateLease(%d,%d,%d,%d): want ok=%v, got %v", tt.raw, tt.t1, tt.t2, tt.secs, tt.ok, ok)
		} else if ok && got != tt.want {
			t.Errorf("evaluateLease(%d,%d,%d,%d): want %+v, got %+v", tt.raw, tt.t1, tt.t2, tt.secs, tt.want, got)
		}
	}
}

func TestLeaseInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 100000; i++ {
		raw := rng.Uint32()
		if i%4 == 0 {
			raw %= 100000
		}
		var t1, t2 uint32
		if rng.Intn(2) == 0 {
			t1 = rng.Uint32() % (raw/2 + 2)
		}
		if rng.Intn(2) == 0 {
			t2 = rng.Uint32() % (raw + 2)
		}
		secs := uint16(rng.Intn(secsStop))
		lt, ok := evaluateLease(raw, t1, t2, secs)
		switch {
		case raw == infiniteLease:
			if !ok || lt != (leaseTimes{}) {
				t.Fatalf("infinite lease not accepted: %+v", lt)
			}
		case raw > maxValidLease:
			if ok {
				t.Fatalf("lease %d accepted", raw)
			}
		case ok:
			if lt.infinite() || !(lt.lease > lt.t2 && lt.t2 > lt.t1) {
				t.Fatalf("accepted invalid lease %+v", lt)
			}
		}
	}
}
