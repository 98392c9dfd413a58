package dhcpv4

// leaseTimes holds lease, T1 and T2 in seconds measured from the start of
// the current acquisition or renewal. A zero lease is infinite.
type leaseTimes struct {
	lease uint32
	t1    uint32
	t2    uint32
}

func (lt leaseTimes) infinite() bool { return lt.lease == 0 }

// evaluateLease derives lease times from the lease time, T1 and T2 options
// of an ACK. Absent T1 or T2 options are passed as zero. secs is the time
// elapsed since the request was first sent.
//
// An infinite lease is always accepted. A finite lease is accepted only if
// lease > T2 > T1 once defaults are applied.
func evaluateLease(rawLease, t1opt, t2opt uint32, secs uint16) (leaseTimes, bool) {
	if rawLease == infiniteLease {
		return leaseTimes{}, true
	} else if rawLease > maxValidLease {
		return leaseTimes{}, false
	}
	lease := rawLease + uint32(secs)
	lt := leaseTimes{
		lease: lease,
		t1:    lease >> 1,
		t2:    uint32((uint64(lease) * 7) >> 3),
	}
	if t1opt != 0 {
		lt.t1 = t1opt
	}
	if t2opt != 0 {
		lt.t2 = t2opt
	}
	if lt.lease > lt.t2 && lt.t2 > lt.t1 {
		return lt, true
	}
	return leaseTimes{}, false
}
