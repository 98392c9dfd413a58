package internal

type BackoffFlags uint8

const (
	// BackoffDecay makes Miss halve the wait down to the limit instead of
	// doubling it up to the limit.
	BackoffDecay BackoffFlags = 1 << iota
)

// NewBackoff returns a Backoff that starts at startWait and moves toward limit
// on every Miss. Units are up to the caller, DHCP uses seconds.
func NewBackoff(flags BackoffFlags, startWait, limit uint32) Backoff {
	if limit == 0 {
		panic("backoff limit cannot be zero")
	}
	if flags&BackoffDecay != 0 && startWait < limit {
		startWait = limit
	} else if flags&BackoffDecay == 0 && startWait > limit {
		startWait = limit
	}
	return Backoff{
		wait:      startWait,
		limit:     limit,
		startWait: startWait,
		flags:     flags,
	}
}

// A Backoff with a non-zero limit is ready for use.
type Backoff struct {
	// wait is the current interval.
	wait uint32
	// limit is the maximum interval for a growing Backoff
	// and the minimum interval for a decaying one.
	limit uint32
	// startWait is the intial wait value, as well as the value that wait takes after a call to Hit.
	startWait uint32
	flags     BackoffFlags
}

// Wait returns the current interval.
func (eb *Backoff) Wait() uint32 { return eb.wait }

// Hit sets the wait back to its start value.
func (eb *Backoff) Hit() {
	if eb.limit == 0 {
		panic("backoff limit cannot be zero")
	}
	eb.wait = eb.startWait
}

// Miss moves the wait one step toward the limit and returns the new wait.
func (eb *Backoff) Miss() uint32 {
	if eb.limit == 0 {
		panic("backoff limit cannot be zero")
	}
	if eb.flags&BackoffDecay != 0 {
		eb.wait >>= 1
		if eb.wait < eb.limit {
			eb.wait = eb.limit
		}
		return eb.wait
	}
	if eb.wait > eb.limit>>1 {
		eb.wait = eb.limit
	} else {
		eb.wait <<= 1
	}
	return eb.wait
}
