package internal

// Prand32 generates a pseudo random number from a seed.
func Prand32[T ~uint32](seed T) T {
	/* Algorithm "xor" from p. 4 of Marsaglia, "Xorshift RNGs" */
	seed ^= seed << 13
	seed ^= seed >> 17
	seed ^= seed << 5
	return seed
}

// Rand is a xorshift generator. It never yields zero.
type Rand struct {
	state uint32
}

// NewRand returns a generator seeded with seed. A zero seed is replaced
// since the xorshift sequence of zero is zero.
func NewRand(seed uint32) Rand {
	if seed == 0 {
		seed = 0x2545f491
	}
	return Rand{state: seed}
}

// Uint32 returns the next non-zero pseudo random number.
func (r *Rand) Uint32() uint32 {
	if r.state == 0 {
		*r = NewRand(0)
	}
	r.state = Prand32(r.state)
	return r.state
}

// Intn returns a pseudo random number in [0, n). Returns 0 if n is 0.
func (r *Rand) Intn(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return r.Uint32() % n
}
