package internal

import "testing"

func TestRandNonZero(t *testing.T) {
	r := NewRand(0)
	seen := make(map[uint32]bool)
	for i := 0; i < 10000; i++ {
		v := r.Uint32()
		if v == 0 {
			t.Fatal("zero value generated")
		} else if seen[v] {
			t.Fatalf("value %d repeated after %d draws", v, i)
		}
		seen[v] = true
	}
	var zero Rand
	if zero.Uint32() == 0 {
		t.Error("zero Rand generated zero")
	}
}

func TestRandIntn(t *testing.T) {
	r := NewRand(1234)
	for i := 0; i < 1000; i++ {
		if v := r.Intn(10); v >= 10 {
			t.Fatalf("Intn(10) returned %d", v)
		}
	}
	if r.Intn(0) != 0 {
		t.Error("Intn(0) must return 0")
	}
}
