package internal

import "testing"

func TestBackoffGrowth(t *testing.T) {
	b := NewBackoff(0, 4, 64)
	want := []uint32{8, 16, 32, 64, 64, 64}
	if b.Wait() != 4 {
		t.Fatalf("want start wait 4, got %d", b.Wait())
	}
	for i, w := range want {
		if got := b.Miss(); got != w {
			t.Fatalf("miss %d: want %d, got %d", i, w, got)
		}
	}
	b.Hit()
	if b.Wait() != 4 {
		t.Errorf("want wait reset to 4, got %d", b.Wait())
	}
}

func TestBackoffDecay(t *testing.T) {
	b := NewBackoff(BackoffDecay, 675, 60)
	want := []uint32{337, 168, 84, 60, 60}
	for i, w := range want {
		if got := b.Miss(); got != w {
			t.Fatalf("miss %d: want %d, got %d", i, w, got)
		}
	}
	// Start below the floor is clamped.
	b = NewBackoff(BackoffDecay, 10, 60)
	if b.Wait() != 60 {
		t.Errorf("want clamped wait 60, got %d", b.Wait())
	}
}

func TestBackoffBounds(t *testing.T) {
	for start := uint32(1); start < 200; start++ {
		grow := NewBackoff(0, start, 64)
		decay := NewBackoff(BackoffDecay, start, 60)
		for range 10 {
			if w := grow.Miss(); w == 0 || w > 64 {
				t.Fatalf("start %d: growing wait %d out of bounds", start, w)
			}
			if w := decay.Miss(); w < 60 {
				t.Fatalf("start %d: decaying wait %d below floor", start, w)
			}
		}
	}
}
