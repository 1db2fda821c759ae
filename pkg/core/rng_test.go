package core

import (
	"slices"
	"testing"
)

func TestRNGDeterministic(t *testing.T) {
	a, b := NewRNG(7), NewRNG(7)
	for i := 0; i < 32; i++ {
		if a.Float64() != b.Float64() {
			t.Fatalf("draw %d diverged for identical seeds", i)
		}
		if a.IntN(10) != b.IntN(10) {
			t.Fatalf("IntN draw %d diverged for identical seeds", i)
		}
	}
}

func TestIntNNonPositive(t *testing.T) {
	r := NewRNG(1)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d", got)
	}
	if got := r.IntN(-3); got != 0 {
		t.Fatalf("IntN(-3) = %d", got)
	}
}

func TestFillChanceBounds(t *testing.T) {
	buf := make([]uint8, 64)
	FillChance(NewRNG(3).Source(), buf, 0)
	if slices.Contains(buf, 1) {
		t.Fatal("p=0 must leave every cell empty")
	}
	FillChance(NewRNG(3).Source(), buf, 1)
	if slices.Contains(buf, 0) {
		t.Fatal("p=1 must fill every cell")
	}
}
