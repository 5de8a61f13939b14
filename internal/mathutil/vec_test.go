package mathutil

import (
	"math"
	"math/rand"
	"testing"
)

func TestLerpEndpoints(t *testing.T) {
	a, b := V(1, 2), V(5, -2)
	if got := Lerp(a, b, 0); got != a {
		t.Errorf("Lerp(0) = %v, want %v", got, a)
	}
	if got := Lerp(a, b, 1); got != b {
		t.Errorf("Lerp(1) = %v, want %v", got, b)
	}
	mid := Lerp(a, b, 0.5)
	if mid.X != 3 || mid.Y != 0 {
		t.Errorf("Lerp(0.5) = %v, want (3,0)", mid)
	}
}

func TestEaseOutQuad(t *testing.T) {
	tests := []struct {
		u, want float64
	}{
		{0, 0},
		{0.5, 0.75},
		{1, 1},
	}
	for _, tt := range tests {
		if got := EaseOutQuad(tt.u); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("EaseOutQuad(%v) = %v, want %v", tt.u, got, tt.want)
		}
	}

	prev := EaseOutQuad(0)
	for i := 1; i <= 100; i++ {
		cur := EaseOutQuad(float64(i) / 100)
		if cur < prev {
			t.Fatalf("EaseOutQuad not monotonic at step %d", i)
		}
		prev = cur
	}
}

func TestRandRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		v := RandRange(rng, -3, 4)
		if v < -3 || v >= 4 {
			t.Fatalf("RandRange out of bounds: %v", v)
		}
	}
	if got := RandRange(rng, 5, 1); got != 3 {
		t.Errorf("inverted range should return midpoint, got %v", got)
	}
}

func TestIntMinMax(t *testing.T) {
	if IntMin(3, -1) != -1 || IntMax(3, -1) != 3 {
		t.Error("IntMin/IntMax returned wrong values")
	}
}
