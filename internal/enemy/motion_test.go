package enemy

import (
	"math"
	"math/rand"
	"testing"

	"shmup/internal/collision"
	"shmup/internal/mathutil"
)

func near(a, b mathutil.Vec2, eps float64) bool {
	return math.Abs(a.X-b.X) <= eps && math.Abs(a.Y-b.Y) <= eps
}

func TestNewMotionControllerRejectsBadDuration(t *testing.T) {
	area := StaticArea{Box: collision.NewBoundingBox(0, 0, 10, 10)}
	for _, d := range []float64{0, -1} {
		if _, err := NewMotionController(d, area, nil); err == nil {
			t.Errorf("duration %v: expected error", d)
		}
	}
	if _, err := NewMotionController(1, nil, nil); err == nil {
		t.Error("expected error without play area")
	}
}

func TestMotionStationaryAfterInitialize(t *testing.T) {
	area := StaticArea{Box: collision.NewBoundingBox(0, 0, 100, 100)}
	mc, err := NewMotionController(4, area, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	spawn := mathutil.V(7, -9)
	mc.Initialize(spawn, 10)

	for _, now := range []float64{10, 11, 13.9} {
		if got := mc.Tick(now); !near(got, spawn, 1e-12) {
			t.Errorf("Tick(%v) = %v, want spawn %v", now, got, spawn)
		}
	}
}

// Spawn at the origin, first leg to (3,4), 4 second legs.
func TestMotionEasedInterpolationScenario(t *testing.T) {
	// A zero-size area pins every sampled waypoint to (3,4).
	area := StaticArea{Box: collision.NewBoundingBox(3, 4, 0, 0)}
	mc, err := NewMotionController(4, area, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	mc.Initialize(mathutil.V(0, 0), 0)
	if got := mc.Tick(0); got != mathutil.V(0, 0) {
		t.Fatalf("Tick(0) = %v, want (0,0)", got)
	}

	mc.PickNewLeg(0)
	prev, next := mc.Waypoints()
	if prev != mathutil.V(0, 0) || next != mathutil.V(3, 4) {
		t.Fatalf("waypoints = %v -> %v", prev, next)
	}

	got := mc.Tick(2)
	if !near(got, mathutil.V(2.25, 3.0), 1e-12) {
		t.Errorf("Tick(2) = %v, want (2.25, 3.0)", got)
	}
}

func TestMotionStaysOnSegmentAndApproachesTarget(t *testing.T) {
	area := StaticArea{Box: collision.FromMinMax(0, 0, 640, 900), Margin: 60}
	mc, err := NewMotionController(4, area, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatal(err)
	}
	mc.Initialize(mathutil.V(320, -50), 0)
	mc.PickNewLeg(0)
	prev, next := mc.Waypoints()
	seg := next.Sub(prev)

	lastDist := math.Inf(1)
	for i := 0; i < 400; i++ {
		now := float64(i) * 0.01 // u in [0, 1)
		p := mc.Tick(now)

		d := p.Sub(prev)
		cross := d.X*seg.Y - d.Y*seg.X
		if math.Abs(cross) > 1e-6*seg.Len()*seg.Len()+1e-9 {
			t.Fatalf("t=%v: %v is off the segment %v -> %v", now, p, prev, next)
		}
		dot := d.X*seg.X + d.Y*seg.Y
		if dot < -1e-9 || dot > seg.X*seg.X+seg.Y*seg.Y+1e-9 {
			t.Fatalf("t=%v: %v overshoots the segment", now, p)
		}

		dist := next.Sub(p).Len()
		if dist > lastDist+1e-9 {
			t.Fatalf("t=%v: distance to target grew from %v to %v", now, lastDist, dist)
		}
		lastDist = dist
	}

	if p, n := mc.Waypoints(); p != prev || n != next {
		t.Error("leg changed before it completed")
	}
}

func TestMotionLegTransitionIsSeamless(t *testing.T) {
	area := StaticArea{Box: collision.FromMinMax(0, 0, 640, 900), Margin: 60}
	mc, err := NewMotionController(4, area, rand.New(rand.NewSource(9)))
	if err != nil {
		t.Fatal(err)
	}
	mc.Initialize(mathutil.V(100, 100), 0)
	mc.PickNewLeg(0)
	_, target := mc.Waypoints()

	before := mc.Tick(4 - 1e-9)
	if !near(before, target, 1e-6) {
		t.Errorf("just before leg end: %v, want ~%v", before, target)
	}

	after := mc.Tick(4)
	if after != target {
		t.Errorf("first position of next leg = %v, want %v", after, target)
	}
	prev, next := mc.Waypoints()
	if prev != target {
		t.Errorf("new leg should start from the reached target, got %v", prev)
	}
	if mc.LegStart() != 4 {
		t.Errorf("LegStart = %v, want 4", mc.LegStart())
	}

	inner := area.Bounds().Shrink(area.Padding())
	if !inner.Contains(next) {
		t.Errorf("new target %v outside padded area", next)
	}
}
