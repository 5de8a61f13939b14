package enemy

import (
	"fmt"
	"math/rand"

	"shmup/internal/collision"
	"shmup/internal/mathutil"
)

// PlayArea describes where enemies may travel. Bounds is the visible screen;
// Padding is kept clear on each side when picking waypoints.
type PlayArea interface {
	Bounds() collision.BoundingBox
	Padding() float64
}

// StaticArea is a fixed PlayArea
type StaticArea struct {
	Box    collision.BoundingBox
	Margin float64
}

func (a StaticArea) Bounds() collision.BoundingBox { return a.Box }
func (a StaticArea) Padding() float64              { return a.Margin }

// MotionController moves an entity between two waypoints with ease-out
// interpolation, picking a new random target each time a leg completes.
type MotionController struct {
	points   [2]mathutil.Vec2 // [prev, next]
	legStart float64
	duration float64

	area PlayArea
	rng  *rand.Rand
}

// NewMotionController creates a controller with the given leg duration in seconds
func NewMotionController(duration float64, area PlayArea, rng *rand.Rand) (*MotionController, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("leg duration must be positive, got %v", duration)
	}
	if area == nil {
		return nil, fmt.Errorf("motion controller needs a play area")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	return &MotionController{
		duration: duration,
		area:     area,
		rng:      rng,
	}, nil
}

// Initialize parks the entity at spawn: both waypoints are the spawn point, so
// it stays put until the next leg is chosen.
func (mc *MotionController) Initialize(spawn mathutil.Vec2, now float64) {
	mc.points[0] = spawn
	mc.points[1] = spawn
	mc.legStart = now
}

// PickNewLeg starts a leg from the current target to a random point inside
// the padded play area.
func (mc *MotionController) PickNewLeg(now float64) {
	target := mc.area.Bounds().Shrink(mc.area.Padding()).RandomPoint(mc.rng)

	mc.points[0] = mc.points[1]
	mc.points[1] = target
	mc.legStart = now
}

// Tick returns the position for time now, re-targeting when the leg is done.
func (mc *MotionController) Tick(now float64) mathutil.Vec2 {
	u := (now - mc.legStart) / mc.duration
	if u >= 1 {
		mc.PickNewLeg(now)
		u = 0
	}
	// A clock that runs backwards must not extrapolate behind prev.
	u = mathutil.Clamp01(u)

	return mathutil.Lerp(mc.points[0], mc.points[1], mathutil.EaseOutQuad(u))
}

// Waypoints returns the current leg endpoints
func (mc *MotionController) Waypoints() (prev, next mathutil.Vec2) {
	return mc.points[0], mc.points[1]
}

// LegStart returns the time the current leg began
func (mc *MotionController) LegStart() float64 {
	return mc.legStart
}

// Duration returns the leg duration in seconds
func (mc *MotionController) Duration() float64 {
	return mc.duration
}
