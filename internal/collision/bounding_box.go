package collision

import (
	"math/rand"

	"shmup/internal/mathutil"
)

// BoundingBox represents a rectangular collision boundary
type BoundingBox struct {
	X      float64 // Center X coordinate
	Y      float64 // Center Y coordinate
	Width  float64 // Total width
	Height float64 // Total height
}

// NewBoundingBox creates a new bounding box centered at the given position
func NewBoundingBox(x, y, width, height float64) BoundingBox {
	return BoundingBox{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
	}
}

// FromMinMax builds a box from its corner coordinates
func FromMinMax(minX, minY, maxX, maxY float64) BoundingBox {
	return BoundingBox{
		X:      (minX + maxX) / 2,
		Y:      (minY + maxY) / 2,
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// GetBounds returns the min/max coordinates of the bounding box
func (bb BoundingBox) GetBounds() (minX, minY, maxX, maxY float64) {
	halfWidth := bb.Width / 2
	halfHeight := bb.Height / 2

	minX = bb.X - halfWidth
	maxX = bb.X + halfWidth
	minY = bb.Y - halfHeight
	maxY = bb.Y + halfHeight

	return minX, minY, maxX, maxY
}

// Min returns the lower corner
func (bb BoundingBox) Min() mathutil.Vec2 {
	minX, minY, _, _ := bb.GetBounds()
	return mathutil.V(minX, minY)
}

// Max returns the upper corner
func (bb BoundingBox) Max() mathutil.Vec2 {
	_, _, maxX, maxY := bb.GetBounds()
	return mathutil.V(maxX, maxY)
}

// Center returns the center point
func (bb BoundingBox) Center() mathutil.Vec2 {
	return mathutil.V(bb.X, bb.Y)
}

// IsEmpty reports whether the box has no extent
func (bb BoundingBox) IsEmpty() bool {
	return bb.Width == 0 && bb.Height == 0
}

// Intersects checks if this bounding box intersects with another
func (bb BoundingBox) Intersects(other BoundingBox) bool {
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()

	return !(maxX1 < minX2 || maxX2 < minX1 || maxY1 < minY2 || maxY2 < minY1)
}

// Contains checks if a point is inside the bounding box
func (bb BoundingBox) Contains(p mathutil.Vec2) bool {
	minX, minY, maxX, maxY := bb.GetBounds()
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Union returns the smallest box enclosing both boxes. An empty box is ignored.
func (bb BoundingBox) Union(other BoundingBox) BoundingBox {
	if bb.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return bb
	}
	minX1, minY1, maxX1, maxY1 := bb.GetBounds()
	minX2, minY2, maxX2, maxY2 := other.GetBounds()
	return FromMinMax(min(minX1, minX2), min(minY1, minY2), max(maxX1, maxX2), max(maxY1, maxY2))
}

// Shrink pulls every edge inward by padding. A side that would invert
// collapses to zero width at the center.
func (bb BoundingBox) Shrink(padding float64) BoundingBox {
	out := bb
	out.Width = max(0, bb.Width-2*padding)
	out.Height = max(0, bb.Height-2*padding)
	return out
}

// RandomPoint samples uniformly inside the box
func (bb BoundingBox) RandomPoint(rng *rand.Rand) mathutil.Vec2 {
	minX, minY, maxX, maxY := bb.GetBounds()
	return mathutil.V(
		mathutil.RandRange(rng, minX, maxX),
		mathutil.RandRange(rng, minY, maxY),
	)
}

// MoveTo moves the bounding box to a new center position
func (bb *BoundingBox) MoveTo(x, y float64) {
	bb.X = x
	bb.Y = y
}

// BoundsTest selects how ScreenBoundsCheck judges a box against the screen
type BoundsTest int

const (
	// BoundsCenter passes when the center is on screen
	BoundsCenter BoundsTest = iota
	// BoundsOnScreen passes when the whole box is on screen
	BoundsOnScreen
	// BoundsOffScreen passes while any corner of the box is still on screen
	BoundsOffScreen
)

// ScreenBoundsCheck returns the offset needed to satisfy the test, or the zero
// vector when the box already satisfies it.
func ScreenBoundsCheck(box, screen BoundingBox, test BoundsTest) mathutil.Vec2 {
	sMinX, sMinY, sMaxX, sMaxY := screen.GetBounds()
	bMinX, bMinY, bMaxX, bMaxY := box.GetBounds()

	var off mathutil.Vec2
	switch test {
	case BoundsCenter:
		if screen.Contains(box.Center()) {
			return off
		}
		off.X = overshoot(box.X, box.X, sMinX, sMaxX)
		off.Y = overshoot(box.Y, box.Y, sMinY, sMaxY)

	case BoundsOnScreen:
		if screen.Contains(box.Min()) && screen.Contains(box.Max()) {
			return off
		}
		off.X = overshoot(bMinX, bMaxX, sMinX, sMaxX)
		off.Y = overshoot(bMinY, bMaxY, sMinY, sMaxY)

	case BoundsOffScreen:
		if screen.Contains(box.Min()) || screen.Contains(box.Max()) {
			return off
		}
		off.X = overshoot(bMaxX, bMinX, sMinX, sMaxX)
		// A box straddling the screen with both corners outside yields zero
		// here and so still counts as on screen.
		off.Y = overshoot(bMaxY, bMinY, sMinY, sMaxY)
	}
	return off
}

// overshoot reports how far lo/hi stick out of [sMin, sMax]; negative when
// past the low edge.
func overshoot(lo, hi, sMin, sMax float64) float64 {
	switch {
	case lo < sMin:
		return lo - sMin
	case hi > sMax:
		return hi - sMax
	default:
		return 0
	}
}
