// Package geometry provides the floating and cell rectangle primitives shared
// by the treemap engine and the seam-based renderer. Conversion from a
// floating rectangle to a cell rectangle is the sole locus of rounding in the
// rendering pipeline.
package geometry

import "math"

// Rect is an axis-aligned rectangle with floating-point origin and extent.
type Rect struct {
	X, Y, W, H float64
}

// Area returns the rectangle's area. Negative width or height yields zero.
func (r Rect) Area() float64 {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Valid reports whether the rectangle has positive, finite extent and finite
// origin.
func (r Rect) Valid() bool {
	if math.IsNaN(r.X) || math.IsNaN(r.Y) || math.IsNaN(r.W) || math.IsNaN(r.H) {
		return false
	}
	if math.IsInf(r.X, 0) || math.IsInf(r.Y, 0) || math.IsInf(r.W, 0) || math.IsInf(r.H, 0) {
		return false
	}
	return r.W > 0 && r.H > 0
}

// AspectRatio returns max(a/b, b/a) for the rectangle's sides. A degenerate
// rectangle (either side <= 0) reports +Inf.
func (r Rect) AspectRatio() float64 {
	if r.W <= 0 || r.H <= 0 {
		return math.Inf(1)
	}
	a := r.W / r.H
	if a < 1 {
		a = 1 / a
	}
	return a
}

// Contains reports whether other lies within r, inclusive within eps.
func (r Rect) Contains(other Rect, eps float64) bool {
	return other.X >= r.X-eps &&
		other.Y >= r.Y-eps &&
		other.X+other.W <= r.X+r.W+eps &&
		other.Y+other.H <= r.Y+r.H+eps
}

// Intersects reports whether the interiors of r and other overlap with
// positive area, ignoring shared-edge touching.
func (r Rect) Intersects(other Rect) bool {
	ix := math.Max(r.X, other.X)
	iy := math.Max(r.Y, other.Y)
	ax := math.Min(r.X+r.W, other.X+other.W)
	ay := math.Min(r.Y+r.H, other.Y+other.H)
	return ix < ax && iy < ay
}

// CellRect is an axis-aligned rectangle with integer cell origin and extent,
// the unit the terminal renderer operates in.
type CellRect struct {
	X, Y, W, H int
}

// Area returns the cell rectangle's area in cells.
func (c CellRect) Area() int {
	if c.W <= 0 || c.H <= 0 {
		return 0
	}
	return c.W * c.H
}

// Empty reports whether the cell rectangle has no area.
func (c CellRect) Empty() bool {
	return c.W <= 0 || c.H <= 0
}

// Clip intersects c with bounds, returning the overlapping cell rectangle.
// The result is empty if there is no overlap.
func (c CellRect) Clip(bounds CellRect) CellRect {
	x0 := max(c.X, bounds.X)
	y0 := max(c.Y, bounds.Y)
	x1 := min(c.X+c.W, bounds.X+bounds.W)
	y1 := min(c.Y+c.H, bounds.Y+bounds.H)
	if x1 <= x0 || y1 <= y0 {
		return CellRect{}
	}
	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// ToCellRect converts a floating rectangle into a cell rectangle by flooring
// the origin and ceiling the far corner, then clipping to bounds. This is the
// sole locus of rounding between the treemap engine's floating output and the
// renderer's integer cell grid.
func ToCellRect(r Rect, bounds CellRect) CellRect {
	x0 := int(math.Floor(r.X))
	y0 := int(math.Floor(r.Y))
	x1 := int(math.Ceil(r.X + r.W))
	y1 := int(math.Ceil(r.Y + r.H))
	cr := CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	return cr.Clip(bounds)
}

// ToFloatRect converts a cell rectangle into a floating rectangle, the
// inverse direction used to hand terminal bounds to the treemap engine.
func ToFloatRect(c CellRect) Rect {
	return Rect{X: float64(c.X), Y: float64(c.Y), W: float64(c.W), H: float64(c.H)}
}
