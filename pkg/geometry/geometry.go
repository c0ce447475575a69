// Package geometry provides the axis-aligned rectangle math used for
// drag-and-drop hit testing.
package geometry

import "math"

// Offset represents a 2D point or vector in page coordinates.
type Offset struct {
	X float64
	Y float64
}

// Add returns o translated by other.
func (o Offset) Add(other Offset) Offset {
	return Offset{X: o.X + other.X, Y: o.Y + other.Y}
}

// Sub returns the vector from other to o.
func (o Offset) Sub(other Offset) Offset {
	return Offset{X: o.X - other.X, Y: o.Y - other.Y}
}

// Size represents width and height dimensions.
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a rectangle using left, top, right, bottom coordinates.
type Rect struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// RectFromLTWH constructs a Rect from left, top, width, height values.
func RectFromLTWH(left, top, width, height float64) Rect {
	return Rect{
		Left:   left,
		Top:    top,
		Right:  left + width,
		Bottom: top + height,
	}
}

// RectFromOffsetSize constructs a Rect at origin with the given size.
func RectFromOffsetSize(origin Offset, size Size) Rect {
	return RectFromLTWH(origin.X, origin.Y, size.Width, size.Height)
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Bottom - r.Top
}

// Size returns the size of the rectangle.
func (r Rect) Size() Size {
	return Size{Width: r.Width(), Height: r.Height()}
}

// Area returns width times height. Degenerate rectangles may yield zero or a
// negative value.
func (r Rect) Area() float64 {
	return r.Width() * r.Height()
}

// TopLeft returns the origin of the rectangle.
func (r Rect) TopLeft() Offset {
	return Offset{X: r.Left, Y: r.Top}
}

// Contains reports whether p lies inside r. Left and top edges are inside,
// right and bottom edges are outside.
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Left && p.X < r.Right && p.Y >= r.Top && p.Y < r.Bottom
}

// Translate returns a new rect offset by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		Left:   r.Left + dx,
		Top:    r.Top + dy,
		Right:  r.Right + dx,
		Bottom: r.Bottom + dy,
	}
}

// Intersect returns the intersection of two rectangles.
// Returns empty rect if they don't overlap.
func (r Rect) Intersect(other Rect) Rect {
	left := math.Max(r.Left, other.Left)
	top := math.Max(r.Top, other.Top)
	right := math.Min(r.Right, other.Right)
	bottom := math.Min(r.Bottom, other.Bottom)
	if left >= right || top >= bottom {
		return Rect{}
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// IsEmpty returns true if the rectangle has zero or negative area.
func (r Rect) IsEmpty() bool {
	return r.Right <= r.Left || r.Bottom <= r.Top
}

// Intersects reports whether a and b overlap with non-zero area. Rectangles
// that only share an edge or a corner do not intersect.
func Intersects(a, b Rect) bool {
	return a.Left < b.Right && a.Right > b.Left &&
		a.Top < b.Bottom && a.Bottom > b.Top
}

// OverlapPercentage returns how much of a's area is covered by its
// intersection with b, as a percentage.
//
// The inner bounds are subtracted in max-minus-min order, so both factors are
// negative for overlapping rectangles and the absolute value of the product is
// taken. No clamping is applied. The result is NaN or infinite when a has zero
// area; compare it with [MeetsThreshold].
func OverlapPercentage(a, b Rect) float64 {
	h := math.Max(a.Top, b.Top) - math.Min(a.Bottom, b.Bottom)
	w := math.Max(a.Left, b.Left) - math.Min(a.Right, b.Right)
	return math.Abs(h*w) / (a.Height() * a.Width()) * 100
}

// MeetsThreshold reports whether pct >= threshold. A NaN percentage never
// meets any threshold.
func MeetsThreshold(pct, threshold float64) bool {
	if math.IsNaN(pct) {
		return false
	}
	return pct >= threshold
}
