// Package geometry provides the logical-pixel primitives shared by the
// layout engine. All values are logical coordinates: at fractional output
// scales a rectangle may have a non-integer size.
package geometry

import "math"

// Point is a position in logical pixels.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in logical pixels.
type Size struct {
	Width  float64
	Height float64
}

// Rect represents a position and size in logical pixels.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Insets describes space reserved on each edge of a rectangle, e.g. the
// exclusive zones claimed by panels.
type Insets struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

// Shrink returns r reduced by the given insets. Width and height never go
// below zero.
func (r Rect) Shrink(in Insets) Rect {
	out := Rect{
		X:      r.X + in.Left,
		Y:      r.Y + in.Top,
		Width:  r.Width - in.Left - in.Right,
		Height: r.Height - in.Top - in.Bottom,
	}
	if out.Width < 0 {
		out.Width = 0
	}
	if out.Height < 0 {
		out.Height = 0
	}
	return out
}

// Contains reports whether p lies within r. The right and bottom edges are
// exclusive so adjacent rectangles never both claim a boundary point.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the midpoint of r.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Intersects reports whether r and other overlap with positive area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// Size returns the width/height of r.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Clamp limits v to [lo, hi]. When lo > hi the lower bound wins, matching
// the engine's rule that minimum sizes beat maximum sizes.
func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	return math.Min(math.Max(v, lo), hi)
}

// ApproxEq reports whether a and b differ by less than epsilon. Animated
// values accumulate float error, so geometry comparisons go through this
// rather than ==.
func ApproxEq(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}
