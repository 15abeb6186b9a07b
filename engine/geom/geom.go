// Package geom provides the integer vector and rectangle primitives shared by
// the UI engine and its renderer backends. Coordinates are pixels (or cells,
// for grid backends) with Y growing downward.
package geom

// Vec2 is a 2D integer point or extent.
type Vec2 struct {
	X, Y int
}

// V is shorthand for Vec2{x, y}.
func V(x, y int) Vec2 { return Vec2{x, y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

// Rect is an axis-aligned rectangle with origin (X, Y) and extent (W, H).
type Rect struct {
	X, Y, W, H int
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h int) Rect { return Rect{x, y, w, h} }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r. Points on the right/bottom edge
// are outside, matching half-open pixel coverage.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.W <= r.X+r.W && o.Y+o.H <= r.Y+r.H
}

// Intersect returns the overlap of r and o. Disjoint rects produce a
// zero-area result.
func (r Rect) Intersect(o Rect) Rect {
	x1 := max(r.X, o.X)
	y1 := max(r.Y, o.Y)
	x2 := min(r.X+r.W, o.X+o.W)
	y2 := min(r.Y+r.H, o.Y+o.H)
	if x2 < x1 {
		x2 = x1
	}
	if y2 < y1 {
		y2 = y1
	}
	return Rect{x1, y1, x2 - x1, y2 - y1}
}

// Expand grows the rect by n on every side. Negative n shrinks it.
func (r Rect) Expand(n int) Rect {
	return Rect{r.X - n, r.Y - n, r.W + n*2, r.H + n*2}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
