// Package geom provides the 2D geometric primitives used by the scribble
// engine: points, line segments, and cubic Bézier segments.
//
// All operations are pure functions of their inputs. Arc lengths are computed
// deterministically so that the same curve always resamples to the same point
// sequence.
package geom

import "math"

// Point is a 2D point (or vector; the distinction is not enforced).
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Mul returns p scaled by f.
func (p Point) Mul(f float64) Point {
	return Point{p.X * f, p.Y * f}
}

// Hypot returns the distance from the origin.
func (p Point) Hypot() float64 {
	return math.Hypot(p.X, p.Y)
}

// Hypot2 returns the squared distance from the origin.
func (p Point) Hypot2() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Hypot()
}

// Midpoint returns the point halfway between p and q.
func (p Point) Midpoint(q Point) Point {
	return Point{0.5 * (p.X + q.X), 0.5 * (p.Y + q.Y)}
}

// Lerp linearly interpolates between p and q.
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Mul(t))
}

// Turn90 returns p rotated 90 degrees counterclockwise.
func (p Point) Turn90() Point {
	return Point{-p.Y, p.X}
}

// Normalize returns the unit vector in the direction of p, or the zero
// vector when p has (near) zero length. Returning zero instead of NaN keeps
// degenerate tangents harmless downstream.
func (p Point) Normalize() Point {
	h := p.Hypot()
	if h < 1e-12 {
		return Point{}
	}
	return p.Mul(1 / h)
}
