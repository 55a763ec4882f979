package geom

// Line is a straight segment from P0 to P1.
type Line struct {
	P0, P1 Point
}

// Eval returns the point at parameter t in [0, 1].
func (l Line) Eval(t float64) Point {
	return l.P0.Lerp(l.P1, t)
}

// Arclen returns the length of the segment.
func (l Line) Arclen() float64 {
	return l.P1.Sub(l.P0).Hypot()
}

// Tangent returns the (unnormalized) direction vector of the segment.
func (l Line) Tangent(t float64) Point {
	return l.P1.Sub(l.P0)
}

// Normal returns the unit normal of the segment, the tangent rotated 90
// degrees counterclockwise. Degenerate segments yield the zero vector.
func (l Line) Normal(t float64) Point {
	return l.Tangent(t).Turn90().Normalize()
}

// ParamAtLen returns the parameter whose arc length from P0 equals s.
// For a line this is exact.
func (l Line) ParamAtLen(s float64) float64 {
	total := l.Arclen()
	if total == 0 {
		return 0
	}
	return s / total
}
