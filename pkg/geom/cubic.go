package geom

// CubicBez is a cubic Bézier segment.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// arclenTolerance bounds the error of adaptive arc-length computation.
// The value is far below any sampling distance used in practice.
const arclenTolerance = 1e-6

// Eval returns the point at parameter t in [0, 1].
func (c CubicBez) Eval(t float64) Point {
	mt := 1 - t
	a := c.P0.Mul(mt * mt * mt)
	b := c.P1.Mul(3 * mt * mt * t)
	d := c.P2.Mul(3 * mt * t * t)
	e := c.P3.Mul(t * t * t)
	return a.Add(b).Add(d).Add(e)
}

// Tangent returns the derivative at parameter t.
func (c CubicBez) Tangent(t float64) Point {
	mt := 1 - t
	a := c.P1.Sub(c.P0).Mul(3 * mt * mt)
	b := c.P2.Sub(c.P1).Mul(6 * mt * t)
	d := c.P3.Sub(c.P2).Mul(3 * t * t)
	return a.Add(b).Add(d)
}

// Normal returns the unit normal at parameter t, the tangent rotated 90
// degrees counterclockwise. A vanishing tangent yields the zero vector.
func (c CubicBez) Normal(t float64) Point {
	return c.Tangent(t).Turn90().Normalize()
}

// Subdivide splits the cubic into two halves using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			c.P0.Add(c.P1.Mul(2)).Add(c.P2).Mul(0.25),
			pm,
		}, CubicBez{
			pm,
			c.P1.Add(c.P2.Mul(2)).Add(c.P3).Mul(0.25),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// Arclen returns the arc length of the segment.
//
// This is an adaptive subdivision approach: the control polygon length is an
// upper bound on the arc length and the chord is a lower bound, so the cubic
// is subdivided until the two agree within tolerance.
func (c CubicBez) Arclen() float64 {
	return c.arclen(arclenTolerance, 0)
}

func (c CubicBez) arclen(tolerance float64, depth int) float64 {
	chord := c.P3.Sub(c.P0).Hypot()
	poly := c.P1.Sub(c.P0).Hypot() + c.P2.Sub(c.P1).Hypot() + c.P3.Sub(c.P2).Hypot()
	if poly-chord <= tolerance || depth >= 16 {
		return 0.5 * (chord + poly)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(0.5*tolerance, depth+1) + c1.arclen(0.5*tolerance, depth+1)
}

// ParamAtLen returns the parameter t whose arc length from P0 equals s,
// resolved by bisection. Arc length is monotone in t, so the search always
// converges. s outside [0, Arclen] clamps to the corresponding endpoint.
func (c CubicBez) ParamAtLen(s float64) float64 {
	if s <= 0 {
		return 0
	}
	total := c.Arclen()
	if s >= total {
		return 1
	}
	lo, hi := 0.0, 1.0
	for i := 0; i < 32; i++ {
		mid := 0.5 * (lo + hi)
		if c.prefixLen(mid) < s {
			lo = mid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// prefixLen returns the arc length of the sub-segment [0, t].
func (c CubicBez) prefixLen(t float64) float64 {
	sub := CubicBez{
		c.P0,
		c.P0.Lerp(c.P1, t),
		c.P0.Lerp(c.P1, t).Lerp(c.P1.Lerp(c.P2, t), t),
		c.Eval(t),
	}
	return sub.Arclen()
}
