package contour

import (
	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/geom"
)

// Sample is one resampled curve point together with the unit normal of the
// curve at that point. The normal is what scribble jitter displaces along.
type Sample struct {
	Pt     geom.Point
	Normal geom.Point
}

// Points extracts just the positions of a sample sequence.
func Points(samples []Sample) []geom.Point {
	pts := make([]geom.Point, len(samples))
	for i, s := range samples {
		pts[i] = s.Pt
	}
	return pts
}

// SampleCurve resamples the curve at approximately distance-long arc-length
// steps.
//
// The walk accumulates arc length across segments in path order and emits a
// point every time the accumulated length crosses a multiple of distance,
// interpolating within the crossing segment to the exact crossing length
// (linearly for lines, by monotone bisection on arc length for cubics). The
// curve's start point is always the first sample. The sequence is never
// force-closed.
//
// A non-positive distance is an INVALID_CONFIGURATION error. A curve shorter
// than distance yields a single-point sequence, which is a defined
// degenerate case, not an error. Identical inputs always produce identical
// output.
func SampleCurve(c *Curve, distance float64) ([]Sample, error) {
	if distance <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration,
			"sampling distance must be positive, got %v", distance)
	}

	samples := []Sample{{Pt: c.Start, Normal: c.startNormal()}}
	if c.IsDegenerate() {
		return samples, nil
	}

	var walked float64 // arc length consumed by previous segments
	next := distance   // next emission threshold
	cur := c.Start
	for _, seg := range c.Segments {
		el := element(cur, seg)
		segLen := el.arclen()
		for next <= walked+segLen {
			t := el.paramAtLen(next - walked)
			samples = append(samples, Sample{Pt: el.eval(t), Normal: el.normal(t)})
			next += distance
		}
		walked += segLen
		cur = seg.End
	}
	return samples, nil
}

// pathElement adapts one segment to a common parametric interface.
type pathElement struct {
	line  geom.Line
	cubic geom.CubicBez
	kind  SegmentKind
}

func element(start geom.Point, seg Segment) pathElement {
	switch seg.Kind {
	case KindCubic:
		return pathElement{
			kind:  KindCubic,
			cubic: geom.CubicBez{P0: start, P1: seg.C1, P2: seg.C2, P3: seg.End},
		}
	default:
		return pathElement{
			kind: KindLine,
			line: geom.Line{P0: start, P1: seg.End},
		}
	}
}

func (e pathElement) arclen() float64 {
	if e.kind == KindCubic {
		return e.cubic.Arclen()
	}
	return e.line.Arclen()
}

func (e pathElement) paramAtLen(s float64) float64 {
	if e.kind == KindCubic {
		return e.cubic.ParamAtLen(s)
	}
	return e.line.ParamAtLen(s)
}

func (e pathElement) eval(t float64) geom.Point {
	if e.kind == KindCubic {
		return e.cubic.Eval(t)
	}
	return e.line.Eval(t)
}

func (e pathElement) normal(t float64) geom.Point {
	if e.kind == KindCubic {
		return e.cubic.Normal(t)
	}
	return e.line.Normal(t)
}

// startNormal returns the curve normal at the start point, or zero for a
// curve with no segments.
func (c *Curve) startNormal() geom.Point {
	if len(c.Segments) == 0 {
		return geom.Point{}
	}
	return element(c.Start, c.Segments[0]).normal(0)
}
