package scribble

import (
	"github.com/beyondbezier/scribbler/pkg/contour"
	"github.com/beyondbezier/scribbler/pkg/geom"
	"github.com/beyondbezier/scribbler/pkg/noise"
)

// Segment is one zig-zag connector between the two curves of a pair. From
// lies on the start-side curve and To on the opposite curve, both
// post-jitter. Thickness is a rendering attribute only; it never displaces
// the endpoints.
type Segment struct {
	From, To  geom.Point
	Thickness float64
}

// Midpoint returns the arithmetic mean of the segment endpoints, the point
// the heartline threads through.
func (s Segment) Midpoint() geom.Point {
	return s.From.Midpoint(s.To)
}

// BuildSegments turns paired samples into ordered zig-zag connector
// segments.
//
// Each endpoint is displaced along its local curve normal by
// RandomAmount * noise.ValueAt(i, seed), with independent seeds per curve
// side: the two sides wobble independently, but each is coherent across i.
// With RandomAmount zero the pairing positions are reproduced exactly.
// Segments are emitted in increasing pair order, preserving the alternation
// established by the pairing; the start side supplies the origin endpoint.
// Empty input yields an empty (nil) result, not an error.
func BuildSegments(pairs []SamplePair, settings Settings, seedA, seedB uint64) []Segment {
	if len(pairs) == 0 {
		return nil
	}
	segments := make([]Segment, len(pairs))
	for i, p := range pairs {
		a := jitter(p.A, i, seedA, settings.RandomAmount)
		b := jitter(p.B, i, seedB, settings.RandomAmount)
		from, to := a, b
		if settings.StartSide == SideLeft {
			from, to = b, a
		}
		segments[i] = Segment{From: from, To: to, Thickness: settings.Thickness}
	}
	return segments
}

// jitter displaces a sample along its normal by the scaled noise value.
// Zero amount bypasses the noise source entirely so the identity holds
// bit-exactly.
func jitter(s contour.Sample, i int, seed uint64, amount float64) geom.Point {
	if amount == 0 {
		return s.Pt
	}
	return s.Pt.Add(s.Normal.Mul(amount * noise.ValueAt(i, seed)))
}
