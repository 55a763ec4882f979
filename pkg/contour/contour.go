// Package contour models open outline curves and resamples them into evenly
// spaced point sequences.
//
// A Curve is an ordered, directed sequence of line and cubic segments with
// an explicit start point. Curves are externally owned: the engine reads
// them during a computation pass and never mutates them.
//
// Two curves are interpolation-compatible when their ordered segment-kind
// signatures match exactly. That check is a first-class operation here
// rather than an opaque call into font tooling, so the invariant is directly
// testable.
package contour

import (
	"fmt"
	"strings"

	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/geom"
)

// SegmentKind identifies the type of a path segment.
type SegmentKind int

const (
	// KindLine is a straight segment to End.
	KindLine SegmentKind = iota
	// KindCubic is a cubic Bézier segment with control points C1, C2 to End.
	KindCubic
)

// String returns the signature letter for the kind: "L" or "C".
func (k SegmentKind) String() string {
	switch k {
	case KindLine:
		return "L"
	case KindCubic:
		return "C"
	default:
		return fmt.Sprintf("?%d", int(k))
	}
}

// Segment is one directed path segment. C1 and C2 are only meaningful for
// KindCubic.
type Segment struct {
	Kind   SegmentKind
	C1, C2 geom.Point
	End    geom.Point
}

// Curve is one open contour: a start point followed by directed segments.
type Curve struct {
	Start    geom.Point
	Segments []Segment
}

// Signature returns the ordered segment-kind structure of the curve.
func (c *Curve) Signature() []SegmentKind {
	sig := make([]SegmentKind, len(c.Segments))
	for i, s := range c.Segments {
		sig[i] = s.Kind
	}
	return sig
}

// SignatureString renders the signature as a compact string such as "LCCL",
// mainly for error messages.
func (c *Curve) SignatureString() string {
	var b strings.Builder
	for _, s := range c.Segments {
		b.WriteString(s.Kind.String())
	}
	return b.String()
}

// Length returns the total arc length of the curve.
func (c *Curve) Length() float64 {
	var total float64
	cur := c.Start
	for _, s := range c.Segments {
		switch s.Kind {
		case KindLine:
			total += geom.Line{P0: cur, P1: s.End}.Arclen()
		case KindCubic:
			total += geom.CubicBez{P0: cur, P1: s.C1, P2: s.C2, P3: s.End}.Arclen()
		}
		cur = s.End
	}
	return total
}

// IsDegenerate reports whether the curve has no segments at all. Short but
// non-empty curves are not degenerate; they sample to a single point.
func (c *Curve) IsDegenerate() bool {
	return len(c.Segments) == 0
}

// Compatible reports whether a and b are interpolation-compatible: same
// count and kind of segments in the same order.
func Compatible(a, b *Curve) bool {
	if len(a.Segments) != len(b.Segments) {
		return false
	}
	for i := range a.Segments {
		if a.Segments[i].Kind != b.Segments[i].Kind {
			return false
		}
	}
	return true
}

// CheckCompatible returns an INCOMPATIBLE_CONTOURS error naming both
// signatures when a and b do not match, and nil when they do.
func CheckCompatible(a, b *Curve) error {
	if Compatible(a, b) {
		return nil
	}
	return errors.New(errors.ErrCodeIncompatibleContours,
		"contours are not interpolation-compatible: %q vs %q",
		a.SignatureString(), b.SignatureString())
}
