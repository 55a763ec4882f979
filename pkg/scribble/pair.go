package scribble

import "github.com/beyondbezier/scribbler/pkg/contour"

// SamplePair couples one sample from curve A with one from curve B. A and B
// always come from opposite curves: the pairer never pairs a curve with
// itself.
type SamplePair struct {
	A, B contour.Sample
}

// Pair aligns two sampled point sequences index-wise under a rotation
// offset.
//
// The start sequence is chosen by side (SideRight keeps A as the start,
// SideLeft swaps the roles). Index i of the start sequence pairs with index
// (i + offset) mod len(other) of the other sequence, for i in [0, n) where
// n = min(len(a), len(b)). Exactly n pairs are returned; length mismatch
// from resampling drift resolves by truncation and is not an error. The
// offset is always taken modulo the other sequence's length, so offset and
// offset+len(other) produce identical pairings.
func Pair(a, b []contour.Sample, offset int, side Side) []SamplePair {
	if side == SideLeft {
		pairs := Pair(b, a, offset, SideRight)
		for i := range pairs {
			pairs[i].A, pairs[i].B = pairs[i].B, pairs[i].A
		}
		return pairs
	}

	n := min(len(a), len(b))
	if n == 0 {
		return nil
	}
	pairs := make([]SamplePair, n)
	for i := 0; i < n; i++ {
		pairs[i] = SamplePair{A: a[i], B: b[(i+offset)%len(b)]}
	}
	return pairs
}
