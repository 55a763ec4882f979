// Package noise provides the coherent noise source that drives scribble
// jitter.
//
// The noise is 1-D gradient noise: each integer lattice point carries a
// pseudo-random gradient derived by hashing (lattice, seed), and values
// between lattice points are smoothstep-interpolated. Adjacent indexes
// therefore receive correlated values, which reads as a smooth hand wobble
// rather than static.
//
// ValueAt is a pure function of (index, seed). There is no hidden state: the
// same inputs always return bit-identical results, which keeps scribble
// generation reproducible and cacheable.
package noise

import (
	"hash/fnv"
	"math"
)

const (
	// frequency maps sample indexes onto lattice space. Below 1 so that
	// consecutive indexes land inside the same lattice cell often enough to
	// wobble smoothly.
	frequency = 0.35

	// octaves is the number of stacked noise layers. Each octave doubles the
	// frequency and halves the amplitude.
	octaves = 3
)

// ValueAt returns the noise value for a sample index under the given seed.
// The result is in [-1, 1]. Magnitude scaling is the caller's concern.
func ValueAt(index int, seed uint64) float64 {
	x := float64(index) * frequency
	var sum float64
	for o := 0; o < octaves; o++ {
		scale := float64(uint64(1) << o)
		sum += plain(x*scale, seed+uint64(o)) / scale
	}
	// Normalize the octave stack back to unit amplitude.
	sum /= 2 - math.Exp2(float64(1-octaves))
	return clamp(sum, -1, 1)
}

// plain evaluates single-octave gradient noise at x. The scale factor of 2
// stretches the raw 1-D gradient range to approximately [-1, 1].
func plain(x float64, seed uint64) float64 {
	i0 := math.Floor(x)
	i1 := i0 + 1
	g0 := gradient(int64(i0), seed)
	g1 := gradient(int64(i1), seed)
	d0 := x - i0
	d1 := x - i1
	return 2 * lerp(smoothstep(d0), g0*d0, g1*d1)
}

// gradient returns a reproducible pseudo-random slope in [-1, 1] for a
// lattice point, derived from a SplitMix64 mix of (lattice, seed).
func gradient(lattice int64, seed uint64) float64 {
	z := uint64(lattice) + seed*0x9e3779b97f4a7c15
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	// Map the top 53 bits to [0, 1), then to [-1, 1].
	return float64(z>>11)/(1<<53)*2 - 1
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Seed derives a stable 64-bit seed from arbitrary identity material, such
// as a group ID plus a per-curve tag. FNV-1a keeps the derivation cheap and
// reproducible across runs.
func Seed(parts ...[]byte) uint64 {
	h := fnv.New64a()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum64()
}
