// Package scribble implements the scribble generation engine: pairing two
// resampled contours, perturbing the pairs with coherent noise, emitting
// zig-zag connector segments, and reducing them to a single continuous
// heartline path.
//
// # Pipeline
//
// The stages run in a fixed order per contour pair:
//
//  1. Sample both curves at the configured distance (pkg/contour)
//  2. Pair the two sample sequences under an index offset (Pair)
//  3. Build jittered zig-zag segments (BuildSegments, pkg/noise)
//  4. Thread the heartline through the segment midpoints (Heartline)
//
// Every stage is a pure function over its inputs. Group coordinates the
// pipeline for one contour pair, caching the latest result until a settings
// or geometry change marks it stale; recomputation is pull-driven on the
// next read.
//
// # Determinism
//
// Jitter seeds derive from the group's identity, one seed per curve side,
// so both sides wobble independently but each is internally coherent and
// the whole scribble is reproducible run over run.
package scribble
