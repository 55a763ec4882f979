package scribble

import "github.com/beyondbezier/scribbler/pkg/geom"

// Heartline reduces zig-zag segments to the single open centerline path of
// the stroke: one midpoint per segment, in generation order. The result has
// exactly len(segments) points and is empty iff segments is empty.
func Heartline(segments []Segment) []geom.Point {
	if len(segments) == 0 {
		return nil
	}
	path := make([]geom.Point, len(segments))
	for i, s := range segments {
		path[i] = s.Midpoint()
	}
	return path
}
