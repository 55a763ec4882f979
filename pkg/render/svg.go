// Package render turns computed scribble results into SVG documents for
// preview and export.
package render

import (
	"bytes"
	"fmt"

	"github.com/beyondbezier/scribbler/pkg/geom"
	"github.com/beyondbezier/scribbler/pkg/scribble"
)

// padding around the scene bounds, in glyph units.
const framePadding = 20.0

// Group is one scribble group's renderable output.
type Group struct {
	Segments  []scribble.Segment
	Heartline []geom.Point
	Settings  scribble.Settings
}

// Scene is everything rendered into one SVG: the groups of one glyph, in
// group-table order.
type Scene struct {
	Glyph  string
	Groups []Group
}

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	segments   bool
	heartlines bool
	background string
}

// WithSegments draws each group's zig-zag scribble path.
func WithSegments() SVGOption { return func(r *svgRenderer) { r.segments = true } }

// WithHeartline draws each group's heartline as a thin overlay path.
func WithHeartline() SVGOption { return func(r *svgRenderer) { r.heartlines = true } }

// WithBackground fills the frame with the given CSS color.
func WithBackground(color string) SVGOption {
	return func(r *svgRenderer) { r.background = color }
}

// RenderSVG renders a scene. Output is deterministic byte-for-byte for the
// same scene and options. Groups with preview disabled keep their heartline
// but contribute no scribble path.
func RenderSVG(scene Scene, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)

	minPt, maxPt := sceneBounds(scene)
	width := maxPt.X - minPt.X + 2*framePadding
	height := maxPt.Y - minPt.Y + 2*framePadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", r.background)
	}

	// Glyph coordinates are y-up; flip into SVG's y-down frame.
	fmt.Fprintf(&buf, `  <g transform="translate(%.2f, %.2f) scale(1, -1)">`+"\n",
		framePadding-minPt.X, maxPt.Y+framePadding)

	for _, g := range scene.Groups {
		if r.segments && g.Settings.PreviewEnabled && len(g.Segments) > 0 {
			fmt.Fprintf(&buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="%.2f" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
				scribblePath(g.Segments), g.Settings.PreviewColor.RGBA(), g.Settings.Thickness)
		}
		if r.heartlines && len(g.Heartline) > 0 {
			fmt.Fprintf(&buf, `    <path d="%s" fill="none" stroke="%s" stroke-width="1" stroke-linecap="round" stroke-linejoin="round"/>`+"\n",
				polyline(g.Heartline), g.Settings.PreviewColor.RGBA())
		}
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	var r svgRenderer
	for _, opt := range opts {
		opt(&r)
	}
	if !r.segments && !r.heartlines {
		r.segments = true
	}
	return r
}

// scribblePath emits one continuous back-and-forth stroke: move to the first
// origin, then per segment a line to the far endpoint and a line back to the
// origin of that segment.
func scribblePath(segments []scribble.Segment) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "M %.2f %.2f", segments[0].From.X, segments[0].From.Y)
	for _, s := range segments {
		fmt.Fprintf(&b, " L %.2f %.2f L %.2f %.2f", s.To.X, s.To.Y, s.From.X, s.From.Y)
	}
	return b.String()
}

func polyline(pts []geom.Point) string {
	var b bytes.Buffer
	fmt.Fprintf(&b, "M %.2f %.2f", pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		fmt.Fprintf(&b, " L %.2f %.2f", p.X, p.Y)
	}
	return b.String()
}

func sceneBounds(scene Scene) (minPt, maxPt geom.Point) {
	first := true
	grow := func(p geom.Point) {
		if first {
			minPt, maxPt = p, p
			first = false
			return
		}
		if p.X < minPt.X {
			minPt.X = p.X
		}
		if p.Y < minPt.Y {
			minPt.Y = p.Y
		}
		if p.X > maxPt.X {
			maxPt.X = p.X
		}
		if p.Y > maxPt.Y {
			maxPt.Y = p.Y
		}
	}
	for _, g := range scene.Groups {
		for _, s := range g.Segments {
			grow(s.From)
			grow(s.To)
		}
		for _, p := range g.Heartline {
			grow(p)
		}
	}
	return minPt, maxPt
}
