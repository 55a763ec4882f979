package scribble

import (
	"fmt"
	"strings"

	"github.com/beyondbezier/scribbler/pkg/errors"
)

// Side selects which curve of a pair begins the scribble. The choice is
// relative to path direction, not to screen space: Right keeps curve A as
// the start sequence, Left swaps the roles of A and B.
type Side int

const (
	SideRight Side = iota
	SideLeft
)

// String returns "right" or "left".
func (s Side) String() string {
	if s == SideLeft {
		return "left"
	}
	return "right"
}

// ParseSide converts a document value into a Side.
func ParseSide(v string) (Side, error) {
	switch strings.ToLower(v) {
	case "", "right":
		return SideRight, nil
	case "left":
		return SideLeft, nil
	default:
		return SideRight, errors.New(errors.ErrCodeInvalidConfiguration,
			"start side must be %q or %q, got %q", "left", "right", v)
	}
}

// Color is an RGBA preview color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// RGBA renders the color as a CSS rgba() value for SVG attributes.
func (c Color) RGBA() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3g)",
		int(c.R*255+0.5), int(c.G*255+0.5), int(c.B*255+0.5), c.A)
}

// Settings is the immutable-per-computation value bundle controlling one
// scribble group.
type Settings struct {
	// Thickness is the stroke diameter handed to the renderer. It never
	// moves point positions.
	Thickness float64
	// Distance is the arc-length step between samples on the flattened
	// contour.
	Distance float64
	// OffsetCount rotates the non-start sequence's index origin before
	// pairing, controlling how diagonal the zig-zag appears.
	OffsetCount int
	// RandomAmount scales the coherent jitter; zero disables it exactly.
	RandomAmount float64
	// StartSide selects the curve that begins the scribble.
	StartSide Side
	// PreviewEnabled toggles segment visualization; export ignores it.
	PreviewEnabled bool
	// PreviewColor is the stroke color for visualization.
	PreviewColor Color
}

// DefaultSettings mirrors the tool's historical slider defaults.
func DefaultSettings() Settings {
	return Settings{
		Thickness:      4,
		Distance:       35,
		OffsetCount:    0,
		RandomAmount:   0,
		StartSide:      SideRight,
		PreviewEnabled: true,
		PreviewColor:   Color{R: 0, G: 0, B: 1, A: 1},
	}
}

// Validate reports an INVALID_CONFIGURATION error for out-of-domain values.
// The pipeline refuses to run on invalid settings.
func (s Settings) Validate() error {
	if s.Thickness <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"thickness must be positive, got %v", s.Thickness)
	}
	if s.Distance <= 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"distance must be positive, got %v", s.Distance)
	}
	if s.OffsetCount < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"offset count must be non-negative, got %d", s.OffsetCount)
	}
	if s.RandomAmount < 0 {
		return errors.New(errors.ErrCodeInvalidConfiguration,
			"random amount must be non-negative, got %v", s.RandomAmount)
	}
	return nil
}
