// Package document reads and writes glyph documents: named glyphs, each a
// list of open contours plus the per-glyph table of scribble groups with
// their settings.
//
// Documents are stored as TOML or JSON, chosen by file extension. The point
// lists use an on/off-curve structure: a contour starts at its first point
// and continues with "line" points or with two "offcurve" points followed
// by a "curve" point for each cubic segment.
//
// # Example (TOML)
//
//	[glyphs.l]
//
//	[[glyphs.l.contours]]
//	points = [
//	    { x = 0.0, y = 0.0 },
//	    { x = 0.0, y = 700.0, type = "line" },
//	]
//
//	[[glyphs.l.groups]]
//	contour_a = 0
//	contour_b = 1
//	thickness = 4.0
//	distance = 35.0
//	side = "right"
package document

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/beyondbezier/scribbler/pkg/contour"
	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/geom"
	"github.com/beyondbezier/scribbler/pkg/scribble"
)

// Document is one glyph document.
type Document struct {
	Glyphs map[string]*Glyph `toml:"glyphs" json:"glyphs"`
}

// Glyph holds the outline contours and the scribble group table of one
// glyph.
type Glyph struct {
	Contours []Contour    `toml:"contours" json:"contours"`
	Groups   []GroupEntry `toml:"groups,omitempty" json:"groups,omitempty"`
}

// Contour is a stored point list. Closed contours are rejected when
// compiling: scribbling requires open contours.
type Contour struct {
	Points []PointSpec `toml:"points" json:"points"`
	Closed bool        `toml:"closed,omitempty" json:"closed,omitempty"`
}

// PointSpec is one stored outline point. Type is "line", "offcurve", or
// "curve"; the first point of a contour is the start and its type is
// ignored.
type PointSpec struct {
	X    float64 `toml:"x" json:"x"`
	Y    float64 `toml:"y" json:"y"`
	Type string  `toml:"type,omitempty" json:"type,omitempty"`
}

// GroupEntry is one row of a glyph's group table: a contour pair by index
// plus its settings. The ID ties the group to its jitter seeds; rows loaded
// without one are assigned a fresh identity.
type GroupEntry struct {
	ID        string    `toml:"id,omitempty" json:"id,omitempty"`
	ContourA  int       `toml:"contour_a" json:"contour_a"`
	ContourB  int       `toml:"contour_b" json:"contour_b"`
	Thickness float64   `toml:"thickness,omitempty" json:"thickness,omitempty"`
	Distance  float64   `toml:"distance,omitempty" json:"distance,omitempty"`
	Offset    int       `toml:"offset,omitempty" json:"offset,omitempty"`
	Random    float64   `toml:"random,omitempty" json:"random,omitempty"`
	Side      string    `toml:"side,omitempty" json:"side,omitempty"`
	Preview   *bool     `toml:"preview,omitempty" json:"preview,omitempty"`
	Color     []float64 `toml:"color,omitempty" json:"color,omitempty"`
}

// Load reads a document from path, decoding TOML or JSON by extension.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	var doc Document
	switch ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &doc)
	case ".json":
		err = json.Unmarshal(data, &doc)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported document extension %q (want .toml or .json)", ext(path))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse %s", path)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save writes a document to path, encoding TOML or JSON by extension.
func Save(doc *Document, path string) error {
	if err := errors.ValidateOutputPath(path); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	switch ext(path) {
	case ".toml":
		var b strings.Builder
		err = toml.NewEncoder(&b).Encode(doc)
		data = []byte(b.String())
	case ".json":
		data, err = json.MarshalIndent(doc, "", "  ")
	default:
		return errors.New(errors.ErrCodeUnsupported,
			"unsupported document extension %q (want .toml or .json)", ext(path))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks glyph names and group table references.
func (d *Document) Validate() error {
	for name, g := range d.Glyphs {
		if err := errors.ValidateGlyphName(name); err != nil {
			return err
		}
		for i, e := range g.Groups {
			if e.ContourA < 0 || e.ContourA >= len(g.Contours) ||
				e.ContourB < 0 || e.ContourB >= len(g.Contours) {
				return errors.New(errors.ErrCodeInvalidDocument,
					"glyph %q group %d references contour out of range", name, i)
			}
		}
	}
	return nil
}

// Curve compiles the contour at index i into an engine curve. Closed
// contours and malformed point runs are INVALID_DOCUMENT errors.
func (g *Glyph) Curve(i int) (*contour.Curve, error) {
	if i < 0 || i >= len(g.Contours) {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "contour index %d out of range", i)
	}
	return compile(g.Contours[i])
}

func compile(c Contour) (*contour.Curve, error) {
	if c.Closed {
		return nil, errors.New(errors.ErrCodeInvalidDocument,
			"contour is closed; scribbling requires open contours")
	}
	if len(c.Points) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "contour has no points")
	}

	curve := &contour.Curve{Start: geom.Pt(c.Points[0].X, c.Points[0].Y)}
	var pending []geom.Point // accumulated offcurve points
	for i, p := range c.Points[1:] {
		pt := geom.Pt(p.X, p.Y)
		switch strings.ToLower(p.Type) {
		case "", "line":
			if len(pending) != 0 {
				return nil, errors.New(errors.ErrCodeInvalidDocument,
					"line point %d follows dangling offcurve points", i+1)
			}
			curve.Segments = append(curve.Segments, contour.Segment{Kind: contour.KindLine, End: pt})
		case "offcurve":
			pending = append(pending, pt)
			if len(pending) > 2 {
				return nil, errors.New(errors.ErrCodeInvalidDocument,
					"more than two consecutive offcurve points at point %d", i+1)
			}
		case "curve":
			if len(pending) != 2 {
				return nil, errors.New(errors.ErrCodeInvalidDocument,
					"curve point %d needs exactly two preceding offcurve points, got %d", i+1, len(pending))
			}
			curve.Segments = append(curve.Segments, contour.Segment{
				Kind: contour.KindCubic, C1: pending[0], C2: pending[1], End: pt,
			})
			pending = pending[:0]
		default:
			return nil, errors.New(errors.ErrCodeInvalidDocument,
				"unknown point type %q at point %d", p.Type, i+1)
		}
	}
	if len(pending) != 0 {
		return nil, errors.New(errors.ErrCodeInvalidDocument,
			"contour ends with dangling offcurve points")
	}
	return curve, nil
}

// Settings converts a table row into engine settings. Missing values fall
// back to the defaults, so rows written by older tool versions load
// cleanly; out-of-domain values still fail Validate downstream.
func (e GroupEntry) Settings() (scribble.Settings, error) {
	s := scribble.DefaultSettings()
	if e.Thickness != 0 {
		s.Thickness = e.Thickness
	}
	if e.Distance != 0 {
		s.Distance = e.Distance
	}
	s.OffsetCount = e.Offset
	s.RandomAmount = e.Random
	side, err := scribble.ParseSide(e.Side)
	if err != nil {
		return scribble.Settings{}, err
	}
	s.StartSide = side
	if e.Preview != nil {
		s.PreviewEnabled = *e.Preview
	}
	if len(e.Color) == 4 {
		s.PreviewColor = scribble.Color{R: e.Color[0], G: e.Color[1], B: e.Color[2], A: e.Color[3]}
	}
	return s, nil
}

// GroupID returns the entry's identity, assigning and recording a fresh
// one when the row has none.
func (e *GroupEntry) GroupID() (uuid.UUID, error) {
	if e.ID == "" {
		id := uuid.New()
		e.ID = id.String()
		return id, nil
	}
	id, err := uuid.Parse(e.ID)
	if err != nil {
		return uuid.UUID{}, errors.Wrap(errors.ErrCodeInvalidDocument, err, "group id %q", e.ID)
	}
	return id, nil
}

// BuildGroups compiles a glyph's contours and instantiates its scribble
// groups. The returned slice preserves table order.
func BuildGroups(g *Glyph) ([]*scribble.Group, error) {
	curves := make([]*contour.Curve, len(g.Contours))
	for i := range g.Contours {
		c, err := g.Curve(i)
		if err != nil {
			return nil, err
		}
		curves[i] = c
	}

	groups := make([]*scribble.Group, 0, len(g.Groups))
	for i := range g.Groups {
		e := &g.Groups[i]
		id, err := e.GroupID()
		if err != nil {
			return nil, err
		}
		settings, err := e.Settings()
		if err != nil {
			return nil, err
		}
		pair := scribble.ContourPair{A: curves[e.ContourA], B: curves[e.ContourB]}
		groups = append(groups, scribble.NewGroupWithID(id, pair, settings))
	}
	return groups, nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
