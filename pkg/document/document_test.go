package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beyondbezier/scribbler/pkg/contour"
	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/scribble"
)

const sampleTOML = `
[glyphs.l]

[[glyphs.l.contours]]
points = [
    { x = 0.0, y = 0.0 },
    { x = 0.0, y = 700.0, type = "line" },
]

[[glyphs.l.contours]]
points = [
    { x = 60.0, y = 0.0 },
    { x = 60.0, y = 700.0, type = "line" },
]

[[glyphs.l.groups]]
contour_a = 0
contour_b = 1
thickness = 4.0
distance = 50.0
offset = 1
side = "right"
color = [0.0, 0.0, 1.0, 1.0]
`

func writeDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadTOML(t *testing.T) {
	doc, err := Load(writeDoc(t, "glyphs.toml", sampleTOML))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	g, ok := doc.Glyphs["l"]
	if !ok {
		t.Fatal("glyph l missing")
	}
	if len(g.Contours) != 2 || len(g.Groups) != 1 {
		t.Fatalf("got %d contours, %d groups", len(g.Contours), len(g.Groups))
	}

	curve, err := g.Curve(0)
	if err != nil {
		t.Fatalf("Curve error: %v", err)
	}
	if curve.SignatureString() != "L" {
		t.Errorf("signature = %q, want L", curve.SignatureString())
	}
	if curve.Length() != 700 {
		t.Errorf("length = %v, want 700", curve.Length())
	}
}

func TestLoadJSONRoundTrip(t *testing.T) {
	doc, err := Load(writeDoc(t, "glyphs.toml", sampleTOML))
	if err != nil {
		t.Fatal(err)
	}

	jsonPath := filepath.Join(t.TempDir(), "glyphs.json")
	if err := Save(doc, jsonPath); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	doc2, err := Load(jsonPath)
	if err != nil {
		t.Fatalf("Load json error: %v", err)
	}
	if len(doc2.Glyphs["l"].Contours) != 2 {
		t.Error("round-trip lost contours")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		if !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("error = %v, want FILE_NOT_FOUND", err)
		}
	})
	t.Run("bad extension", func(t *testing.T) {
		_, err := Load(writeDoc(t, "glyphs.yaml", "x"))
		if !errors.Is(err, errors.ErrCodeUnsupported) {
			t.Errorf("error = %v, want UNSUPPORTED", err)
		}
	})
	t.Run("malformed toml", func(t *testing.T) {
		_, err := Load(writeDoc(t, "glyphs.toml", "[glyphs.l\n"))
		if !errors.Is(err, errors.ErrCodeInvalidDocument) {
			t.Errorf("error = %v, want INVALID_DOCUMENT", err)
		}
	})
	t.Run("group contour out of range", func(t *testing.T) {
		_, err := Load(writeDoc(t, "glyphs.toml", `
[glyphs.a]
[[glyphs.a.contours]]
points = [{ x = 0.0, y = 0.0 }, { x = 1.0, y = 0.0, type = "line" }]
[[glyphs.a.groups]]
contour_a = 0
contour_b = 5
`))
		if !errors.Is(err, errors.ErrCodeInvalidDocument) {
			t.Errorf("error = %v, want INVALID_DOCUMENT", err)
		}
	})
}

func TestCompileCubic(t *testing.T) {
	g := &Glyph{Contours: []Contour{{
		Points: []PointSpec{
			{X: 0, Y: 0},
			{X: 0, Y: 50, Type: "offcurve"},
			{X: 50, Y: 100, Type: "offcurve"},
			{X: 100, Y: 100, Type: "curve"},
			{X: 150, Y: 100, Type: "line"},
		},
	}}}
	curve, err := g.Curve(0)
	if err != nil {
		t.Fatalf("Curve error: %v", err)
	}
	if curve.SignatureString() != "CL" {
		t.Errorf("signature = %q, want CL", curve.SignatureString())
	}
	if curve.Segments[0].Kind != contour.KindCubic {
		t.Error("first segment should be cubic")
	}
}

func TestCompileRejects(t *testing.T) {
	tests := []struct {
		name string
		c    Contour
	}{
		{"closed", Contour{Closed: true, Points: []PointSpec{{X: 0, Y: 0}, {X: 1, Y: 1, Type: "line"}}}},
		{"empty", Contour{}},
		{"single offcurve before curve", Contour{Points: []PointSpec{
			{X: 0, Y: 0}, {X: 1, Y: 1, Type: "offcurve"}, {X: 2, Y: 2, Type: "curve"},
		}}},
		{"dangling offcurve", Contour{Points: []PointSpec{
			{X: 0, Y: 0}, {X: 1, Y: 1, Type: "offcurve"},
		}}},
		{"line after offcurve", Contour{Points: []PointSpec{
			{X: 0, Y: 0}, {X: 1, Y: 1, Type: "offcurve"}, {X: 2, Y: 2, Type: "line"},
		}}},
		{"unknown type", Contour{Points: []PointSpec{
			{X: 0, Y: 0}, {X: 1, Y: 1, Type: "qcurve"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := compile(tt.c); !errors.Is(err, errors.ErrCodeInvalidDocument) {
				t.Errorf("compile error = %v, want INVALID_DOCUMENT", err)
			}
		})
	}
}

func TestGroupEntrySettings(t *testing.T) {
	pv := false
	e := GroupEntry{
		Thickness: 6, Distance: 20, Offset: 2, Random: 1.5,
		Side: "left", Preview: &pv, Color: []float64{1, 0, 0, 1},
	}
	s, err := e.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	want := scribble.Settings{
		Thickness: 6, Distance: 20, OffsetCount: 2, RandomAmount: 1.5,
		StartSide: scribble.SideLeft, PreviewEnabled: false,
		PreviewColor: scribble.Color{R: 1, G: 0, B: 0, A: 1},
	}
	if s != want {
		t.Errorf("Settings = %+v, want %+v", s, want)
	}
}

func TestGroupEntrySettingsDefaults(t *testing.T) {
	// A sparse row from an older document falls back to the defaults.
	s, err := GroupEntry{ContourA: 0, ContourB: 1}.Settings()
	if err != nil {
		t.Fatalf("Settings error: %v", err)
	}
	if s != scribble.DefaultSettings() {
		t.Errorf("sparse row settings = %+v, want defaults", s)
	}
}

func TestBuildGroups(t *testing.T) {
	doc, err := Load(writeDoc(t, "glyphs.toml", sampleTOML))
	if err != nil {
		t.Fatal(err)
	}
	g := doc.Glyphs["l"]

	groups, err := BuildGroups(g)
	if err != nil {
		t.Fatalf("BuildGroups error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	res, err := groups[0].Result()
	if err != nil {
		t.Fatalf("Result error: %v", err)
	}
	// 700 units at distance 50: samples at 0, 50, ..., 700 = 15 points.
	if len(res.Segments) != 15 {
		t.Errorf("got %d segments, want 15", len(res.Segments))
	}

	// The assigned ID must be recorded back into the table row.
	if g.Groups[0].ID == "" {
		t.Error("BuildGroups should record generated group IDs")
	}

	// Rebuilding with the recorded ID reproduces the identical scribble.
	groups2, err := BuildGroups(g)
	if err != nil {
		t.Fatal(err)
	}
	res2, _ := groups2[0].Result()
	for i := range res.Segments {
		if res.Segments[i] != res2.Segments[i] {
			t.Fatalf("segment %d differs after rebuild with stored ID", i)
		}
	}
}
