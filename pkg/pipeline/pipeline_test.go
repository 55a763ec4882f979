package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beyondbezier/scribbler/pkg/cache"
	"github.com/beyondbezier/scribbler/pkg/errors"
)

const testDoc = `
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
id = "7b1d3bb2-6a3e-4cf4-9a6f-97542f3f3b1c"
contour_a = 0
contour_b = 1
distance = 70.0

[glyphs.i]

[[glyphs.i.contours]]
points = [
    { x = 0.0, y = 0.0 },
    { x = 0.0, y = 400.0, type = "line" },
]

[[glyphs.i.contours]]
points = [
    { x = 40.0, y = 0.0 },
    { x = 40.0, y = 400.0, type = "line" },
]

[[glyphs.i.groups]]
id = "0d9c6c30-67a8-44cb-92ab-3737acb4a781"
contour_a = 0
contour_b = 1
distance = 40.0
`

func writeTestDoc(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glyphs.toml")
	if err := os.WriteFile(path, []byte(testDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{DocumentPath: "glyphs.toml"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.LayerPath != "glyphs.scribbler.toml" {
		t.Errorf("LayerPath = %q", opts.LayerPath)
	}
	if opts.Logger == nil {
		t.Error("Logger should default")
	}
	// Idempotent: a second call leaves everything unchanged.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call error: %v", err)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"missing document", Options{}, errors.ErrCodeInvalidConfiguration},
		{"bad format", Options{DocumentPath: "x.toml", Formats: []string{"png"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.ValidateAndSetDefaults(); !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestExecuteAllGlyphs(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		DocumentPath: writeTestDoc(t),
		Formats:      []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	if result.Stats.GlyphCount != 2 || result.Stats.GroupCount != 2 {
		t.Fatalf("stats = %+v", result.Stats)
	}
	// Sorted order: i before l. 400/40 -> 11 samples, 700/70 -> 11 samples.
	if result.Glyphs[0].Glyph != "i" || result.Glyphs[1].Glyph != "l" {
		t.Errorf("glyph order = %s, %s", result.Glyphs[0].Glyph, result.Glyphs[1].Glyph)
	}
	if result.Stats.SegmentCount != 22 {
		t.Errorf("SegmentCount = %d, want 22", result.Stats.SegmentCount)
	}

	for _, gr := range result.Glyphs {
		if len(gr.GroupErrors) != 0 {
			t.Errorf("glyph %s errors: %v", gr.Glyph, gr.GroupErrors)
		}
		if !bytes.HasPrefix(gr.Artifacts[FormatSVG], []byte("<svg")) {
			t.Errorf("glyph %s svg artifact missing", gr.Glyph)
		}
		if !strings.Contains(string(gr.Artifacts[FormatJSON]), `"heartlines"`) {
			t.Errorf("glyph %s json artifact missing", gr.Glyph)
		}
		if len(gr.Heartlines) != 1 {
			t.Errorf("glyph %s heartlines = %d, want 1", gr.Glyph, len(gr.Heartlines))
		}
	}

	if len(result.Layer.Glyph("l")) != 1 {
		t.Error("layer missing glyph l heartline")
	}
}

func TestExecuteGlyphSelection(t *testing.T) {
	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{
		DocumentPath: writeTestDoc(t),
		Glyphs:       []string{"l"},
	})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}
	if result.Stats.GlyphCount != 1 || result.Glyphs[0].Glyph != "l" {
		t.Errorf("result = %+v", result.Stats)
	}

	_, err = runner.Execute(context.Background(), Options{
		DocumentPath: writeTestDoc(t),
		Glyphs:       []string{"missing"},
	})
	if !errors.Is(err, errors.ErrCodeGlyphNotFound) {
		t.Errorf("error = %v, want GLYPH_NOT_FOUND", err)
	}
}

func TestExecuteArtifactCache(t *testing.T) {
	c := cache.NewMemoryCache()
	runner := NewRunner(c, nil)
	defer runner.Close()

	docPath := writeTestDoc(t)
	opts := Options{DocumentPath: docPath, Glyphs: []string{"l"}}

	first, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.Hits != 0 || first.CacheInfo.Misses != 1 {
		t.Fatalf("first run cache = %+v", first.CacheInfo)
	}

	second, err := runner.Execute(context.Background(), Options{DocumentPath: docPath, Glyphs: []string{"l"}})
	if err != nil {
		t.Fatal(err)
	}
	if second.CacheInfo.Hits != 1 || second.CacheInfo.Misses != 0 {
		t.Errorf("second run cache = %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Glyphs[0].Artifacts[FormatSVG], second.Glyphs[0].Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from rendered one")
	}

	// Refresh bypasses the cache entirely.
	third, err := runner.Execute(context.Background(), Options{DocumentPath: docPath, Glyphs: []string{"l"}, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.Hits != 0 {
		t.Errorf("refresh run cache = %+v", third.CacheInfo)
	}
}

func TestExecuteCollectsGroupErrors(t *testing.T) {
	// Second group pairs structurally incompatible contours; the first
	// still computes.
	doc := `
[glyphs.a]

[[glyphs.a.contours]]
points = [
    { x = 0.0, y = 0.0 },
    { x = 0.0, y = 100.0, type = "line" },
]

[[glyphs.a.contours]]
points = [
    { x = 40.0, y = 0.0 },
    { x = 40.0, y = 100.0, type = "line" },
]

[[glyphs.a.contours]]
points = [
    { x = 80.0, y = 0.0 },
    { x = 80.0, y = 30.0, type = "offcurve" },
    { x = 80.0, y = 70.0, type = "offcurve" },
    { x = 80.0, y = 100.0, type = "curve" },
]

[[glyphs.a.groups]]
contour_a = 0
contour_b = 1
distance = 10.0

[[glyphs.a.groups]]
contour_a = 0
contour_b = 2
distance = 10.0
`
	path := filepath.Join(t.TempDir(), "glyphs.toml")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil)
	defer runner.Close()

	result, err := runner.Execute(context.Background(), Options{DocumentPath: path})
	if err != nil {
		t.Fatalf("Execute error: %v", err)
	}

	gr := result.Glyphs[0]
	if len(gr.GroupErrors) != 1 {
		t.Fatalf("GroupErrors = %v, want exactly one", gr.GroupErrors)
	}
	if !errors.Is(gr.GroupErrors[0], errors.ErrCodeIncompatibleContours) {
		t.Errorf("error = %v, want INCOMPATIBLE_CONTOURS", gr.GroupErrors[0])
	}
	if result.Stats.FailedGroups != 1 {
		t.Errorf("FailedGroups = %d, want 1", result.Stats.FailedGroups)
	}
	// The compatible group still produced segments.
	if len(gr.Scene.Groups) != 1 || result.Stats.SegmentCount != 11 {
		t.Errorf("scene groups = %d, segments = %d", len(gr.Scene.Groups), result.Stats.SegmentCount)
	}
}

func TestExecuteExportsLayer(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "glyphs.toml")
	if err := os.WriteFile(docPath, []byte(testDoc), 0644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{
		DocumentPath: docPath,
		ExportLayer:  true,
	})
	if err != nil {
		t.Fatal(err)
	}

	layerPath := filepath.Join(dir, "glyphs.scribbler.toml")
	if _, err := os.Stat(layerPath); err != nil {
		t.Fatalf("layer document not written: %v", err)
	}

	// Idempotent: a second run rewrites the same glyph paths.
	if _, err := runner.Execute(context.Background(), Options{
		DocumentPath: docPath,
		ExportLayer:  true,
	}); err != nil {
		t.Fatal(err)
	}
}
