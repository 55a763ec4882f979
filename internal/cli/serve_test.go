package cli

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/beyondbezier/scribbler/pkg/pipeline"
)

const serveTestDoc = `
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
`

func newTestServer(t *testing.T) *previewServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glyphs.toml")
	if err := os.WriteFile(path, []byte(serveTestDoc), 0644); err != nil {
		t.Fatal(err)
	}
	return &previewServer{
		runner:  pipeline.NewRunner(nil, nil),
		docPath: path,
	}
}

func TestServeGlyphs(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/glyphs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Glyphs []string `json:"glyphs"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Glyphs) != 1 || body.Glyphs[0] != "l" {
		t.Errorf("glyphs = %v, want [l]", body.Glyphs)
	}
}

func TestServePreviewSVG(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/glyphs/l/preview.svg", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if !strings.HasPrefix(rec.Body.String(), "<svg") {
		t.Errorf("body is not svg: %.60s", rec.Body.String())
	}
}

func TestServeHeartlineJSON(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/glyphs/l/heartline.json", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"heartlines"`) {
		t.Errorf("body missing heartlines: %s", rec.Body.String())
	}
}

func TestServeUnknownGlyph(t *testing.T) {
	srv := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.routes().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/glyphs/missing/preview.svg", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "GLYPH_NOT_FOUND") {
		t.Errorf("body missing error code: %s", rec.Body.String())
	}
}
