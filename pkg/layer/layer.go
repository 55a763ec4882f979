// Package layer models the output drawing layer: per glyph, the open paths
// produced by scribble generation (typically heartlines). Exports are
// idempotent: writing a glyph replaces whatever an earlier run left there.
package layer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/geom"
)

// DefaultName is the layer glyphs are exported into.
const DefaultName = "scribbler.drawing"

// Path is one ordered open point sequence.
type Path struct {
	Points []geom.Point `toml:"points" json:"points"`
}

// Layer holds exported paths keyed by glyph name.
type Layer struct {
	Name  string            `toml:"name" json:"name"`
	Paths map[string][]Path `toml:"paths,omitempty" json:"paths,omitempty"`
}

// New returns an empty layer. An empty name falls back to DefaultName.
func New(name string) *Layer {
	if name == "" {
		name = DefaultName
	}
	return &Layer{Name: name, Paths: make(map[string][]Path)}
}

// ReplaceGlyph clears any prior paths for the glyph and stores the given
// ones. Replacing with an empty slice removes the glyph entirely, so a
// second export of the same result is a no-op.
func (l *Layer) ReplaceGlyph(glyph string, paths []Path) error {
	if err := errors.ValidateGlyphName(glyph); err != nil {
		return err
	}
	if l.Paths == nil {
		l.Paths = make(map[string][]Path)
	}
	if len(paths) == 0 {
		delete(l.Paths, glyph)
		return nil
	}
	l.Paths[glyph] = paths
	return nil
}

// Glyph returns the paths stored for a glyph, or nil when it has none.
func (l *Layer) Glyph(glyph string) []Path {
	return l.Paths[glyph]
}

// GlyphNames returns the glyphs with stored paths in sorted order.
func (l *Layer) GlyphNames() []string {
	names := make([]string, 0, len(l.Paths))
	for name := range l.Paths {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WriteDocument persists the layer at path, encoding TOML or JSON by
// extension.
func WriteDocument(l *Layer, path string) error {
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
		err = toml.NewEncoder(&b).Encode(l)
		data = []byte(b.String())
	case ".json":
		data, err = json.MarshalIndent(l, "", "  ")
	default:
		return errors.New(errors.ErrCodeUnsupported,
			"unsupported layer extension %q (want .toml or .json)", ext(path))
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", path)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadDocument loads a layer from path. A missing file is FILE_NOT_FOUND so
// callers can start fresh instead.
func ReadDocument(path string) (*Layer, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "layer %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read %s", path)
	}

	var l Layer
	switch ext(path) {
	case ".toml":
		err = toml.Unmarshal(data, &l)
	case ".json":
		err = json.Unmarshal(data, &l)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported layer extension %q (want .toml or .json)", ext(path))
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse %s", path)
	}
	if l.Name == "" {
		l.Name = DefaultName
	}
	if l.Paths == nil {
		l.Paths = make(map[string][]Path)
	}
	return &l, nil
}

func ext(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
