// Package pipeline runs the complete load → compute → render → export flow
// for glyph documents.
//
// This package centralizes the logic shared by the CLI commands and the
// preview server, so every entry point behaves the same way. The stages:
//
//  1. Load: read the glyph document and instantiate its scribble groups
//  2. Compute: run the engine per group, collecting per-group errors
//  3. Render: produce artifacts per format (SVG preview, heartline JSON)
//  4. Export: replace each glyph's paths in the output layer
//
// Create a Runner and execute:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{
//	    DocumentPath: "glyphs.toml",
//	    Formats:      []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/layer"
)

// Format constants for output formats.
const (
	// FormatSVG renders the scribble preview.
	FormatSVG = "svg"
	// FormatJSON emits the heartline point lists.
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatJSON: true,
}

// Options contains all configuration for a pipeline run.
type Options struct {
	// DocumentPath is the glyph document to load.
	DocumentPath string

	// Glyphs selects which glyphs to process; empty means all, in sorted
	// order.
	Glyphs []string

	// Formats lists the artifacts to render per glyph.
	Formats []string

	// Heartline adds the heartline overlay to SVG artifacts.
	Heartline bool

	// ExportLayer writes heartlines into the output layer document.
	ExportLayer bool

	// LayerName names the output layer.
	LayerName string

	// LayerPath is where the layer document is written. Defaults to the
	// source document's path with a ".scribbler.toml" suffix.
	LayerPath string

	// Refresh bypasses the artifact cache.
	Refresh bool

	// Logger receives stage logs; defaults to a discard logger.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: svg, json)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.DocumentPath == "" {
		return errors.New(errors.ErrCodeInvalidConfiguration, "document path is required")
	}
	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.LayerName == "" {
		o.LayerName = layer.DefaultName
	}
	if o.LayerPath == "" {
		o.LayerPath = DefaultLayerPath(o.DocumentPath)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// DefaultLayerPath places the layer document next to the source document.
func DefaultLayerPath(docPath string) string {
	base := strings.TrimSuffix(docPath, filepath.Ext(docPath))
	return base + ".scribbler.toml"
}
