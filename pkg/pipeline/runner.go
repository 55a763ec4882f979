package pipeline

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/beyondbezier/scribbler/pkg/cache"
	"github.com/beyondbezier/scribbler/pkg/document"
	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/layer"
	"github.com/beyondbezier/scribbler/pkg/observability"
	"github.com/beyondbezier/scribbler/pkg/render"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching (NullCache); a
// nil logger falls back to the default logger.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// GlyphResult is the computed output for one glyph.
type GlyphResult struct {
	// Glyph is the glyph name.
	Glyph string

	// Scene holds the renderable groups, in table order.
	Scene render.Scene

	// Heartlines holds one path per group that produced segments.
	Heartlines []layer.Path

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// GroupErrors collects per-group failures; failed groups never block
	// the rest of the glyph.
	GroupErrors []error
}

// Stats contains pipeline execution statistics.
type Stats struct {
	GlyphCount   int
	GroupCount   int
	SegmentCount int
	FailedGroups int
	ComputeTime  time.Duration
	RenderTime   time.Duration
	ExportTime   time.Duration
}

// CacheInfo counts artifact cache hits and misses for the run.
type CacheInfo struct {
	Hits   int
	Misses int
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Glyphs holds per-glyph results in processing order.
	Glyphs []GlyphResult

	// Layer is the output layer with every processed glyph's heartlines,
	// written to disk when Options.ExportLayer is set.
	Layer *layer.Layer

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks artifact cache effectiveness.
	CacheInfo CacheInfo
}

// Execute runs the complete load → compute → render → export pipeline.
// Group-level failures are collected in the result; Execute itself fails
// only when the document cannot be loaded or the options are invalid.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	doc, err := document.Load(opts.DocumentPath)
	if err != nil {
		return nil, err
	}

	names, err := selectGlyphs(doc, opts.Glyphs)
	if err != nil {
		return nil, err
	}

	result := &Result{Layer: layer.New(opts.LayerName)}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		glyph := doc.Glyphs[name]

		gr, err := r.computeGlyph(ctx, name, glyph, &result.Stats)
		if err != nil {
			return nil, err
		}

		if err := r.renderGlyph(ctx, &gr, glyph, opts, result); err != nil {
			return nil, err
		}

		exportStart := time.Now()
		observability.Pipeline().OnExportStart(ctx, name)
		err = result.Layer.ReplaceGlyph(name, gr.Heartlines)
		observability.Pipeline().OnExportComplete(ctx, name, len(gr.Heartlines), time.Since(exportStart), err)
		if err != nil {
			return nil, err
		}
		result.Stats.ExportTime += time.Since(exportStart)

		result.Glyphs = append(result.Glyphs, gr)
		result.Stats.GlyphCount++

		logger.Info("processed glyph",
			"glyph", name,
			"groups", len(gr.Scene.Groups),
			"errors", len(gr.GroupErrors))
	}

	if opts.ExportLayer {
		if err := layer.WriteDocument(result.Layer, opts.LayerPath); err != nil {
			return nil, err
		}
		logger.Info("wrote layer document", "path", opts.LayerPath, "layer", opts.LayerName)
	}

	return result, nil
}

// computeGlyph runs the engine for every group of one glyph, collecting
// per-group errors rather than aborting.
func (r *Runner) computeGlyph(ctx context.Context, name string, glyph *document.Glyph, stats *Stats) (GlyphResult, error) {
	gr := GlyphResult{Glyph: name, Artifacts: make(map[string][]byte)}
	gr.Scene.Glyph = name

	start := time.Now()
	groups, err := document.BuildGroups(glyph)
	if err != nil {
		return GlyphResult{}, err
	}
	observability.Pipeline().OnComputeStart(ctx, name, len(groups))

	segments := 0
	var firstErr error
	for i, g := range groups {
		stats.GroupCount++
		res, err := g.Result()
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			stats.FailedGroups++
			gr.GroupErrors = append(gr.GroupErrors,
				errors.Wrap(errors.GetCode(err), err, "glyph %q group %d", name, i))
			continue
		}
		segments += len(res.Segments)
		gr.Scene.Groups = append(gr.Scene.Groups, render.Group{
			Segments:  res.Segments,
			Heartline: res.Heartline,
			Settings:  res.Settings,
		})
		if len(res.Heartline) > 0 {
			gr.Heartlines = append(gr.Heartlines, layer.Path{Points: res.Heartline})
		}
	}
	stats.SegmentCount += segments
	stats.ComputeTime += time.Since(start)
	observability.Pipeline().OnComputeComplete(ctx, name, segments, time.Since(start), firstErr)

	return gr, nil
}

// renderGlyph produces each requested artifact, consulting the cache first.
func (r *Runner) renderGlyph(ctx context.Context, gr *GlyphResult, glyph *document.Glyph, opts Options, result *Result) error {
	hash, err := glyphHash(glyph, opts.Heartline)
	if err != nil {
		return err
	}

	for _, format := range opts.Formats {
		key := cache.ArtifactKey(hash, format)

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				result.CacheInfo.Hits++
				gr.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		result.CacheInfo.Misses++

		start := time.Now()
		observability.Pipeline().OnRenderStart(ctx, gr.Glyph, format)
		data, err := renderArtifact(gr, format, opts.Heartline)
		observability.Pipeline().OnRenderComplete(ctx, gr.Glyph, format, time.Since(start), err)
		if err != nil {
			return err
		}
		result.Stats.RenderTime += time.Since(start)

		gr.Artifacts[format] = data
		if err := r.Cache.Set(ctx, key, data, cache.DefaultArtifactTTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return nil
}

func renderArtifact(gr *GlyphResult, format string, heartline bool) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []render.SVGOption{render.WithSegments()}
		if heartline {
			svgOpts = append(svgOpts, render.WithHeartline())
		}
		return render.RenderSVG(gr.Scene, svgOpts...), nil
	case FormatJSON:
		return json.MarshalIndent(struct {
			Glyph      string       `json:"glyph"`
			Heartlines []layer.Path `json:"heartlines"`
		}{gr.Glyph, gr.Heartlines}, "", "  ")
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q", format)
	}
}

// glyphHash covers everything that determines a glyph's artifacts: its
// contours, its group table (settings and identities), and the
// render-affecting options.
func glyphHash(glyph *document.Glyph, heartline bool) (string, error) {
	data, err := json.Marshal(struct {
		Glyph     *document.Glyph `json:"glyph"`
		Heartline bool            `json:"heartline"`
	}{glyph, heartline})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash glyph")
	}
	return cache.Hash(data), nil
}

func selectGlyphs(doc *document.Document, requested []string) ([]string, error) {
	if len(requested) == 0 {
		names := make([]string, 0, len(doc.Glyphs))
		for name := range doc.Glyphs {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
	for _, name := range requested {
		if _, ok := doc.Glyphs[name]; !ok {
			return nil, errors.New(errors.ErrCodeGlyphNotFound, "glyph %q not in document", name)
		}
	}
	return requested, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
