// Package pkg provides the core libraries for Scribbler.
//
// # Overview
//
// Scribbler draws "scribble hatching": zig-zag strokes spanning two paired
// open contours of a letterform, plus the heartline running through the
// middle of each stroke. The pkg directory is organized into three areas:
//
//  1. Engine - deterministic geometry pipeline ([geom], [contour], [noise], [scribble])
//  2. Host - documents, layers, rendering ([document], [layer], [render])
//  3. Orchestration - execution and supporting infrastructure ([pipeline],
//     [cache], [errors], [observability], [buildinfo])
//
// # Architecture
//
// The typical data flow:
//
//	Glyph document (TOML/JSON)
//	         ↓
//	    [document] package (compile contours, instantiate groups)
//	         ↓
//	    [scribble] package (sample → pair → build segments → heartline)
//	         ↓
//	    [render] / [layer] packages (SVG artifacts, heartline export)
//
// # Quick Start
//
// Run the whole flow through the pipeline:
//
//	import (
//	    "context"
//	    "github.com/beyondbezier/scribbler/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil, nil)
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    DocumentPath: "glyphs.toml",
//	    Formats:      []string{pipeline.FormatSVG},
//	    ExportLayer:  true,
//	})
//
// Or drive the engine directly:
//
//	group := scribble.NewGroup(scribble.ContourPair{A: a, B: b}, scribble.DefaultSettings())
//	res, err := group.Result()
//	// res.Segments, res.Heartline
//
// Everything in the engine is pure and deterministic: the same contours,
// settings, and group identity always produce bit-identical segments.
package pkg
