package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/layer"
	"github.com/beyondbezier/scribbler/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	glyphs    string // comma-separated glyph selection, empty = all
	layerName string // output layer name
	layerPath string // output layer document path
	output    string // directory for SVG previews, empty = no previews
	heartline bool   // include heartline overlay in previews
	refresh   bool   // bypass the artifact cache
	noCache   bool   // disable the artifact cache entirely
}

// newGenerateCmd creates the generate command: run the engine for the
// selected glyphs and write heartlines into the output layer document.
func newGenerateCmd() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate <document>",
		Short: "Generate scribbles and export heartlines into the output layer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.glyphs, "glyphs", "g", "", "glyphs to process (comma-separated, default all)")
	cmd.Flags().StringVar(&opts.layerName, "layer", layer.DefaultName, "output layer name")
	cmd.Flags().StringVar(&opts.layerPath, "layer-path", "", "output layer document (default next to the source document)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "directory for SVG previews (default none)")
	cmd.Flags().BoolVar(&opts.heartline, "heartline", false, "include heartline overlay in previews")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when artifacts are cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}

func runGenerate(cmd *cobra.Command, docPath string, opts *generateOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	artifactCache, err := newCache(opts.noCache)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(artifactCache, logger)
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Generating scribbles...")
	spinner.Start()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, pipeline.Options{
		DocumentPath: docPath,
		Glyphs:       splitGlyphs(opts.glyphs),
		Formats:      []string{pipeline.FormatSVG},
		Heartline:    opts.heartline,
		ExportLayer:  true,
		LayerName:    opts.layerName,
		LayerPath:    opts.layerPath,
		Refresh:      opts.refresh,
		Logger:       logger,
	})
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Generated %d glyphs", result.Stats.GlyphCount))

	failed := 0
	for _, gr := range result.Glyphs {
		for _, gerr := range gr.GroupErrors {
			failed++
			printWarning("%s", errors.UserMessage(gerr))
		}
	}

	if opts.output != "" {
		if err := writePreviews(opts.output, result); err != nil {
			return err
		}
	}

	printSuccess("Exported heartlines to layer %q", result.Layer.Name)
	printFile(layerPathOf(opts, docPath))
	printStats(result.Stats.GroupCount, result.Stats.SegmentCount, result.CacheInfo.Misses == 0)

	// Exit nonzero only when nothing succeeded at all.
	if failed > 0 && failed == result.Stats.GroupCount {
		return errors.New(errors.ErrCodeInternal, "all %d groups failed", failed)
	}
	return nil
}

func writePreviews(dir string, result *pipeline.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, gr := range result.Glyphs {
		data, ok := gr.Artifacts[pipeline.FormatSVG]
		if !ok {
			continue
		}
		path := filepath.Join(dir, gr.Glyph+".svg")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return err
		}
		printFile(path)
	}
	return nil
}

func layerPathOf(opts *generateOpts, docPath string) string {
	if opts.layerPath != "" {
		return opts.layerPath
	}
	return pipeline.DefaultLayerPath(docPath)
}

// splitGlyphs parses the --glyphs flag into a selection slice.
func splitGlyphs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
