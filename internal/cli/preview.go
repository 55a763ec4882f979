package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/beyondbezier/scribbler/pkg/errors"
	"github.com/beyondbezier/scribbler/pkg/pipeline"
)

// newPreviewCmd creates the preview command: render one glyph's scribbles
// to an SVG file.
func newPreviewCmd() *cobra.Command {
	var (
		output    string
		heartline bool
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "preview <document> <glyph>",
		Short: "Render one glyph's scribbles to SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			artifactCache, err := newCache(noCache)
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(artifactCache, logger)
			defer runner.Close()

			result, err := runner.Execute(ctx, pipeline.Options{
				DocumentPath: args[0],
				Glyphs:       []string{args[1]},
				Formats:      []string{pipeline.FormatSVG},
				Heartline:    heartline,
				Logger:       logger,
			})
			if err != nil {
				return err
			}

			gr := result.Glyphs[0]
			for _, gerr := range gr.GroupErrors {
				printWarning("%s", errors.UserMessage(gerr))
			}
			if len(gr.Scene.Groups) == 0 && len(gr.GroupErrors) > 0 {
				return gr.GroupErrors[0]
			}

			if output == "" {
				output = args[1] + ".svg"
			}
			if err := os.WriteFile(output, gr.Artifacts[pipeline.FormatSVG], 0644); err != nil {
				return err
			}

			printSuccess("Rendered %s", args[1])
			printFile(output)
			printStats(len(gr.Scene.Groups), result.Stats.SegmentCount, result.CacheInfo.Hits > 0)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <glyph>.svg)")
	cmd.Flags().BoolVar(&heartline, "heartline", false, "include heartline overlay")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")

	return cmd
}
