package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/beyondbezier/scribbler/pkg/buildinfo"
)

// Execute runs the scribbler CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (groups,
// generate, preview, serve, cache), configures logging based on the
// --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext. The command tree stops on SIGINT and SIGTERM via
// context cancellation.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var verbose bool

	root := &cobra.Command{
		Use:          "scribbler",
		Short:        "Scribbler draws scribble hatching between paired glyph contours",
		Long:         `Scribbler samples pairs of open letterform contours, connects them with zig-zag scribble strokes, and exports the resulting heartlines into a drawing layer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newGroupsCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
