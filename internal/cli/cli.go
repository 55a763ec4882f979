// Package cli implements the scribbler command-line interface.
//
// This package provides commands for inspecting glyph documents, generating
// scribble hatching, rendering SVG previews, and serving previews over HTTP.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - groups: List the scribble group tables of a glyph document
//   - generate: Run the engine and export heartlines into the output layer
//   - preview: Render one glyph's scribbles to an SVG file
//   - serve: HTTP preview server that recomputes on every request
//   - cache: Manage the rendered-artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/beyondbezier/scribbler/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"os"
	"path/filepath"

	"github.com/beyondbezier/scribbler/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "scribbler"

// newCache selects the artifact cache backend for CLI commands: the
// XDG file cache by default, disabled with --no-cache.
func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/scribbler/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
