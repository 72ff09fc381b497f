// Package cli implements the faceplate command-line interface.
//
// The CLI wraps the spec → layout → sheet → DXF pipeline and its export
// side paths: validation, SVG/raster export, SVG template import, the
// reference graph and a small preview server. Commands support
// --verbose (-v) for debug-level logging; loggers travel through
// context.Context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"faceplate/pkg/buildinfo"
	"faceplate/pkg/cache"
	"faceplate/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "faceplate"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands
// registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Faceplate turns panel specs into dimensioned DXF drawings",
		Long:         `Faceplate reads declarative TOML panel specs and produces manufacturing-ready DXF drawings: openings, dimension call-outs, symmetry axes and sheet composition, plus SVG and raster exports for previews and laser workflows.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Make the logger reachable through the command context, for code
	// paths that only see a context.
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) *pipeline.Runner {
	return pipeline.NewRunner(newCache(noCache), c.Logger)
}

// newCache picks the cache backend: redis when FACEPLATE_REDIS_ADDR is
// set, the file cache otherwise, and the null cache when disabled or
// when no cache directory is available.
func newCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	if r := cache.RedisFromEnv(); r != nil {
		return r
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/faceplate/).
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

// outputPath derives the output file from the -o flag or the input
// path with a swapped extension.
func outputPath(output, input, ext string) string {
	if output != "" {
		return output
	}
	base := input[:len(input)-len(filepath.Ext(input))]
	return base + "." + ext
}
