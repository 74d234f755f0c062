// Package cli implements the pubfig command-line interface.
//
// The commands inspect and exercise the figure library:
//   - pages: print page presets and their printable body
//   - layout: compute the physical figure size for a grid on a page
//   - units: typeset axis-label units
//   - demo: render a synthetic multi-panel figure to SVG or PNG
//
// All commands support --verbose (-v) for debug-level logging and --config
// for a TOML file holding [style] and [page] tables. The logger travels in
// the command context and is handed to the figure library.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pubfig/pkg/buildinfo"
	"github.com/matzehuels/pubfig/pkg/observability"
	"github.com/matzehuels/pubfig/pkg/style"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "pubfig"

	// defaultPage is the page preset used when neither flags nor config name one.
	defaultPage = "a4"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          appName,
		Short:        "pubfig lays out publication figures on physical pages",
		Long:         `pubfig sizes multi-panel figures to the printable area of a page, applies a consistent serif style with LaTeX math, and exports SVG or PNG.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.setup()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "TOML file with [style] and [page] tables")

	root.AddCommand(c.pagesCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.unitsCommand())
	root.AddCommand(c.demoCommand())

	return root
}

// setup loads the config file, applies its style process-wide and installs
// the logging render hooks.
func (c *CLI) setup() error {
	cfg := defaultConfig()
	if c.configPath != "" {
		loaded, err := LoadConfig(c.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		c.Logger.Debug("loaded config", "path", c.configPath)
	}
	c.config = cfg

	if err := style.Apply(cfg.Style); err != nil {
		return err
	}
	observability.SetRenderHooks(&logHooks{logger: c.Logger})
	return nil
}

// activeConfig returns the loaded config, or the defaults when commands run
// without the root pre-run (as in tests).
func (c *CLI) activeConfig() *Config {
	if c.config == nil {
		return defaultConfig()
	}
	return c.config
}
