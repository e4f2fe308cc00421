// Package cli implements the grapheq command-line interface.
//
// This package provides commands for canonicalizing property graphs,
// comparing them structurally, exporting them for visual inspection,
// and running the HTTP diff service. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - canon: Print the canonical form of a graph
//   - diff: Compare two graphs structurally
//   - render: Export a graph as DOT or SVG
//   - serve: Run the HTTP diff service
//   - cache: Manage the canonical-form cache
//
// Graph files are recognized by extension: .gdl files hold graph
// descriptions (see pkg/gdl), .json files hold serialized graphs (see
// pkg/graphjson).
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grapheq/grapheq/pkg/buildinfo"
	"github.com/grapheq/grapheq/pkg/cache"
	"github.com/grapheq/grapheq/pkg/gdl"
	"github.com/grapheq/grapheq/pkg/graph"
	"github.com/grapheq/grapheq/pkg/graphjson"
)

// appName is the application name used for directories and display.
const appName = "grapheq"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "grapheq",
		Short:        "Grapheq compares property graphs structurally",
		Long:         `Grapheq canonicalizes property graphs into a deterministic text form and compares them by content, independent of node identifiers and insertion order.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", c.configPath, "config file (default ~/.config/grapheq/config.toml)")

	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		c.Logger.Debug("starting", "build", buildinfo.String())
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.canonCommand())
	root.AddCommand(c.diffCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache builds the cache selected by the configuration.
func (c *CLI) newCache(cfg Config) (cache.Cache, error) {
	switch cfg.CacheBackend {
	case CacheBackendNone:
		return cache.NewNullCache(), nil
	case CacheBackendRedis:
		return cache.NewRedisCache(cache.RedisOptions{URL: cfg.RedisURL})
	case CacheBackendFile:
		dir := cfg.CacheDir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				printWarning("caching disabled: %v", err)
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/grapheq/).
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

// =============================================================================
// Graph Loading
// =============================================================================

// loadGraph reads a graph file, dispatching on extension. An explicit
// format ("gdl" or "json") overrides extension detection.
func loadGraph(path, format string) (*graph.Memory, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".gdl":
			format = "gdl"
		case ".json":
			format = "json"
		default:
			return nil, fmt.Errorf("cannot infer format of %s: use a .gdl or .json file or pass --format", path)
		}
	}

	switch format {
	case "gdl":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		g, err := gdl.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return g, nil
	case "json":
		return graphjson.ReadFile(path)
	default:
		return nil, fmt.Errorf("unknown format %q (expected gdl or json)", format)
	}
}
