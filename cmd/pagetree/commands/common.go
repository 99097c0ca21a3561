// Package commands implements the pagetree subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/pagetree/internal/config"
	"git.home.luguber.info/inful/pagetree/internal/hierarchy"
	"git.home.luguber.info/inful/pagetree/internal/logfields"
	"git.home.luguber.info/inful/pagetree/internal/metrics"
	"git.home.luguber.info/inful/pagetree/internal/plugin"
	"git.home.luguber.info/inful/pagetree/internal/site"
)

// LogLevelEnv overrides the log level unless --verbose is given.
const LogLevelEnv = "PAGETREE_LOG_LEVEL"

// Global carries state shared by every subcommand.
type Global struct {
	Logger *slog.Logger
	// Out receives user-facing output.
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"pagetree.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build BuildCmd `cmd:"" help:"Generate the site once"`
	Tree  TreeCmd  `cmd:"" help:"Print the page hierarchy without writing output"`
	Watch WatchCmd `cmd:"" help:"Rebuild the site whenever content or configuration changes"`
	Init  InitCmd  `cmd:"" help:"Write an example configuration and content tree"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(c.Verbose)}))
	slog.SetDefault(logger)
	return nil
}

func parseLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// pipeline is one configured generator with the hierarchy plugin connected.
type pipeline struct {
	settings  *config.Settings
	generator *site.Generator
	// registry is nil unless metrics were requested.
	registry *prom.Registry
}

func newPipeline(configPath string, withMetrics bool, logger *slog.Logger) (*pipeline, error) {
	settings, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var registry *prom.Registry
	if withMetrics {
		registry = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(registry)
	}

	plugins := plugin.NewRegistry()
	if err := hierarchy.Register(plugins, hierarchy.WithLogger(logger), hierarchy.WithRecorder(recorder)); err != nil {
		return nil, err
	}
	hooks := plugin.NewHooks(logger)
	if err := plugins.ConnectAll(hooks); err != nil {
		return nil, err
	}
	logger.Debug("Plugins connected", logfields.Count(plugins.Count()))

	return &pipeline{
		settings:  settings,
		generator: site.New(settings, hooks, site.WithLogger(logger), site.WithRecorder(recorder)),
		registry:  registry,
	}, nil
}
