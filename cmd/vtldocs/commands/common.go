package commands

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sdmx-twg/vtldocs/internal/config"
	"github.com/sdmx-twg/vtldocs/internal/git"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
	"github.com/sdmx-twg/vtldocs/internal/metrics"
	"github.com/sdmx-twg/vtldocs/internal/versioning"
)

// Global carries state shared by every command.
type Global struct {
	Logger   *slog.Logger
	Recorder metrics.Recorder
	// Out receives the command's user-facing output.
	Out io.Writer

	prom        *metrics.PrometheusRecorder
	metricsFile string
}

// NewGlobal builds the shared state. A Prometheus recorder is only set up
// when metricsFile is given.
func NewGlobal(metricsFile string) *Global {
	g := &Global{
		Logger:      slog.Default(),
		Recorder:    metrics.NoopRecorder{},
		Out:         os.Stdout,
		metricsFile: metricsFile,
	}
	if metricsFile != "" {
		g.prom = metrics.NewPrometheusRecorder(nil)
		g.Recorder = g.prom
	}
	return g
}

// Finish records the command duration and flushes the metrics file.
func (g *Global) Finish(command string, elapsed time.Duration) error {
	g.Recorder.ObserveCommandDuration(command, elapsed)
	if g.prom == nil {
		return nil
	}
	return g.prom.WriteTextfile(g.metricsFile)
}

// CLI definition & global flags.
type CLI struct {
	Config      string           `short:"c" help:"Configuration file path (default: vtldocs.yaml in the docs directory, then in the user config directory)"`
	DocsDir     string           `short:"d" name:"docs-dir" help:"Documentation root" default:"."`
	Verbose     bool             `short:"v" help:"Enable verbose logging"`
	MetricsFile string           `name:"metrics-file" help:"Write Prometheus metrics in text format to this file on exit"`
	Version     kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Prepare everything the site generator needs (example pages, version selector, settings)"`
	Generate GenerateCmd `cmd:"" help:"Generate the examples page of every operator"`
	Resolve  VersionCmd  `cmd:"" name:"version" help:"Print the documentation version derived from the current branch"`
	Settings SettingsCmd `cmd:"" help:"Print the site generator settings"`
	Versions VersionsCmd `cmd:"" help:"List the versions selected for the multi-version build"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate example pages whenever fixtures change"`
	Init     InitCmd     `cmd:"" help:"Write a starter configuration file and the default templates"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// ConfigPath is the configuration file the commands read.
func (c *CLI) ConfigPath() string {
	return config.Locate(c.Config, c.DocsDir)
}

// LoadConfig loads the configuration; --docs-dir overrides docs_dir unless it
// is left at its default.
func (c *CLI) LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.ConfigPath())
	if err != nil {
		return nil, err
	}
	if c.DocsDir != "" && c.DocsDir != "." {
		cfg.DocsDir = c.DocsDir
	}
	return cfg, nil
}

// ResolveVersion reads the docs version from the branch checked out in the
// docs directory, through go-git first and the git binary second.
func ResolveVersion(ctx context.Context, cfg *config.Config) (string, error) {
	resolver, err := versioning.NewResolver(cfg.Version.Pattern, cfg.Version.Default,
		git.WorkdirSource{Path: cfg.DocsDir},
		git.CLIBranchSource{Dir: cfg.DocsDir},
	)
	if err != nil {
		return "", err
	}
	return resolver.Resolve(ctx), nil
}

// SelectVersions lists the versions of the multi-version build. Without a
// readable repository, or when nothing matches, the latest version is used
// alone.
func SelectVersions(cfg *config.Config, rec metrics.Recorder) ([]versioning.Version, error) {
	wl, err := versioning.NewWhitelist(cfg.Multiversion)
	if err != nil {
		return nil, err
	}

	selected := wl.Fallback()
	repo, err := git.Open(cfg.DocsDir)
	if err != nil {
		slog.Debug("No repository for version selection; using latest only", logfields.Error(err))
	} else if refs, err := repo.References(); err != nil {
		slog.Warn("Reading references failed; using latest only", logfields.Error(err))
	} else if found := wl.Select(refs); len(found) > 0 {
		selected = found
	}

	rec.SetVersionsSelected(len(selected))
	return selected, nil
}
