package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sdmx-twg/vtldocs/internal/config"
	"github.com/sdmx-twg/vtldocs/internal/examples"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
	"github.com/sdmx-twg/vtldocs/internal/metrics"
	"github.com/sdmx-twg/vtldocs/internal/templates"
)

// GenerateCmd implements the 'generate' command.
type GenerateCmd struct{}

func (g *GenerateCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	version, err := ResolveVersion(ctx, cfg)
	if err != nil {
		return err
	}
	report, err := RunGenerator(ctx, cfg, version, global.Recorder)
	if err != nil {
		return err
	}
	printReport(global, report)
	return nil
}

// NewGenerator loads the templates and builds the example generator.
func NewGenerator(cfg *config.Config, version string, rec metrics.Recorder) (*examples.Generator, error) {
	set, err := templates.LoadDir(cfg.Path(cfg.Examples.TemplatesDir))
	if err != nil {
		return nil, err
	}
	return examples.NewGenerator(cfg, set, version).WithRecorder(rec), nil
}

// RunGenerator renders every example page once.
func RunGenerator(ctx context.Context, cfg *config.Config, version string, rec metrics.Recorder) (*examples.Report, error) {
	slog.Info("Generating example pages", logfields.Version(version), logfields.Path(cfg.Path(cfg.Examples.OperatorsDir)))
	gen, err := NewGenerator(cfg, version, rec)
	if err != nil {
		return nil, err
	}
	return gen.Run(ctx)
}

func printReport(global *Global, report *examples.Report) {
	_, _ = fmt.Fprintf(global.Out, "Example pages: %d written, %d unchanged, %d skipped\n",
		report.Count(metrics.OperatorRendered),
		report.Count(metrics.OperatorUnchanged),
		report.Count(metrics.OperatorSkipped))
}
