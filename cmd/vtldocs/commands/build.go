package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sdmx-twg/vtldocs/internal/config"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
	"github.com/sdmx-twg/vtldocs/internal/selector"
	"github.com/sdmx-twg/vtldocs/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Settings string `name:"settings" help:"Also write the site settings to this file (format from the extension)"`
}

func (b *BuildCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	version, err := ResolveVersion(ctx, cfg)
	if err != nil {
		return err
	}
	slog.Info("Preparing documentation build", logfields.Version(version), logfields.Path(cfg.DocsDir))

	if cfg.MultiversionBuild {
		slog.Info("Multi-version build; example generation skipped", slog.String("env", config.EnvMultiversionBuild))
	} else {
		report, err := RunGenerator(ctx, cfg, version, global.Recorder)
		if err != nil {
			return err
		}
		printReport(global, report)
	}

	versions, err := SelectVersions(cfg, global.Recorder)
	if err != nil {
		return err
	}
	out := cfg.Path(cfg.Selector.Output)
	changed, err := selector.Write(out, versions)
	if err != nil {
		return err
	}
	slog.Debug("Version selector", logfields.Path(out), logfields.Count(len(versions)), slog.Bool("changed", changed))
	_, _ = fmt.Fprintf(global.Out, "Version selector: %d versions -> %s\n", len(versions), out)

	if b.Settings != "" {
		if err := site.Build(cfg, version).WriteFile(b.Settings); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(global.Out, "Settings written to %s\n", b.Settings)
	}
	return nil
}
