package commands

import (
	"context"
	"time"

	"github.com/sdmx-twg/vtldocs/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Delay time.Duration `help:"Quiet period after the last change before regenerating" default:"300ms"`
}

func (w *WatchCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	version, err := ResolveVersion(ctx, cfg)
	if err != nil {
		return err
	}

	job := func(ctx context.Context) error {
		// Templates are reloaded so edits to them apply on the next change.
		report, err := RunGenerator(ctx, cfg, version, global.Recorder)
		if err != nil {
			return err
		}
		printReport(global, report)
		return nil
	}
	return watch.New(cfg.Path(cfg.Examples.OperatorsDir), job,
		watch.WithDelay(w.Delay),
		watch.WithIgnoredNames(cfg.Examples.OutputFile),
	).Run(ctx)
}
