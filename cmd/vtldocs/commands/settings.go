package commands

import (
	"context"
	"fmt"

	"github.com/sdmx-twg/vtldocs/internal/site"
)

// SettingsCmd implements the 'settings' command.
type SettingsCmd struct {
	Format string `short:"f" help:"Output format (${enum})" enum:"yaml,json,toml" default:"yaml"`
	Output string `short:"o" help:"Write to this file instead of stdout; the format follows its extension"`
}

func (s *SettingsCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	version, err := ResolveVersion(ctx, cfg)
	if err != nil {
		return err
	}

	settings := site.Build(cfg, version)
	if s.Output != "" {
		if err := settings.WriteFile(s.Output); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(global.Out, "Settings written to %s\n", s.Output)
		return nil
	}
	return settings.Encode(global.Out, site.Format(s.Format))
}
