package commands

import (
	"context"
	"fmt"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (v *VersionCmd) Run(ctx context.Context, global *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	version, err := ResolveVersion(ctx, cfg)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(global.Out, version)
	return nil
}
