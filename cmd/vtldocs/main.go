package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sdmx-twg/vtldocs/cmd/vtldocs/commands"
	derrors "github.com/sdmx-twg/vtldocs/internal/errors"
	"github.com/sdmx-twg/vtldocs/internal/logfields"
	"github.com/sdmx-twg/vtldocs/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("vtldocs"),
		kong.Description("Build helper for the VTL documentation site"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.BindTo(ctx, (*context.Context)(nil)),
	)

	global := commands.NewGlobal(cli.MetricsFile)
	start := time.Now()
	err := parser.Run(global, cli)
	if ferr := global.Finish(parser.Command(), time.Since(start)); ferr != nil {
		slog.Warn("Failed to write metrics", logfields.Path(cli.MetricsFile), logfields.Error(ferr))
	}
	stop()

	if err != nil {
		os.Exit(derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).Report(err))
	}
}
