package commands

import (
	"fmt"
	"path/filepath"

	"github.com/sdmx-twg/vtldocs/internal/config"
	"github.com/sdmx-twg/vtldocs/internal/templates"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite the existing configuration file and templates"`
}

func (i *InitCmd) Run(global *Global, root *CLI) error {
	cfgPath := root.Config
	if cfgPath == "" {
		cfgPath = filepath.Join(root.DocsDir, config.DefaultFile)
	}

	_, _ = fmt.Fprintln(global.Out, "Initializing vtldocs project")
	_, _ = fmt.Fprintf(global.Out, "Writing configuration to %s\n", cfgPath)
	if err := config.Init(cfgPath, i.Force); err != nil {
		_, _ = fmt.Fprintln(global.Out, "Initialization failed")
		return err
	}

	tplDir := filepath.Join(root.DocsDir, config.Default().Examples.TemplatesDir)
	written, err := templates.WriteDefaults(tplDir, i.Force)
	if err != nil {
		return err
	}
	for _, path := range written {
		_, _ = fmt.Fprintf(global.Out, "Wrote template %s\n", path)
	}
	_, _ = fmt.Fprintln(global.Out, "initialized successfully")
	return nil
}
