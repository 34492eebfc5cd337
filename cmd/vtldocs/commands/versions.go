package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
)

// VersionsCmd implements the 'versions' command.
type VersionsCmd struct {
	JSON bool `name:"json" help:"Print the selection as JSON"`
}

func (v *VersionsCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	versions, err := SelectVersions(cfg, global.Recorder)
	if err != nil {
		return err
	}

	if v.JSON {
		enc := json.NewEncoder(global.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(versions)
	}

	tw := tabwriter.NewWriter(global.Out, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "NAME\tKIND\tOUTPUT\tLABEL")
	for _, ver := range versions {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", ver.Name, ver.Kind, ver.OutputDir, ver.Label)
	}
	return tw.Flush()
}
