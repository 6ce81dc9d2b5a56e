package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/relgraph"
)

// Run executes the export command.
func (c *ExportCmd) Run(deps *Dependencies) error {
	var w io.Writer = deps.Stdout
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("failed to create %q: %w", c.Output, err)
		}
		defer f.Close()
		w = f
	}

	if err := deps.Exporter.ExportGraph(deps.Ctx, w); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relgraph.ErrorMessage(err))
		return err
	}

	if c.Output != "-" {
		fmt.Fprintf(deps.Stdout, "Exported graph to %s\n", c.Output)
	}
	return nil
}
