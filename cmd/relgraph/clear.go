package main

import (
	"fmt"

	"github.com/fwojciec/relgraph"
)

// Run executes the clear command.
func (c *ClearCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintln(deps.Stderr, "This deletes every stored node, edge, activity and company. Re-run with --force to confirm.")
		return relgraph.Errorf(relgraph.EINVALID, "clear requires --force")
	}

	// One transaction so an interrupted clear leaves the store intact.
	if err := deps.DB.ClearAll(deps.Ctx); err != nil {
		return err
	}

	fmt.Fprintln(deps.Stdout, "Cleared all graph data.")
	return nil
}
