package main

import (
	"fmt"

	"github.com/fwojciec/relgraph"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	usage, err := deps.DB.Usage(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relgraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Nodes:      %d\n", usage.Nodes)
	fmt.Fprintf(deps.Stdout, "Edges:      %d\n", usage.Edges)
	fmt.Fprintf(deps.Stdout, "Activities: %d\n", usage.Activities)
	fmt.Fprintf(deps.Stdout, "Companies:  %d\n", usage.Companies)
	fmt.Fprintf(deps.Stdout, "Storage:    %d bytes\n", usage.Bytes)

	for _, kind := range []relgraph.HarvestKind{
		relgraph.HarvestConnections,
		relgraph.HarvestActivities,
		relgraph.HarvestCompanies,
	} {
		progress, err := deps.Progresses.FindProgress(deps.Ctx, kind)
		if err != nil {
			if relgraph.ErrorCode(err) == relgraph.ENOTFOUND {
				continue
			}
			return err
		}
		fmt.Fprintf(deps.Stdout, "\n%s harvest: %s, %d records (last saved %s)\n",
			kind, progress.Status, progress.TotalScraped,
			progress.SavedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
