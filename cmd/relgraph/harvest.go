package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/harvest"
)

// Run executes the harvest command.
func (c *HarvestCmd) Run(deps *Dependencies) error {
	kind := relgraph.HarvestKind(c.Kind)

	owner, err := resolveOwner(deps, kind, c.Owner)
	if err != nil {
		return err
	}
	deps.Controller.OwnerID = owner

	// The first interrupt requests a graceful stop so the checkpoint stays
	// resumable; a second interrupt kills the process as usual.
	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)
	go func() {
		if _, ok := <-interrupts; ok {
			fmt.Fprintln(deps.Stderr, "stopping after current batch; run again with --resume to continue")
			deps.Control.Stop()
			signal.Stop(interrupts)
		}
	}()

	progress, err := deps.Controller.Harvest(deps.Ctx, kind, harvest.Options{
		Resume:   c.Resume,
		Control:  deps.Control,
		Progress: c.report(deps),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relgraph.ErrorMessage(err))
		return err
	}

	switch progress.Status {
	case relgraph.ProgressPaused:
		fmt.Fprintf(deps.Stdout, "Paused after %d records. Run again with --resume to continue.\n", progress.TotalScraped)
	default:
		fmt.Fprintf(deps.Stdout, "Harvested %d records.\n", progress.TotalScraped)
	}
	return nil
}

// report prints harvest events as they arrive.
func (c *HarvestCmd) report(deps *Dependencies) relgraph.HarvestProgressFunc {
	return func(event relgraph.HarvestEvent) {
		switch event.Type {
		case relgraph.HarvestStarted:
			fmt.Fprintf(deps.Stdout, "Harvesting %s from %s\n", event.Kind, c.URL)
		case relgraph.HarvestBatchSaved:
			fmt.Fprintf(deps.Stdout, "  saved %d records (last %s)\n", event.TotalScraped, event.LastID)
		case relgraph.HarvestItemSkipped:
			fmt.Fprintf(deps.Stderr, "  skipped one item: %s\n", relgraph.ErrorMessage(event.Error))
		case relgraph.HarvestPaused:
			fmt.Fprintf(deps.Stdout, "  paused at %d records\n", event.TotalScraped)
		}
	}
}

// resolveOwner returns the owner profile ID for connection harvests,
// persisting a newly supplied one for later runs.
func resolveOwner(deps *Dependencies, kind relgraph.HarvestKind, flag string) (string, error) {
	if flag != "" {
		if err := deps.Settings.Set(deps.Ctx, "ownerID", flag); err != nil {
			return "", err
		}
		return flag, nil
	}

	owner, err := deps.Settings.Get(deps.Ctx, "ownerID")
	if err != nil {
		if relgraph.ErrorCode(err) == relgraph.ENOTFOUND {
			if kind != relgraph.HarvestConnections {
				return "", nil
			}
			return "", relgraph.Errorf(relgraph.EINVALID, "owner profile ID required; pass --owner on the first connections harvest")
		}
		return "", err
	}
	return owner, nil
}
