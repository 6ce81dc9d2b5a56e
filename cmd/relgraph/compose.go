package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/relgraph"
)

// Run executes the compose command.
func (c *ComposeCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	results, err := deps.Searcher.Search(deps.Ctx, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relgraph.ErrorMessage(err))
		return err
	}
	if len(results) == 0 {
		fmt.Fprintln(deps.Stderr, "error: no matches to compose for")
		return relgraph.Errorf(relgraph.ENOTFOUND, "no results for query %q", query)
	}

	top := results[0]
	message, err := deps.Composer.ComposeOutreach(deps.Ctx, top.Node, top.Reasons)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relgraph.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "To: %s (%.0f)\n\n", top.Node.Name, top.Score)
	fmt.Fprintln(deps.Stdout, message)
	return nil
}
