package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/relgraph"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	query := strings.Join(c.Query, " ")

	results, err := deps.Searcher.Search(deps.Ctx, query)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", relgraph.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No matches.")
		return nil
	}

	for i, result := range results {
		printResult(deps, i+1, result)
	}
	return nil
}

// printResult renders one ranked result with its explanation.
func printResult(deps *Dependencies, rank int, result *relgraph.SearchResult) {
	node := result.Node
	fmt.Fprintf(deps.Stdout, "%2d. %s (%.0f)\n", rank, node.Name, result.Score)
	if node.Headline != "" {
		fmt.Fprintf(deps.Stdout, "    %s\n", node.Headline)
	}
	var details []string
	if node.Company != "" {
		details = append(details, node.Company)
	}
	if node.Location != "" {
		details = append(details, node.Location)
	}
	details = append(details, fmt.Sprintf("degree %d", node.Degree))
	fmt.Fprintf(deps.Stdout, "    %s\n", strings.Join(details, " | "))
	for _, reason := range result.Reasons {
		fmt.Fprintf(deps.Stdout, "    - %s\n", reason)
	}
}
