package main

import (
	"context"
	"io"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/harvest"
	"github.com/fwojciec/relgraph/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	DB     *sqlite.DB

	Nodes      relgraph.NodeService
	Edges      relgraph.EdgeService
	Activities relgraph.ActivityService
	Companies  relgraph.CompanyService
	Progresses relgraph.ProgressService
	Settings   relgraph.SettingService

	Searcher   relgraph.Searcher
	Exporter   relgraph.GraphExporter
	Composer   relgraph.Composer
	Controller *harvest.Controller
	Control    *harvest.Control
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Harvest HarvestCmd `cmd:"" help:"Harvest graph records from a rendered page"`
	Search  SearchCmd  `cmd:"" help:"Query the stored graph with natural language"`
	Stats   StatsCmd   `cmd:"" help:"Show storage usage and harvest progress"`
	Export  ExportCmd  `cmd:"" help:"Export the graph as GraphML"`
	Compose ComposeCmd `cmd:"" help:"Draft an outreach message for the top search result"`
	Clear   ClearCmd   `cmd:"" help:"Delete all stored graph data"`
}

// HarvestCmd is the "harvest" subcommand.
type HarvestCmd struct {
	Kind     string `arg:"" help:"Harvest kind: connections, activities or companies"`
	URL      string `arg:"" help:"Page URL to harvest from"`
	Resume   bool   `short:"r" help:"Continue from the last checkpoint"`
	Owner    string `help:"Profile ID owning the harvested graph (persisted for later runs)"`
	Batch    int    `default:"50" help:"Records per storage flush"`
	MaxLoads int    `help:"Bound on load-more rounds (0 = unbounded)"`
	Locators string `type:"existingfile" help:"YAML file overriding the built-in locator profiles"`
	ShowMore string `help:"CSS selector for the page's load-more control"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query []string `arg:"" help:"Natural-language query"`
}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct{}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Output string `short:"o" default:"-" help:"Output file (- for stdout)"`
}

// ComposeCmd is the "compose" subcommand.
type ComposeCmd struct {
	Query []string `arg:"" help:"Natural-language query; the top result gets the message"`
}

// ClearCmd is the "clear" subcommand.
type ClearCmd struct {
	Force bool `help:"Confirm deletion"`
}
