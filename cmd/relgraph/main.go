package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/relgraph"
	reletree "github.com/fwojciec/relgraph/etree"
	"github.com/fwojciec/relgraph/gemini"
	"github.com/fwojciec/relgraph/goquery"
	"github.com/fwojciec/relgraph/harvest"
	"github.com/fwojciec/relgraph/htmltomarkdown"
	"github.com/fwojciec/relgraph/rank"
	"github.com/fwojciec/relgraph/rod"
	relslog "github.com/fwojciec/relgraph/slog"
	"github.com/fwojciec/relgraph/sqlite"
	"github.com/fwojciec/relgraph/trafilatura"
	"github.com/fwojciec/relgraph/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("relgraph"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'relgraph --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set RELGRAPH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	deps.DB = m.DB
	deps.Nodes = sqlite.NewNodeService(m.DB)
	deps.Edges = sqlite.NewEdgeService(m.DB)
	deps.Activities = sqlite.NewActivityService(m.DB)
	deps.Companies = sqlite.NewCompanyService(m.DB)
	deps.Settings = sqlite.NewSettingService(m.DB)
	deps.Progresses = sqlite.NewProgressService(deps.Settings)
	deps.Searcher = relslog.NewLoggingSearcher(
		rank.NewEngine(deps.Nodes, deps.Activities), logger)
	deps.Exporter = reletree.NewExporter(deps.Nodes, deps.Edges)

	if cmd == "harvest" {
		kind := relgraph.HarvestKind(cli.Harvest.Kind)
		if !kind.Valid() {
			return relgraph.Errorf(relgraph.EINVALID, "unknown harvest kind %q", cli.Harvest.Kind)
		}

		registry := goquery.DefaultRegistry()
		if cli.Harvest.Locators != "" {
			profiles, err := yaml.LoadProfilesFile(cli.Harvest.Locators)
			if err != nil {
				return err
			}
			for _, profile := range profiles {
				registry.Register(profile)
			}
		}

		controller, err := newController(cli, kind, registry, deps, logger)
		if err != nil {
			return err
		}
		defer controller.Session.Close()
		deps.Controller = controller
		deps.Control = &harvest.Control{}
	}

	if cmd == "compose" {
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return fmt.Errorf("GEMINI_API_KEY not set")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		tokens, err := gemini.NewTokenCounter(tokenizerModel)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}

		deps.Composer = gemini.NewComposer(client, tokens)
	}

	return kongCtx.Run(deps)
}

// tokenizerModel is used for prompt budget enforcement.
const tokenizerModel = "gemini-2.5-flash"

// newController wires the browser session, extractors and storage into a
// harvest controller for one run.
func newController(cli *CLI, kind relgraph.HarvestKind, registry relgraph.LocatorRegistry, deps *Dependencies, logger *slog.Logger) (*harvest.Controller, error) {
	profile := registry.Get(kind)

	var selectors []string
	for _, locator := range profile.Container {
		selectors = append(selectors, locator.Selector)
	}
	if len(selectors) == 0 {
		return nil, relgraph.Errorf(relgraph.EINVALID, "locator profile for %q has no container selectors", kind)
	}

	var opts []rod.SessionOption
	if cli.Harvest.ShowMore != "" {
		opts = append(opts, rod.WithShowMoreSelector(cli.Harvest.ShowMore))
	}
	session, err := rod.NewSession(cli.Harvest.URL, selectors, opts...)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	return &harvest.Controller{
		Session: rod.NewLoggingSession(session, logger),

		ProfileExtractor: relslog.NewLoggingProfileExtractor(
			&goquery.ProfileExtractor{Profile: registry.Get(relgraph.HarvestConnections)}, logger),
		ActivityExtractor: &goquery.ActivityExtractor{
			Profile:   registry.Get(relgraph.HarvestActivities),
			Content:   trafilatura.NewExtractor(),
			Converter: htmltomarkdown.NewConverter(),
		},
		CompanyExtractor: &goquery.CompanyExtractor{Profile: registry.Get(relgraph.HarvestCompanies)},

		Nodes:      deps.Nodes,
		Edges:      deps.Edges,
		Activities: deps.Activities,
		Companies:  deps.Companies,
		Progresses: deps.Progresses,

		Serializer: harvest.NewSerializer(0),
		Logger:     logger,

		BatchSize:         cli.Harvest.Batch,
		MaxLoadIterations: cli.Harvest.MaxLoads,
	}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("RELGRAPH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "relgraph.db"
	}
	dir := filepath.Join(home, ".relgraph")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "relgraph.db")
}
