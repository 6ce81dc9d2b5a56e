// Package rank scores stored graph nodes against parsed queries and
// produces ranked, explainable results.
package rank

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/queryparse"
	"golang.org/x/sync/errgroup"
)

// Compile-time interface verification.
var _ relgraph.Searcher = (*Engine)(nil)

// Default engine limits.
const (
	defaultLimit       = 50
	defaultConcurrency = 8
	recentWindow       = 30 * 24 * time.Hour
)

// Engine implements relgraph.Searcher over the local graph store.
// The zero Weights value falls back to DefaultRankWeights.
type Engine struct {
	Nodes      relgraph.NodeService
	Activities relgraph.ActivityService

	Weights     relgraph.RankWeights
	Limit       int
	Concurrency int

	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

// NewEngine creates an Engine with default weights and limits.
func NewEngine(nodes relgraph.NodeService, activities relgraph.ActivityService) *Engine {
	return &Engine{
		Nodes:      nodes,
		Activities: activities,
		Weights:    relgraph.DefaultRankWeights(),
	}
}

// Search parses the raw query, scans candidates, scores and sorts them,
// and returns at most Limit results. A query matching nothing yields an
// empty result set, not an error.
func (e *Engine) Search(ctx context.Context, rawQuery string) ([]*relgraph.SearchResult, error) {
	parsed := queryparse.Parse(rawQuery)
	return e.SearchParsed(ctx, parsed)
}

// SearchParsed ranks candidates for an already-parsed query.
func (e *Engine) SearchParsed(ctx context.Context, parsed relgraph.ParsedQuery) ([]*relgraph.SearchResult, error) {
	weights := e.weights()

	// A degree filter is the cheapest restriction: scan only the degree
	// index before evaluating anything else.
	filter := relgraph.NodeFilter{}
	if len(parsed.Filters.Degrees) > 0 {
		filter.Degrees = parsed.Filters.Degrees
	}

	nodes, err := e.Nodes.FindNodes(ctx, filter)
	if err != nil {
		return nil, err
	}

	var candidates []*relgraph.Node
	for _, node := range nodes {
		if matches(node, parsed) {
			candidates = append(candidates, node)
		}
	}
	if len(candidates) == 0 {
		return []*relgraph.SearchResult{}, nil
	}

	results := make([]*relgraph.SearchResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	g.SetLimit(concurrency)

	for i, node := range candidates {
		i, node := i, node
		g.Go(func() error {
			result, err := e.score(gctx, node, parsed, weights)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Descending total score; ties broken by ascending degree.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Node.Degree < results[j].Node.Degree
	})

	limit := e.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (e *Engine) weights() relgraph.RankWeights {
	if e.Weights == (relgraph.RankWeights{}) {
		return relgraph.DefaultRankWeights()
	}
	return e.Weights
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// matches applies the predicate filter: free text must substring-match at
// least one text field, and every present filter must independently match
// its derived field. Absent filters are vacuously satisfied.
func matches(node *relgraph.Node, parsed relgraph.ParsedQuery) bool {
	if free := strings.ToLower(strings.TrimSpace(parsed.FreeText)); free != "" {
		if !matchesFreeText(node, free) {
			return false
		}
	}

	f := parsed.Filters
	if f.Company != nil && !containsFold(node.Company, *f.Company) {
		return false
	}
	if f.Location != nil && !containsFold(node.Location, *f.Location) {
		return false
	}
	if f.Role != nil && !containsFold(node.Role, *f.Role) && !containsFold(node.Headline, *f.Role) {
		return false
	}
	if f.Years != nil {
		if f.Years.Min != nil && node.YearsExperience < *f.Years.Min {
			return false
		}
		if f.Years.Max != nil && node.YearsExperience > *f.Years.Max {
			return false
		}
	}
	if len(f.Degrees) > 0 {
		found := false
		for _, d := range f.Degrees {
			if node.Degree == d {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matchesFreeText(node *relgraph.Node, free string) bool {
	for _, field := range []string{node.Name, node.Headline, node.Company, node.Role} {
		if containsFold(field, free) {
			return true
		}
	}
	for _, skill := range node.Skills {
		if containsFold(skill, free) {
			return true
		}
	}
	// Fall back to per-term matching so multi-word queries survive word
	// order differences.
	for _, term := range strings.Fields(free) {
		if matchesTerm(node, term) {
			return true
		}
	}
	return false
}

func matchesTerm(node *relgraph.Node, term string) bool {
	for _, field := range []string{node.Name, node.Headline, node.Company, node.Role} {
		if containsFold(field, term) {
			return true
		}
	}
	for _, skill := range node.Skills {
		if containsFold(skill, term) {
			return true
		}
	}
	return false
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
