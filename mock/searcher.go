package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.Searcher = (*Searcher)(nil)

type Searcher struct {
	SearchFn func(ctx context.Context, rawQuery string) ([]*relgraph.SearchResult, error)
}

func (m *Searcher) Search(ctx context.Context, rawQuery string) ([]*relgraph.SearchResult, error) {
	return m.SearchFn(ctx, rawQuery)
}
