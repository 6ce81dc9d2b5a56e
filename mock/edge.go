package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.EdgeService = (*EdgeService)(nil)

// EdgeService is a mock implementation of relgraph.EdgeService.
type EdgeService struct {
	UpsertEdgeFn      func(ctx context.Context, edge *relgraph.Edge) error
	BulkUpsertEdgesFn func(ctx context.Context, edges []*relgraph.Edge) error
	FindEdgesFn       func(ctx context.Context, filter relgraph.EdgeFilter) ([]*relgraph.Edge, error)
	DeleteAllEdgesFn  func(ctx context.Context) error
}

func (s *EdgeService) UpsertEdge(ctx context.Context, edge *relgraph.Edge) error {
	return s.UpsertEdgeFn(ctx, edge)
}

func (s *EdgeService) BulkUpsertEdges(ctx context.Context, edges []*relgraph.Edge) error {
	return s.BulkUpsertEdgesFn(ctx, edges)
}

func (s *EdgeService) FindEdges(ctx context.Context, filter relgraph.EdgeFilter) ([]*relgraph.Edge, error) {
	return s.FindEdgesFn(ctx, filter)
}

func (s *EdgeService) DeleteAllEdges(ctx context.Context) error {
	return s.DeleteAllEdgesFn(ctx)
}
