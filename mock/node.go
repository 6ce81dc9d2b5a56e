// Package mock provides function-field mock implementations of relgraph
// interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.NodeService = (*NodeService)(nil)

// NodeService is a mock implementation of relgraph.NodeService.
type NodeService struct {
	FindNodeByIDFn    func(ctx context.Context, id string) (*relgraph.Node, error)
	FindNodesFn       func(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error)
	UpsertNodeFn      func(ctx context.Context, node *relgraph.Node) error
	BulkUpsertNodesFn func(ctx context.Context, nodes []*relgraph.Node) error
	CountNodesFn      func(ctx context.Context) (int, error)
	DeleteAllNodesFn  func(ctx context.Context) error
}

func (s *NodeService) FindNodeByID(ctx context.Context, id string) (*relgraph.Node, error) {
	return s.FindNodeByIDFn(ctx, id)
}

func (s *NodeService) FindNodes(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error) {
	return s.FindNodesFn(ctx, filter)
}

func (s *NodeService) UpsertNode(ctx context.Context, node *relgraph.Node) error {
	return s.UpsertNodeFn(ctx, node)
}

func (s *NodeService) BulkUpsertNodes(ctx context.Context, nodes []*relgraph.Node) error {
	return s.BulkUpsertNodesFn(ctx, nodes)
}

func (s *NodeService) CountNodes(ctx context.Context) (int, error) {
	return s.CountNodesFn(ctx)
}

func (s *NodeService) DeleteAllNodes(ctx context.Context) error {
	return s.DeleteAllNodesFn(ctx)
}
