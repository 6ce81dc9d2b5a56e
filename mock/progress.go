package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.ProgressService = (*ProgressService)(nil)

// ProgressService is a mock implementation of relgraph.ProgressService.
type ProgressService struct {
	FindProgressFn   func(ctx context.Context, kind relgraph.HarvestKind) (*relgraph.Progress, error)
	SaveProgressFn   func(ctx context.Context, progress *relgraph.Progress) error
	DeleteProgressFn func(ctx context.Context, kind relgraph.HarvestKind) error
}

func (s *ProgressService) FindProgress(ctx context.Context, kind relgraph.HarvestKind) (*relgraph.Progress, error) {
	return s.FindProgressFn(ctx, kind)
}

func (s *ProgressService) SaveProgress(ctx context.Context, progress *relgraph.Progress) error {
	return s.SaveProgressFn(ctx, progress)
}

func (s *ProgressService) DeleteProgress(ctx context.Context, kind relgraph.HarvestKind) error {
	return s.DeleteProgressFn(ctx, kind)
}
