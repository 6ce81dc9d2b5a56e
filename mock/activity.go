package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.ActivityService = (*ActivityService)(nil)

// ActivityService is a mock implementation of relgraph.ActivityService.
type ActivityService struct {
	CreateActivityFn       func(ctx context.Context, activity *relgraph.Activity) error
	BulkCreateActivitiesFn func(ctx context.Context, activities []*relgraph.Activity) error
	FindActivitiesFn       func(ctx context.Context, filter relgraph.ActivityFilter) ([]*relgraph.Activity, error)
	CountActivitiesFn      func(ctx context.Context, filter relgraph.ActivityFilter) (int, error)
	DeleteAllActivitiesFn  func(ctx context.Context) error
}

func (s *ActivityService) CreateActivity(ctx context.Context, activity *relgraph.Activity) error {
	return s.CreateActivityFn(ctx, activity)
}

func (s *ActivityService) BulkCreateActivities(ctx context.Context, activities []*relgraph.Activity) error {
	return s.BulkCreateActivitiesFn(ctx, activities)
}

func (s *ActivityService) FindActivities(ctx context.Context, filter relgraph.ActivityFilter) ([]*relgraph.Activity, error) {
	return s.FindActivitiesFn(ctx, filter)
}

func (s *ActivityService) CountActivities(ctx context.Context, filter relgraph.ActivityFilter) (int, error) {
	return s.CountActivitiesFn(ctx, filter)
}

func (s *ActivityService) DeleteAllActivities(ctx context.Context) error {
	return s.DeleteAllActivitiesFn(ctx)
}
