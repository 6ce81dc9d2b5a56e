package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.SettingService = (*SettingService)(nil)

// SettingService is a mock implementation of relgraph.SettingService.
type SettingService struct {
	GetFn    func(ctx context.Context, key string) (string, error)
	SetFn    func(ctx context.Context, key, value string) error
	RemoveFn func(ctx context.Context, key string) error
}

func (s *SettingService) Get(ctx context.Context, key string) (string, error) {
	return s.GetFn(ctx, key)
}

func (s *SettingService) Set(ctx context.Context, key, value string) error {
	return s.SetFn(ctx, key, value)
}

func (s *SettingService) Remove(ctx context.Context, key string) error {
	return s.RemoveFn(ctx, key)
}
