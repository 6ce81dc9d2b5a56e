package sqlite

import (
	"context"
	"encoding/json"

	"github.com/fwojciec/relgraph"
)

// Compile-time interface verification.
var _ relgraph.ProgressService = (*ProgressService)(nil)

// ProgressService persists harvest checkpoints as JSON in the settings
// table, one record per harvest kind.
type ProgressService struct {
	settings relgraph.SettingService
}

// NewProgressService creates a new ProgressService on top of a setting
// store.
func NewProgressService(settings relgraph.SettingService) *ProgressService {
	return &ProgressService{settings: settings}
}

// progressKey returns the settings key for a harvest kind.
func progressKey(kind relgraph.HarvestKind) string {
	return "progress:" + string(kind)
}

// FindProgress retrieves the checkpoint for a harvest kind.
// A malformed persisted record is treated as absent so the caller falls
// back to a fresh run rather than failing.
func (s *ProgressService) FindProgress(ctx context.Context, kind relgraph.HarvestKind) (*relgraph.Progress, error) {
	value, err := s.settings.Get(ctx, progressKey(kind))
	if err != nil {
		return nil, err
	}

	var progress relgraph.Progress
	if err := json.Unmarshal([]byte(value), &progress); err != nil {
		return nil, relgraph.Errorf(relgraph.ENOTFOUND, "progress record for %q is corrupt", kind)
	}
	return &progress, nil
}

// SaveProgress durably stores the checkpoint.
func (s *ProgressService) SaveProgress(ctx context.Context, progress *relgraph.Progress) error {
	if !progress.Kind.Valid() {
		return relgraph.Errorf(relgraph.EINVALID, "unknown harvest kind %q", progress.Kind)
	}

	value, err := json.Marshal(progress)
	if err != nil {
		return err
	}
	return s.settings.Set(ctx, progressKey(progress.Kind), string(value))
}

// DeleteProgress discards the checkpoint for a harvest kind.
func (s *ProgressService) DeleteProgress(ctx context.Context, kind relgraph.HarvestKind) error {
	return s.settings.Remove(ctx, progressKey(kind))
}
