package relgraph

import (
	"context"
	"time"
)

// ProgressStatus describes the state of a long-running harvest.
type ProgressStatus string

// Progress status values. Valid transitions are running to paused,
// complete or error, and paused back to running.
const (
	ProgressRunning  ProgressStatus = "running"
	ProgressPaused   ProgressStatus = "paused"
	ProgressComplete ProgressStatus = "complete"
	ProgressError    ProgressStatus = "error"
)

// Progress is a durable checkpoint describing how much of a long-running
// harvest has completed. One record exists per harvest kind.
type Progress struct {
	Kind         HarvestKind    `json:"kind"`
	RunID        string         `json:"runId"`
	TotalScraped int            `json:"totalScraped"`
	LastID       string         `json:"lastId"`
	StartedAt    time.Time      `json:"startedAt"`
	SavedAt      time.Time      `json:"savedAt"`
	Status       ProgressStatus `json:"status"`
	KnownTotal   *int           `json:"knownTotal"`
}

// Transition moves the progress record to the given status.
// Returns ECONFLICT if the transition is not allowed.
func (p *Progress) Transition(to ProgressStatus) error {
	if p.Status == to {
		return nil
	}
	switch p.Status {
	case ProgressRunning:
		switch to {
		case ProgressPaused, ProgressComplete, ProgressError:
			p.Status = to
			return nil
		}
	case ProgressPaused:
		if to == ProgressRunning {
			p.Status = to
			return nil
		}
	}
	return Errorf(ECONFLICT, "invalid progress transition %s -> %s", p.Status, to)
}

// Resumable reports whether a future run may continue from this record.
func (p *Progress) Resumable() bool {
	return p.Status != ProgressComplete
}

// ProgressService persists harvest checkpoints across process restarts.
type ProgressService interface {
	// FindProgress retrieves the checkpoint for a harvest kind.
	// Returns ENOTFOUND if no usable checkpoint exists, including when the
	// persisted record is malformed.
	FindProgress(ctx context.Context, kind HarvestKind) (*Progress, error)

	// SaveProgress durably stores the checkpoint, replacing any prior
	// record for the same kind.
	SaveProgress(ctx context.Context, progress *Progress) error

	// DeleteProgress discards the checkpoint for a harvest kind.
	DeleteProgress(ctx context.Context, kind HarvestKind) error
}

// SettingService is a small durable key-value store that survives process
// restarts. Progress checkpoints ride on it.
type SettingService interface {
	// Get retrieves a value by key. Returns ENOTFOUND if the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set durably stores a value under the key.
	Set(ctx context.Context, key, value string) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
