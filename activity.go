package relgraph

import (
	"context"
	"time"
)

// Activity types recognized by the harvester.
const (
	ActivityPost     = "post"
	ActivityComment  = "comment"
	ActivityReaction = "reaction"
	ActivityShare    = "share"
)

// Activity represents a timestamped record that one actor engaged with one
// target's content. Activities are immutable once stored; they accumulate
// and are never merged.
type Activity struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actorId"`
	TargetID  string    `json:"targetId"`
	Type      string    `json:"type"`
	Content   string    `json:"content"`
	PostID    string    `json:"postId"`
	OccurredAt time.Time `json:"occurredAt"`
	ScrapedAt  time.Time `json:"scrapedAt"`
}

// Normalize fills derivable fields: a self-authored activity targets its
// own actor.
func (a *Activity) Normalize() {
	if a.TargetID == "" {
		a.TargetID = a.ActorID
	}
}

// Validate returns an error if the activity contains invalid fields.
// Normalize should be called first so self-authored events carry a target.
func (a *Activity) Validate() error {
	if a.ActorID == "" {
		return Errorf(EINVALID, "activity actor ID required")
	}
	if a.TargetID == "" {
		return Errorf(EINVALID, "activity target ID required")
	}
	switch a.Type {
	case ActivityPost, ActivityComment, ActivityReaction, ActivityShare:
	default:
		return Errorf(EINVALID, "unknown activity type %q", a.Type)
	}
	return nil
}

// ActivityService represents a service for managing activity events.
type ActivityService interface {
	// CreateActivity stores a new activity event. Creation is idempotent
	// for events with identical identity (actor, target, type, post,
	// occurred-at): re-scraping the same event does not duplicate it.
	CreateActivity(ctx context.Context, activity *Activity) error

	// BulkCreateActivities stores all activities in a single transaction.
	// A failure leaves no partial mutation visible to subsequent reads.
	BulkCreateActivities(ctx context.Context, activities []*Activity) error

	// FindActivities retrieves activities matching the filter. ActorID,
	// TargetID, Type and OccurredAt are all indexed; the target index is
	// the path for "who engaged with this person" queries.
	FindActivities(ctx context.Context, filter ActivityFilter) ([]*Activity, error)

	// CountActivities returns the number of activities matching the filter.
	CountActivities(ctx context.Context, filter ActivityFilter) (int, error)

	// DeleteAllActivities removes every activity.
	DeleteAllActivities(ctx context.Context) error
}

// ActivityFilter represents a filter for FindActivities.
type ActivityFilter struct {
	ActorID  *string    `json:"actorId"`
	TargetID *string    `json:"targetId"`
	Type     *string    `json:"type"`
	Since    *time.Time `json:"since"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
