package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/relgraph"
)

// Compile-time interface verification.
var _ relgraph.ActivityService = (*ActivityService)(nil)

// ActivityService implements relgraph.ActivityService using SQLite.
// Activities are insert-only; identical events re-scraped on a later run
// collapse onto the same deterministic ID.
type ActivityService struct {
	db *DB
}

// NewActivityService creates a new ActivityService.
func NewActivityService(db *DB) *ActivityService {
	return &ActivityService{db: db}
}

// activityID derives a deterministic ID from the event's identity so that
// re-scraping the same event is idempotent.
func activityID(a *relgraph.Activity) string {
	var sb strings.Builder
	sb.WriteString(a.ActorID)
	sb.WriteByte('|')
	sb.WriteString(a.TargetID)
	sb.WriteByte('|')
	sb.WriteString(a.Type)
	sb.WriteByte('|')
	sb.WriteString(a.PostID)
	sb.WriteByte('|')
	sb.WriteString(a.OccurredAt.UTC().Format(time.RFC3339))
	return fmt.Sprintf("%x", xxhash.Sum64String(sb.String()))
}

const insertActivityQuery = `
	INSERT INTO activities (id, actor_id, target_id, type, content, post_id, occurred_at, scraped_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO NOTHING
`

// CreateActivity stores a new activity event.
func (s *ActivityService) CreateActivity(ctx context.Context, activity *relgraph.Activity) error {
	activity.Normalize()
	if err := activity.Validate(); err != nil {
		return err
	}
	if activity.ScrapedAt.IsZero() {
		activity.ScrapedAt = time.Now().UTC()
	}
	if activity.ID == "" {
		activity.ID = activityID(activity)
	}

	_, err := s.db.ExecContext(ctx, insertActivityQuery,
		activity.ID, activity.ActorID, activity.TargetID, activity.Type,
		activity.Content, activity.PostID,
		activity.OccurredAt.UTC().Format(time.RFC3339),
		activity.ScrapedAt.Format(time.RFC3339))
	return err
}

// BulkCreateActivities stores all activities in a single transaction.
func (s *ActivityService) BulkCreateActivities(ctx context.Context, activities []*relgraph.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	for _, activity := range activities {
		activity.Normalize()
		if err := activity.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, activity := range activities {
		if activity.ScrapedAt.IsZero() {
			activity.ScrapedAt = now
		}
		if activity.ID == "" {
			activity.ID = activityID(activity)
		}
		if _, err := tx.ExecContext(ctx, insertActivityQuery,
			activity.ID, activity.ActorID, activity.TargetID, activity.Type,
			activity.Content, activity.PostID,
			activity.OccurredAt.UTC().Format(time.RFC3339),
			activity.ScrapedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindActivities retrieves activities matching the filter.
func (s *ActivityService) FindActivities(ctx context.Context, filter relgraph.ActivityFilter) ([]*relgraph.Activity, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, actor_id, target_id, type, content, post_id, occurred_at, scraped_at FROM activities WHERE 1=1")
	appendActivityFilter(&query, &args, filter)
	query.WriteString(" ORDER BY occurred_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []*relgraph.Activity
	for rows.Next() {
		var activity relgraph.Activity
		var occurredAt, scrapedAt string

		if err := rows.Scan(&activity.ID, &activity.ActorID, &activity.TargetID,
			&activity.Type, &activity.Content, &activity.PostID,
			&occurredAt, &scrapedAt); err != nil {
			return nil, err
		}

		if activity.OccurredAt, err = parseRFC3339(occurredAt, "occurred_at"); err != nil {
			return nil, err
		}
		if activity.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
			return nil, err
		}

		activities = append(activities, &activity)
	}

	return activities, rows.Err()
}

// CountActivities returns the number of activities matching the filter.
func (s *ActivityService) CountActivities(ctx context.Context, filter relgraph.ActivityFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT COUNT(*) FROM activities WHERE 1=1")
	appendActivityFilter(&query, &args, filter)

	var count int
	err := s.db.QueryRowContext(ctx, query.String(), args...).Scan(&count)
	return count, err
}

// DeleteAllActivities removes every activity.
func (s *ActivityService) DeleteAllActivities(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM activities")
	return err
}

// appendActivityFilter appends WHERE clauses shared by find and count.
func appendActivityFilter(query *strings.Builder, args *[]any, filter relgraph.ActivityFilter) {
	if filter.ActorID != nil {
		query.WriteString(" AND actor_id = ?")
		*args = append(*args, *filter.ActorID)
	}
	if filter.TargetID != nil {
		query.WriteString(" AND target_id = ?")
		*args = append(*args, *filter.TargetID)
	}
	if filter.Type != nil {
		query.WriteString(" AND type = ?")
		*args = append(*args, *filter.Type)
	}
	if filter.Since != nil {
		query.WriteString(" AND occurred_at >= ?")
		*args = append(*args, filter.Since.UTC().Format(time.RFC3339))
	}
}
