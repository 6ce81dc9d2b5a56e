package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/relgraph"
)

// Compile-time interface verification.
var _ relgraph.NodeService = (*NodeService)(nil)

// NodeService implements relgraph.NodeService using SQLite.
type NodeService struct {
	db *DB
}

// NewNodeService creates a new NodeService.
func NewNodeService(db *DB) *NodeService {
	return &NodeService{db: db}
}

const nodeColumns = "id, name, headline, company, role, location, profile_url, skills, years_experience, degree, match_score, activity_score, status, scraped_at"

// FindNodeByID retrieves a node by ID.
func (s *NodeService) FindNodeByID(ctx context.Context, id string) (*relgraph.Node, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+nodeColumns+`
		FROM nodes
		WHERE id = ?
	`, id)

	node, err := scanNode(row.Scan)
	if err == sql.ErrNoRows {
		return nil, relgraph.Errorf(relgraph.ENOTFOUND, "node not found")
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

// FindNodes retrieves nodes matching the filter. Degree restrictions use
// the degree index; score restrictions use the match_score index.
func (s *NodeService) FindNodes(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + nodeColumns + " FROM nodes WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Degree != nil {
		query.WriteString(" AND degree = ?")
		args = append(args, *filter.Degree)
	}
	if len(filter.Degrees) > 0 {
		query.WriteString(" AND degree IN (?" + strings.Repeat(",?", len(filter.Degrees)-1) + ")")
		for _, d := range filter.Degrees {
			args = append(args, d)
		}
	}
	if filter.MinScore != nil {
		query.WriteString(" AND match_score >= ?")
		args = append(args, *filter.MinScore)
	}

	query.WriteString(" ORDER BY match_score DESC, id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nodes []*relgraph.Node
	for rows.Next() {
		node, err := scanNode(rows.Scan)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}

	return nodes, rows.Err()
}

// UpsertNode creates the node or overwrites an existing node with the same ID.
func (s *NodeService) UpsertNode(ctx context.Context, node *relgraph.Node) error {
	if err := node.Validate(); err != nil {
		return err
	}
	if node.ScrapedAt.IsZero() {
		node.ScrapedAt = time.Now().UTC()
	}

	query, args, err := upsertNodeQuery(node)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

// BulkUpsertNodes upserts all nodes in a single transaction.
func (s *NodeService) BulkUpsertNodes(ctx context.Context, nodes []*relgraph.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	for _, node := range nodes {
		if err := node.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, node := range nodes {
		if node.ScrapedAt.IsZero() {
			node.ScrapedAt = now
		}
		query, args, err := upsertNodeQuery(node)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// CountNodes returns the total number of stored nodes.
func (s *NodeService) CountNodes(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM nodes").Scan(&count)
	return count, err
}

// DeleteAllNodes removes every node.
func (s *NodeService) DeleteAllNodes(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM nodes")
	return err
}

// upsertNodeQuery builds the INSERT ... ON CONFLICT statement for a node.
func upsertNodeQuery(node *relgraph.Node) (string, []any, error) {
	skills, err := json.Marshal(node.Skills)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode skills: %w", err)
	}

	var activityScore any
	if node.ActivityScore != nil {
		activityScore = *node.ActivityScore
	}

	query := `
		INSERT INTO nodes (` + nodeColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			headline = excluded.headline,
			company = excluded.company,
			role = excluded.role,
			location = excluded.location,
			profile_url = excluded.profile_url,
			skills = excluded.skills,
			years_experience = excluded.years_experience,
			degree = excluded.degree,
			match_score = excluded.match_score,
			activity_score = excluded.activity_score,
			status = excluded.status,
			scraped_at = excluded.scraped_at
	`
	args := []any{
		node.ID, node.Name, node.Headline, node.Company, node.Role,
		node.Location, node.ProfileURL, string(skills), node.YearsExperience,
		node.Degree, node.MatchScore, activityScore, node.Status,
		node.ScrapedAt.Format(time.RFC3339),
	}
	return query, args, nil
}

// scanNode reads one node row via the given scan function.
func scanNode(scan func(dest ...any) error) (*relgraph.Node, error) {
	var node relgraph.Node
	var skills, scrapedAt string
	var activityScore sql.NullFloat64

	if err := scan(&node.ID, &node.Name, &node.Headline, &node.Company,
		&node.Role, &node.Location, &node.ProfileURL, &skills,
		&node.YearsExperience, &node.Degree, &node.MatchScore,
		&activityScore, &node.Status, &scrapedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(skills), &node.Skills); err != nil {
		return nil, fmt.Errorf("failed to decode skills: %w", err)
	}
	if activityScore.Valid {
		node.ActivityScore = &activityScore.Float64
	}

	var err error
	node.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at")
	if err != nil {
		return nil, err
	}

	return &node, nil
}
