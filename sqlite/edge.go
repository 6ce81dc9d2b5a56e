package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/relgraph"
)

// Compile-time interface verification.
var _ relgraph.EdgeService = (*EdgeService)(nil)

// EdgeService implements relgraph.EdgeService using SQLite.
// The (from_id, to_id) primary key makes duplicate edges structurally
// impossible.
type EdgeService struct {
	db *DB
}

// NewEdgeService creates a new EdgeService.
func NewEdgeService(db *DB) *EdgeService {
	return &EdgeService{db: db}
}

const upsertEdgeQuery = `
	INSERT INTO edges (from_id, to_id, weight, kind, created_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(from_id, to_id) DO UPDATE SET
		weight = excluded.weight,
		kind = excluded.kind
`

// UpsertEdge creates or overwrites the edge keyed by (From, To).
func (s *EdgeService) UpsertEdge(ctx context.Context, edge *relgraph.Edge) error {
	if err := edge.Validate(); err != nil {
		return err
	}
	if edge.CreatedAt.IsZero() {
		edge.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, upsertEdgeQuery,
		edge.From, edge.To, edge.Weight, edge.Kind, edge.CreatedAt.Format(time.RFC3339))
	return err
}

// BulkUpsertEdges upserts all edges in a single transaction.
func (s *EdgeService) BulkUpsertEdges(ctx context.Context, edges []*relgraph.Edge) error {
	if len(edges) == 0 {
		return nil
	}
	for _, edge := range edges {
		if err := edge.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, edge := range edges {
		if edge.CreatedAt.IsZero() {
			edge.CreatedAt = now
		}
		if _, err := tx.ExecContext(ctx, upsertEdgeQuery,
			edge.From, edge.To, edge.Weight, edge.Kind, edge.CreatedAt.Format(time.RFC3339)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindEdges retrieves edges matching the filter. From and To restrictions
// use the adjacency indexes.
func (s *EdgeService) FindEdges(ctx context.Context, filter relgraph.EdgeFilter) ([]*relgraph.Edge, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT from_id, to_id, weight, kind, created_at FROM edges WHERE 1=1")

	if filter.From != nil {
		query.WriteString(" AND from_id = ?")
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		query.WriteString(" AND to_id = ?")
		args = append(args, *filter.To)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, *filter.Kind)
	}

	query.WriteString(" ORDER BY from_id ASC, to_id ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []*relgraph.Edge
	for rows.Next() {
		var edge relgraph.Edge
		var createdAt string

		if err := rows.Scan(&edge.From, &edge.To, &edge.Weight, &edge.Kind, &createdAt); err != nil {
			return nil, err
		}

		edge.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		edges = append(edges, &edge)
	}

	return edges, rows.Err()
}

// DeleteAllEdges removes every edge.
func (s *EdgeService) DeleteAllEdges(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM edges")
	return err
}
