package relgraph

import (
	"context"
	"time"
)

// Edge kinds recognized by the harvester.
const (
	EdgeKindConnection = "connection"
	EdgeKindColleague  = "colleague"
	EdgeKindEngagement = "engagement"
)

// Edge represents a directed, weighted relationship between two nodes.
// The (From, To) pair is the primary key; duplicates are structurally
// forbidden by the store.
type Edge struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Weight    float64   `json:"weight"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the edge contains invalid fields.
func (e *Edge) Validate() error {
	if e.From == "" {
		return Errorf(EINVALID, "edge from required")
	}
	if e.To == "" {
		return Errorf(EINVALID, "edge to required")
	}
	if e.Weight <= 0 || e.Weight > 1 {
		return Errorf(EINVALID, "edge weight must be in (0,1], got %g", e.Weight)
	}
	return nil
}

// EdgeService represents a service for managing graph edges.
type EdgeService interface {
	// UpsertEdge creates or overwrites the edge keyed by (From, To).
	UpsertEdge(ctx context.Context, edge *Edge) error

	// BulkUpsertEdges upserts all edges in a single transaction.
	// A failure leaves no partial mutation visible to subsequent reads.
	BulkUpsertEdges(ctx context.Context, edges []*Edge) error

	// FindEdges retrieves edges matching the filter. From and To are
	// independently indexed for adjacency lookups in either direction.
	FindEdges(ctx context.Context, filter EdgeFilter) ([]*Edge, error)

	// DeleteAllEdges removes every edge.
	DeleteAllEdges(ctx context.Context) error
}

// EdgeFilter represents a filter for FindEdges.
type EdgeFilter struct {
	From *string `json:"from"`
	To   *string `json:"to"`
	Kind *string `json:"kind"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
