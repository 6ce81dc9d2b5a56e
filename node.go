package relgraph

import (
	"context"
	"time"
)

// Connection status values for a node.
const (
	StatusConnected = "connected"
	StatusPending   = "pending"
	StatusNone      = "none"
)

// Node represents a harvested profile annotated with graph metadata.
// Nodes are created on first successful extraction and overwritten on
// rescrape; they are never deleted except by an explicit full clear.
type Node struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Headline        string    `json:"headline"`
	Company         string    `json:"company"`
	Role            string    `json:"role"`
	Location        string    `json:"location"`
	ProfileURL      string    `json:"profileUrl"`
	Skills          []string  `json:"skills"`
	YearsExperience int       `json:"yearsExperience"`
	Degree          int       `json:"degree"`
	MatchScore      float64   `json:"matchScore"`
	ActivityScore   *float64  `json:"activityScore"`
	Status          string    `json:"status"`
	ScrapedAt       time.Time `json:"scrapedAt"`
}

// Validate returns an error if the node contains invalid fields.
func (n *Node) Validate() error {
	if n.ID == "" {
		return Errorf(EINVALID, "node ID required")
	}
	if n.Name == "" {
		return Errorf(EINVALID, "node name required")
	}
	if n.Degree < 1 || n.Degree > 3 {
		return Errorf(EINVALID, "node degree must be 1-3, got %d", n.Degree)
	}
	if n.MatchScore < 0 || n.MatchScore > 100 {
		return Errorf(EINVALID, "node match score must be 0-100, got %g", n.MatchScore)
	}
	if n.ActivityScore != nil && (*n.ActivityScore < 0 || *n.ActivityScore > 100) {
		return Errorf(EINVALID, "node activity score must be 0-100, got %g", *n.ActivityScore)
	}
	return nil
}

// NodeService represents a service for managing graph nodes.
type NodeService interface {
	// FindNodeByID retrieves a node by ID.
	// Returns ENOTFOUND if the node does not exist.
	FindNodeByID(ctx context.Context, id string) (*Node, error)

	// FindNodes retrieves nodes matching the filter, using the degree and
	// score indexes where the filter allows.
	FindNodes(ctx context.Context, filter NodeFilter) ([]*Node, error)

	// UpsertNode creates the node or overwrites an existing node with the
	// same ID. The operation is idempotent.
	UpsertNode(ctx context.Context, node *Node) error

	// BulkUpsertNodes upserts all nodes in a single transaction.
	// A failure leaves no partial mutation visible to subsequent reads.
	BulkUpsertNodes(ctx context.Context, nodes []*Node) error

	// CountNodes returns the total number of stored nodes.
	CountNodes(ctx context.Context) (int, error)

	// DeleteAllNodes removes every node.
	DeleteAllNodes(ctx context.Context) error
}

// NodeFilter represents a filter for FindNodes.
type NodeFilter struct {
	ID       *string `json:"id"`
	Degree   *int    `json:"degree"`
	Degrees  []int   `json:"degrees"`
	MinScore *float64 `json:"minScore"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
