package relgraph

import "context"

// Composer generates prose downstream of ranked results. It is never
// invoked by extraction or ranking.
type Composer interface {
	// ComposeOutreach drafts a short outreach message to the given node,
	// grounded in the ranking engine's reasoning clauses.
	ComposeOutreach(ctx context.Context, node *Node, reasons []string) (string, error)
}
