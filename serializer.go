package relgraph

import "context"

// Serializer enqueues long-running operations for single-flight execution.
// At most one enqueued operation runs at any time process-wide, in FIFO
// order. Concurrent harvests would race on both the shared rendered page
// and the shared store, so every acquisition operation must pass through
// the serializer.
type Serializer interface {
	// Enqueue submits the operation and blocks until it has run or the
	// context is canceled while waiting. The operation's own error is
	// returned unwrapped.
	Enqueue(ctx context.Context, op func(ctx context.Context) error) error
}
