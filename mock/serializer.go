package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.Serializer = (*Serializer)(nil)

// Serializer is a mock implementation of relgraph.Serializer. The zero
// value runs operations inline.
type Serializer struct {
	EnqueueFn func(ctx context.Context, op func(ctx context.Context) error) error
}

func (s *Serializer) Enqueue(ctx context.Context, op func(ctx context.Context) error) error {
	if s.EnqueueFn == nil {
		return op(ctx)
	}
	return s.EnqueueFn(ctx, op)
}
