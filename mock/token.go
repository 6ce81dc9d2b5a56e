package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.TokenCounter = (*TokenCounter)(nil)

type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (m *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return m.CountTokensFn(ctx, text)
}
