package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.PageSession = (*PageSession)(nil)

// PageSession is a mock implementation of relgraph.PageSession.
type PageSession struct {
	ItemCountFn func(ctx context.Context) (int, error)
	LoadMoreFn  func(ctx context.Context) error
	ItemHTMLFn  func(ctx context.Context) ([]string, error)
	CloseFn     func() error
}

func (s *PageSession) ItemCount(ctx context.Context) (int, error) {
	return s.ItemCountFn(ctx)
}

func (s *PageSession) LoadMore(ctx context.Context) error {
	return s.LoadMoreFn(ctx)
}

func (s *PageSession) ItemHTML(ctx context.Context) ([]string, error) {
	return s.ItemHTMLFn(ctx)
}

func (s *PageSession) Close() error {
	if s.CloseFn == nil {
		return nil
	}
	return s.CloseFn()
}
