// Package slog provides logging decorators for service interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/relgraph"
)

// Ensure LoggingSearcher implements relgraph.Searcher.
var _ relgraph.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with query timing.
type LoggingSearcher struct {
	next   relgraph.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next relgraph.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) Search(ctx context.Context, rawQuery string) (results []*relgraph.SearchResult, err error) {
	defer func(begin time.Time) {
		s.logger.Info("graph search",
			"query", rawQuery,
			"results", len(results),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, rawQuery)
}
