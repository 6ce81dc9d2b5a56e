package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.PageSession = (*LoggingSession)(nil)

// LoggingSession wraps a PageSession with debug logging.
type LoggingSession struct {
	next   relgraph.PageSession
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next relgraph.PageSession, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// ItemCount delegates to the wrapped session and logs the result.
func (s *LoggingSession) ItemCount(ctx context.Context) (count int, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("item count",
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ItemCount(ctx)
}

// LoadMore delegates to the wrapped session and logs the call.
func (s *LoggingSession) LoadMore(ctx context.Context) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("load more",
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadMore(ctx)
}

// ItemHTML delegates to the wrapped session and logs the snapshot size.
func (s *LoggingSession) ItemHTML(ctx context.Context) (items []string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("item snapshot",
			"items", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ItemHTML(ctx)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}
