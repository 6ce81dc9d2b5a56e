package slog

import (
	"log/slog"

	"github.com/fwojciec/relgraph"
)

// Ensure LoggingProfileExtractor implements relgraph.ProfileExtractor.
var _ relgraph.ProfileExtractor = (*LoggingProfileExtractor)(nil)

// LoggingProfileExtractor wraps a ProfileExtractor with rejection
// diagnostics. Skipped items are otherwise invisible outside harvest
// event counts, so the reason each one failed is logged here.
type LoggingProfileExtractor struct {
	next   relgraph.ProfileExtractor
	logger *slog.Logger
}

// NewLoggingProfileExtractor creates a new LoggingProfileExtractor.
func NewLoggingProfileExtractor(next relgraph.ProfileExtractor, logger *slog.Logger) *LoggingProfileExtractor {
	return &LoggingProfileExtractor{next: next, logger: logger}
}

// ExtractProfile delegates to the wrapped extractor and logs rejections.
func (e *LoggingProfileExtractor) ExtractProfile(html string) (*relgraph.Node, error) {
	node, err := e.next.ExtractProfile(html)
	if err != nil {
		e.logger.Debug("profile extraction rejected",
			"code", relgraph.ErrorCode(err),
			"reason", relgraph.ErrorMessage(err),
			"htmlBytes", len(html),
		)
		return nil, err
	}
	e.logger.Debug("profile extracted", "id", node.ID, "name", node.Name)
	return node, nil
}
