package relgraph

import (
	"context"
	"io"
)

// GraphExporter writes the stored graph in an interchange format for
// external graph tooling.
type GraphExporter interface {
	ExportGraph(ctx context.Context, w io.Writer) error
}
