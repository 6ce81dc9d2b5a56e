package rod_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/relgraph/mock"
	"github.com/fwojciec/relgraph/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingSession(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	next := &mock.PageSession{
		ItemCountFn: func(ctx context.Context) (int, error) { return 7, nil },
		LoadMoreFn:  func(ctx context.Context) error { return nil },
		ItemHTMLFn:  func(ctx context.Context) ([]string, error) { return []string{"<li>a</li>"}, nil },
		CloseFn:     func() error { return nil },
	}

	s := rod.NewLoggingSession(next, logger)

	count, err := s.ItemCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.Contains(t, buf.String(), "item count")
	assert.Contains(t, buf.String(), "count=7")

	require.NoError(t, s.LoadMore(context.Background()))
	assert.Contains(t, buf.String(), "load more")

	items, err := s.ItemHTML(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Contains(t, buf.String(), "item snapshot")

	require.NoError(t, s.Close())
}
