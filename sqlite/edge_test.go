package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEdge(from, to string, weight float64) *relgraph.Edge {
	return &relgraph.Edge{
		From:   from,
		To:     to,
		Weight: weight,
		Kind:   relgraph.EdgeKindConnection,
	}
}

func TestEdgeService_UpsertEdge(t *testing.T) {
	t.Parallel()

	t.Run("duplicate (from,to) pairs collapse onto one edge", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewEdgeService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertEdge(ctx, testEdge("me", "a", 1.0)))
		require.NoError(t, svc.UpsertEdge(ctx, testEdge("me", "a", 0.5)))

		edges, err := svc.FindEdges(ctx, relgraph.EdgeFilter{})
		require.NoError(t, err)
		require.Len(t, edges, 1)
		assert.Equal(t, 0.5, edges[0].Weight, "second upsert overwrites")
	})

	t.Run("direction matters", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewEdgeService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertEdge(ctx, testEdge("a", "b", 1.0)))
		require.NoError(t, svc.UpsertEdge(ctx, testEdge("b", "a", 1.0)))

		edges, err := svc.FindEdges(ctx, relgraph.EdgeFilter{})
		require.NoError(t, err)
		assert.Len(t, edges, 2)
	})

	t.Run("rejects invalid weight", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewEdgeService(db)

		err := svc.UpsertEdge(context.Background(), testEdge("a", "b", 0))
		require.Error(t, err)
		assert.Equal(t, relgraph.EINVALID, relgraph.ErrorCode(err))
	})
}

func TestEdgeService_FindEdges(t *testing.T) {
	t.Parallel()

	t.Run("adjacency lookup in either direction", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewEdgeService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertEdge(ctx, testEdge("me", "a", 1.0)))
		require.NoError(t, svc.UpsertEdge(ctx, testEdge("me", "b", 0.5)))
		require.NoError(t, svc.UpsertEdge(ctx, testEdge("c", "me", 0.5)))

		from := "me"
		outgoing, err := svc.FindEdges(ctx, relgraph.EdgeFilter{From: &from})
		require.NoError(t, err)
		assert.Len(t, outgoing, 2)

		to := "me"
		incoming, err := svc.FindEdges(ctx, relgraph.EdgeFilter{To: &to})
		require.NoError(t, err)
		require.Len(t, incoming, 1)
		assert.Equal(t, "c", incoming[0].From)
	})
}

func TestEdgeService_BulkUpsertEdges(t *testing.T) {
	t.Parallel()

	t.Run("is all-or-nothing when an edge is invalid", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewEdgeService(db)
		ctx := context.Background()

		err := svc.BulkUpsertEdges(ctx, []*relgraph.Edge{
			testEdge("me", "a", 1.0),
			testEdge("me", "", 1.0),
		})
		require.Error(t, err)

		edges, err := svc.FindEdges(ctx, relgraph.EdgeFilter{})
		require.NoError(t, err)
		assert.Empty(t, edges)
	})
}
