package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates an in-memory database for testing.
func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func TestDB_Open(t *testing.T) {
	t.Parallel()

	t.Run("opens in-memory database", func(t *testing.T) {
		t.Parallel()
		db := sqlite.NewDB(":memory:")
		require.NoError(t, db.Open())
		defer db.Close()
	})

	t.Run("opens file database", func(t *testing.T) {
		t.Parallel()
		db := sqlite.NewDB(t.TempDir() + "/graph.db")
		require.NoError(t, db.Open())
		defer db.Close()
	})
}

func TestDB_Usage(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	nodes := sqlite.NewNodeService(db)
	require.NoError(t, nodes.UpsertNode(ctx, testNode("in:jane-doe", 1)))
	require.NoError(t, nodes.UpsertNode(ctx, testNode("in:bob-smith", 2)))

	usage, err := db.Usage(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, usage.Nodes)
	assert.Equal(t, 0, usage.Edges)
	assert.Equal(t, 0, usage.Activities)
	assert.Equal(t, 0, usage.Companies)
	assert.Greater(t, usage.Bytes, int64(0))
}

func TestDB_ClearAll(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	nodes := sqlite.NewNodeService(db)
	edges := sqlite.NewEdgeService(db)
	activities := sqlite.NewActivityService(db)
	companies := sqlite.NewCompanyService(db)
	settings := sqlite.NewSettingService(db)
	progresses := sqlite.NewProgressService(settings)

	require.NoError(t, nodes.UpsertNode(ctx, testNode("in:jane-doe", 1)))
	require.NoError(t, edges.UpsertEdge(ctx, testEdge("me", "in:jane-doe", 1)))
	require.NoError(t, activities.CreateActivity(ctx, testActivity("in:jane-doe", "me", relgraph.ActivityPost, time.Now())))
	require.NoError(t, companies.UpsertCompany(ctx, &relgraph.Company{ID: "acme", Name: "Acme"}))
	require.NoError(t, progresses.SaveProgress(ctx, &relgraph.Progress{
		Kind:   relgraph.HarvestConnections,
		Status: relgraph.ProgressComplete,
	}))
	require.NoError(t, settings.Set(ctx, "ownerID", "me"))

	require.NoError(t, db.ClearAll(ctx))

	usage, err := db.Usage(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, usage.Nodes)
	assert.Equal(t, 0, usage.Edges)
	assert.Equal(t, 0, usage.Activities)
	assert.Equal(t, 0, usage.Companies)

	_, err = progresses.FindProgress(ctx, relgraph.HarvestConnections)
	require.Error(t, err)
	assert.Equal(t, relgraph.ENOTFOUND, relgraph.ErrorCode(err))

	// Settings other than harvest checkpoints survive.
	owner, err := settings.Get(ctx, "ownerID")
	require.NoError(t, err)
	assert.Equal(t, "me", owner)
}
