package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyService_UpsertCompany(t *testing.T) {
	t.Parallel()

	t.Run("replaces the employee list wholesale", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCompanyService(db)
		ctx := context.Background()

		require.NoError(t, svc.UpsertCompany(ctx, &relgraph.Company{
			ID:   "co:example",
			Name: "Example",
			Employees: []relgraph.EmployeeRef{
				{NodeID: "in:jane-doe", Name: "Jane Doe", Role: "Engineer"},
				{NodeID: "in:bob-smith", Name: "Bob Smith", Role: "Designer"},
			},
		}))

		require.NoError(t, svc.UpsertCompany(ctx, &relgraph.Company{
			ID:   "co:example",
			Name: "Example",
			Employees: []relgraph.EmployeeRef{
				{NodeID: "in:jane-doe", Name: "Jane Doe", Role: "Staff Engineer"},
			},
		}))

		found, err := svc.FindCompanyByID(ctx, "co:example")
		require.NoError(t, err)
		require.Len(t, found.Employees, 1)
		assert.Equal(t, "Staff Engineer", found.Employees[0].Role)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewCompanyService(db)

		err := svc.UpsertCompany(context.Background(), &relgraph.Company{ID: "co:x"})
		require.Error(t, err)
		assert.Equal(t, relgraph.EINVALID, relgraph.ErrorCode(err))
	})
}

func TestCompanyService_FindCompanyByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	svc := sqlite.NewCompanyService(db)

	_, err := svc.FindCompanyByID(context.Background(), "co:missing")
	require.Error(t, err)
	assert.Equal(t, relgraph.ENOTFOUND, relgraph.ErrorCode(err))
}
