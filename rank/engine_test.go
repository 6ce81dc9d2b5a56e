package rank_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/fwojciec/relgraph"
	"github.com/fwojciec/relgraph/mock"
	"github.com/fwojciec/relgraph/rank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func TestEngine_Search_StrongMatch(t *testing.T) {
	t.Parallel()

	alice := &relgraph.Node{
		ID:         "alice",
		Name:       "Alice Chen",
		Headline:   "Senior Software Engineer at Google",
		Company:    "Google",
		Role:       "Senior Software Engineer",
		Location:   "San Francisco",
		ProfileURL: "https://example.com/in/alice",
		Degree:     1,
	}

	e := rank.NewEngine(
		fixedNodes(alice),
		activityCounts(map[string]int{"alice": 12}),
	)
	e.Now = func() time.Time { return testNow }

	results, err := e.Search(context.Background(), "Alice")
	require.NoError(t, err)
	require.Len(t, results, 1)

	r := results[0]
	assert.Equal(t, 100.0, r.Breakdown.Connection)
	assert.Equal(t, 100.0, r.Breakdown.Keyword)
	assert.Equal(t, 100.0, r.Breakdown.Completeness)
	assert.Equal(t, 100.0, r.Breakdown.Activity)
	assert.InDelta(t, 100.0, r.Score, 0.001)

	assert.Contains(t, r.Reasons, "1st-degree connection")
	assert.Contains(t, r.Reasons, "complete profile")
	assert.Contains(t, r.Reasons, "highly active recently")
	assert.Contains(t, r.Reasons, "strong match")
}

func TestEngine_Search_CloserDegreeRanksHigher(t *testing.T) {
	t.Parallel()

	// Identical profiles except for relationship degree.
	nodes := []*relgraph.Node{
		profileAt("carol", "Google", 3),
		profileAt("alice", "Google", 1),
		profileAt("bob", "Google", 2),
	}

	e := rank.NewEngine(fixedNodes(nodes...), activityCounts(nil))
	e.Now = func() time.Time { return testNow }

	results, err := e.Search(context.Background(), "works at Google")
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "alice", results[0].Node.ID)
	assert.Equal(t, "bob", results[1].Node.ID)
	assert.Equal(t, "carol", results[2].Node.ID)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Greater(t, results[1].Score, results[2].Score)
}

func TestEngine_Search_TieBrokenByDegree(t *testing.T) {
	t.Parallel()

	// Zero connection weight forces an exact score tie between otherwise
	// identical nodes of different degrees.
	nodes := []*relgraph.Node{
		profileAt("far", "Google", 3),
		profileAt("near", "Google", 1),
	}

	e := rank.NewEngine(fixedNodes(nodes...), activityCounts(nil))
	e.Now = func() time.Time { return testNow }
	e.Weights = relgraph.RankWeights{
		Keyword:      0.5,
		Completeness: 0.5,
		PointsName:   30,
	}

	results, err := e.Search(context.Background(), "works at Google")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, results[0].Score, results[1].Score)
	assert.Equal(t, "near", results[0].Node.ID)
	assert.Equal(t, "far", results[1].Node.ID)
}

func TestEngine_Search_NoMatchesReturnsEmpty(t *testing.T) {
	t.Parallel()

	e := rank.NewEngine(
		fixedNodes(profileAt("alice", "Google", 1)),
		activityCounts(nil),
	)
	e.Now = func() time.Time { return testNow }

	results, err := e.Search(context.Background(), "works at Initech")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestEngine_Search_TruncatesToLimit(t *testing.T) {
	t.Parallel()

	nodes := make([]*relgraph.Node, 60)
	for i := range nodes {
		degree := 1 + i%3
		nodes[i] = profileAt("p"+strconv.Itoa(i), "Google", degree)
	}

	e := rank.NewEngine(fixedNodes(nodes...), activityCounts(nil))
	e.Now = func() time.Time { return testNow }

	results, err := e.Search(context.Background(), "works at Google")
	require.NoError(t, err)
	require.Len(t, results, 50)

	// The dropped candidates are the lowest-ranked ones.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestEngine_Search_DegreeFilterUsesIndex(t *testing.T) {
	t.Parallel()

	var gotFilter relgraph.NodeFilter
	nodes := &mock.NodeService{
		FindNodesFn: func(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error) {
			gotFilter = filter
			return []*relgraph.Node{profileAt("bob", "Google", 2)}, nil
		},
	}

	e := rank.NewEngine(nodes, activityCounts(nil))
	e.Now = func() time.Time { return testNow }

	results, err := e.Search(context.Background(), "2nd degree connections at Google")
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, []int{2}, gotFilter.Degrees)
	assert.Contains(t, results[0].Reasons, "2nd-degree connection")
	assert.Contains(t, results[0].Reasons, "works at Google")
}

func TestEngine_Search_ActivityBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		counts map[string]int
		want   float64
	}{
		{name: "no data", counts: nil, want: 30},
		{name: "stale only", counts: map[string]int{"alice|total": 4}, want: 40},
		{name: "lightly active", counts: map[string]int{"alice": 3}, want: 60},
		{name: "active", counts: map[string]int{"alice": 7}, want: 80},
		{name: "highly active", counts: map[string]int{"alice": 15}, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := rank.NewEngine(
				fixedNodes(profileAt("alice", "Google", 1)),
				activityCounts(tt.counts),
			)
			e.Now = func() time.Time { return testNow }

			results, err := e.Search(context.Background(), "works at Google")
			require.NoError(t, err)
			require.Len(t, results, 1)
			assert.Equal(t, tt.want, results[0].Breakdown.Activity)
		})
	}
}

func TestEngine_Search_YearsFilter(t *testing.T) {
	t.Parallel()

	junior := profileAt("junior", "Google", 1)
	junior.YearsExperience = 2
	veteran := profileAt("veteran", "Google", 1)
	veteran.YearsExperience = 8

	e := rank.NewEngine(fixedNodes(junior, veteran), activityCounts(nil))
	e.Now = func() time.Time { return testNow }

	results, err := e.Search(context.Background(), "at Google with 5+ years")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "veteran", results[0].Node.ID)
}

func TestEngine_Search_StoreErrorPropagates(t *testing.T) {
	t.Parallel()

	nodes := &mock.NodeService{
		FindNodesFn: func(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error) {
			return nil, relgraph.Errorf(relgraph.EINTERNAL, "database locked")
		},
	}

	e := rank.NewEngine(nodes, activityCounts(nil))
	_, err := e.Search(context.Background(), "anyone")
	require.Error(t, err)
	assert.Equal(t, relgraph.EINTERNAL, relgraph.ErrorCode(err))
}

// profileAt builds a fully populated test node at the given company and
// degree.
func profileAt(id, company string, degree int) *relgraph.Node {
	return &relgraph.Node{
		ID:         id,
		Name:       "Profile " + id,
		Headline:   "Engineer at " + company,
		Company:    company,
		Role:       "Engineer",
		Location:   "San Francisco",
		ProfileURL: "https://example.com/in/" + id,
		Degree:     degree,
	}
}

func fixedNodes(nodes ...*relgraph.Node) *mock.NodeService {
	return &mock.NodeService{
		FindNodesFn: func(ctx context.Context, filter relgraph.NodeFilter) ([]*relgraph.Node, error) {
			if len(filter.Degrees) == 0 {
				return nodes, nil
			}
			var out []*relgraph.Node
			for _, node := range nodes {
				for _, d := range filter.Degrees {
					if node.Degree == d {
						out = append(out, node)
						break
					}
				}
			}
			return out, nil
		},
	}
}

// activityCounts maps actor ID to recent activity count. An "<id>|total"
// key reports rows that exist outside the recent window.
func activityCounts(counts map[string]int) *mock.ActivityService {
	return &mock.ActivityService{
		CountActivitiesFn: func(ctx context.Context, filter relgraph.ActivityFilter) (int, error) {
			if filter.ActorID == nil {
				return 0, nil
			}
			recent := counts[*filter.ActorID]
			stale := counts[*filter.ActorID+"|total"]
			if filter.Since != nil {
				return recent, nil
			}
			return recent + stale, nil
		},
	}
}
