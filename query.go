package relgraph

import "context"

// YearsRange is a years-of-experience constraint. A nil bound is open.
type YearsRange struct {
	Min *int `json:"min"`
	Max *int `json:"max"`
}

// QueryFilters holds the structured constraints recognized in a raw query.
// Absent filters are vacuously satisfied.
type QueryFilters struct {
	Company  *string     `json:"company"`
	Location *string     `json:"location"`
	Role     *string     `json:"role"`
	Years    *YearsRange `json:"yearsExperience"`
	Degrees  []int       `json:"connectionDegree"`
}

// Empty reports whether no filter was recognized.
func (f QueryFilters) Empty() bool {
	return f.Company == nil && f.Location == nil && f.Role == nil &&
		f.Years == nil && len(f.Degrees) == 0
}

// ParsedQuery is the result of parsing a raw natural-language query:
// the residual free text plus every recognized filter.
type ParsedQuery struct {
	FreeText string       `json:"freeText"`
	Filters  QueryFilters `json:"filters"`
}

// ScoreBreakdown holds the per-factor sub-scores, each in [0,100].
type ScoreBreakdown struct {
	Connection   float64 `json:"connection"`
	Keyword      float64 `json:"keyword"`
	Completeness float64 `json:"completeness"`
	Activity     float64 `json:"activity"`
}

// SearchResult is one ranked candidate with its explanation. Reasons are
// explanatory only; they are never fed back into scoring.
type SearchResult struct {
	Node      *Node          `json:"node"`
	Score     float64        `json:"score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
	Reasons   []string       `json:"reasons"`
}

// RankWeights configures the ranking engine. The four factor weights
// should sum to 1; field points feed the keyword and completeness
// sub-scores before capping at 100.
type RankWeights struct {
	Connection   float64
	Keyword      float64
	Completeness float64
	Activity     float64

	KeywordName     float64
	KeywordHeadline float64
	KeywordCompany  float64
	KeywordRole     float64
	MultiTermBonus  float64

	PointsName     float64
	PointsHeadline float64
	PointsCompany  float64
	PointsRole     float64
	PointsProfile  float64
}

// DefaultRankWeights returns the standard scoring configuration:
// 0.4 connection, 0.3 keyword, 0.2 completeness, 0.1 activity.
func DefaultRankWeights() RankWeights {
	return RankWeights{
		Connection:   0.4,
		Keyword:      0.3,
		Completeness: 0.2,
		Activity:     0.1,

		KeywordName:     100,
		KeywordHeadline: 80,
		KeywordCompany:  70,
		KeywordRole:     70,
		MultiTermBonus:  50,

		PointsName:     30,
		PointsHeadline: 25,
		PointsCompany:  20,
		PointsRole:     15,
		PointsProfile:  10,
	}
}

// Searcher answers natural-language queries over the stored graph with
// ranked, explainable results.
type Searcher interface {
	// Search parses the raw query, scans candidates, and returns ranked
	// results. A query matching nothing yields an empty, non-nil-error
	// result.
	Search(ctx context.Context, rawQuery string) ([]*SearchResult, error)
}
