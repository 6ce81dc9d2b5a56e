package rank

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/relgraph"
)

// score computes the weighted total for one candidate and assembles its
// explanation.
func (e *Engine) score(ctx context.Context, node *relgraph.Node, parsed relgraph.ParsedQuery, weights relgraph.RankWeights) (*relgraph.SearchResult, error) {
	activity, err := e.activityScore(ctx, node)
	if err != nil {
		return nil, err
	}

	breakdown := relgraph.ScoreBreakdown{
		Connection:   connectionScore(node.Degree),
		Keyword:      keywordScore(node, parsed.FreeText, weights),
		Completeness: completenessScore(node, weights),
		Activity:     activity,
	}

	total := weights.Connection*breakdown.Connection +
		weights.Keyword*breakdown.Keyword +
		weights.Completeness*breakdown.Completeness +
		weights.Activity*breakdown.Activity

	return &relgraph.SearchResult{
		Node:      node,
		Score:     total,
		Breakdown: breakdown,
		Reasons:   reasons(node, parsed, breakdown, total),
	}, nil
}

// connectionScore maps relationship degree to a sub-score.
func connectionScore(degree int) float64 {
	switch degree {
	case 1:
		return 100
	case 2:
		return 75
	case 3:
		return 50
	default:
		return 25
	}
}

// keywordScore rewards free-text hits, weighted by field: name beats
// headline beats company and role. Multi-term queries earn a bonus
// proportional to the fraction of terms found anywhere, capped at 100
// after the bonus. Empty free text yields a neutral 50.
func keywordScore(node *relgraph.Node, freeText string, weights relgraph.RankWeights) float64 {
	free := strings.ToLower(strings.TrimSpace(freeText))
	if free == "" {
		return 50
	}

	fieldPoints := []struct {
		value  string
		points float64
	}{
		{node.Name, weights.KeywordName},
		{node.Headline, weights.KeywordHeadline},
		{node.Company, weights.KeywordCompany},
		{node.Role, weights.KeywordRole},
	}

	var sum float64
	var hits int
	for _, f := range fieldPoints {
		if containsFold(f.value, free) {
			sum += f.points
			hits++
		}
	}

	var score float64
	if hits > 0 {
		score = sum / float64(hits)
	}

	if terms := strings.Fields(free); len(terms) > 1 {
		found := 0
		for _, term := range terms {
			if matchesTerm(node, term) {
				found++
			}
		}
		score += weights.MultiTermBonus * float64(found) / float64(len(terms))
	}

	return clamp(score)
}

// completenessScore awards fixed points for each populated profile field,
// capped at 100.
func completenessScore(node *relgraph.Node, weights relgraph.RankWeights) float64 {
	var score float64
	if node.Name != "" {
		score += weights.PointsName
	}
	if node.Headline != "" {
		score += weights.PointsHeadline
	}
	if node.Company != "" {
		score += weights.PointsCompany
	}
	if node.Role != "" {
		score += weights.PointsRole
	}
	if node.ProfileURL != "" {
		score += weights.PointsProfile
	}
	return clamp(score)
}

// activityScore derives a sub-score from the candidate's recent activity
// rows. No rows at all scores a neutral-low 30 (no data); rows exist but
// none recent scores 40; then 60/80/100 by recent volume.
func (e *Engine) activityScore(ctx context.Context, node *relgraph.Node) (float64, error) {
	if e.Activities == nil {
		return 30, nil
	}

	actor := node.ID
	total, err := e.Activities.CountActivities(ctx, relgraph.ActivityFilter{ActorID: &actor})
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 30, nil
	}

	since := e.now().Add(-recentWindow)
	recent, err := e.Activities.CountActivities(ctx, relgraph.ActivityFilter{ActorID: &actor, Since: &since})
	if err != nil {
		return 0, err
	}

	switch {
	case recent == 0:
		return 40, nil
	case recent < 5:
		return 60, nil
	case recent < 10:
		return 80, nil
	default:
		return 100, nil
	}
}

// reasons builds the deterministic, ordered explanation clauses. They are
// explanatory only and never feed back into scoring.
func reasons(node *relgraph.Node, parsed relgraph.ParsedQuery, breakdown relgraph.ScoreBreakdown, total float64) []string {
	var out []string

	switch node.Degree {
	case 1:
		out = append(out, "1st-degree connection")
	case 2:
		out = append(out, "2nd-degree connection")
	case 3:
		out = append(out, "3rd-degree connection")
	}

	if free := strings.TrimSpace(parsed.FreeText); free != "" {
		var matched []string
		if containsFold(node.Name, free) {
			matched = append(matched, "name")
		}
		if containsFold(node.Headline, free) {
			matched = append(matched, "headline")
		}
		if containsFold(node.Company, free) {
			matched = append(matched, "company")
		}
		if containsFold(node.Role, free) {
			matched = append(matched, "role")
		}
		if len(matched) > 0 {
			out = append(out, fmt.Sprintf("%q matches %s", free, strings.Join(matched, ", ")))
		}
	}

	f := parsed.Filters
	if f.Company != nil {
		out = append(out, fmt.Sprintf("works at %s", *f.Company))
	}
	if f.Location != nil {
		out = append(out, fmt.Sprintf("located in %s", *f.Location))
	}
	if f.Role != nil {
		out = append(out, fmt.Sprintf("%s role", *f.Role))
	}
	if f.Years != nil {
		out = append(out, fmt.Sprintf("%d years of experience", node.YearsExperience))
	}

	if breakdown.Completeness >= 80 {
		out = append(out, "complete profile")
	}
	switch {
	case breakdown.Activity >= 80:
		out = append(out, "highly active recently")
	case breakdown.Activity >= 60:
		out = append(out, "active recently")
	}

	switch {
	case total >= 80:
		out = append(out, "strong match")
	case total >= 60:
		out = append(out, "good match")
	default:
		out = append(out, "moderate match")
	}

	return out
}

func clamp(score float64) float64 {
	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}
