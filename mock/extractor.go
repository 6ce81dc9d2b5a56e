package mock

import "github.com/fwojciec/relgraph"

var _ relgraph.ProfileExtractor = (*ProfileExtractor)(nil)

// ProfileExtractor is a mock implementation of relgraph.ProfileExtractor.
type ProfileExtractor struct {
	ExtractProfileFn func(html string) (*relgraph.Node, error)
}

func (e *ProfileExtractor) ExtractProfile(html string) (*relgraph.Node, error) {
	return e.ExtractProfileFn(html)
}

var _ relgraph.ActivityExtractor = (*ActivityExtractor)(nil)

// ActivityExtractor is a mock implementation of relgraph.ActivityExtractor.
type ActivityExtractor struct {
	ExtractActivityFn func(html string) (*relgraph.Activity, error)
}

func (e *ActivityExtractor) ExtractActivity(html string) (*relgraph.Activity, error) {
	return e.ExtractActivityFn(html)
}

var _ relgraph.CompanyExtractor = (*CompanyExtractor)(nil)

// CompanyExtractor is a mock implementation of relgraph.CompanyExtractor.
type CompanyExtractor struct {
	ExtractEmployeeFn func(html string) (*relgraph.Company, *relgraph.EmployeeRef, error)
}

func (e *CompanyExtractor) ExtractEmployee(html string) (*relgraph.Company, *relgraph.EmployeeRef, error) {
	return e.ExtractEmployeeFn(html)
}

var _ relgraph.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of relgraph.ContentExtractor.
type ContentExtractor struct {
	ExtractTextFn func(html string) (string, error)
}

func (e *ContentExtractor) ExtractText(html string) (string, error) {
	return e.ExtractTextFn(html)
}
