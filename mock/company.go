package mock

import (
	"context"

	"github.com/fwojciec/relgraph"
)

var _ relgraph.CompanyService = (*CompanyService)(nil)

// CompanyService is a mock implementation of relgraph.CompanyService.
type CompanyService struct {
	UpsertCompanyFn      func(ctx context.Context, company *relgraph.Company) error
	FindCompanyByIDFn    func(ctx context.Context, id string) (*relgraph.Company, error)
	FindCompaniesFn      func(ctx context.Context) ([]*relgraph.Company, error)
	DeleteAllCompaniesFn func(ctx context.Context) error
}

func (s *CompanyService) UpsertCompany(ctx context.Context, company *relgraph.Company) error {
	return s.UpsertCompanyFn(ctx, company)
}

func (s *CompanyService) FindCompanyByID(ctx context.Context, id string) (*relgraph.Company, error) {
	return s.FindCompanyByIDFn(ctx, id)
}

func (s *CompanyService) FindCompanies(ctx context.Context) ([]*relgraph.Company, error) {
	return s.FindCompaniesFn(ctx)
}

func (s *CompanyService) DeleteAllCompanies(ctx context.Context) error {
	return s.DeleteAllCompaniesFn(ctx)
}
