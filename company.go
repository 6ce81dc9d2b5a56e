package relgraph

import (
	"context"
	"time"
)

// EmployeeRef links a company to a harvested or not-yet-harvested profile.
type EmployeeRef struct {
	NodeID string `json:"nodeId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
}

// Company represents a company-to-employees mapping. The record is
// upserted wholesale on every scrape.
type Company struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Employees []EmployeeRef `json:"employees"`
	ScrapedAt time.Time     `json:"scrapedAt"`
}

// Validate returns an error if the company contains invalid fields.
func (c *Company) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "company ID required")
	}
	if c.Name == "" {
		return Errorf(EINVALID, "company name required")
	}
	return nil
}

// CompanyService represents a service for managing company maps.
type CompanyService interface {
	// UpsertCompany creates or wholesale-replaces the company record.
	UpsertCompany(ctx context.Context, company *Company) error

	// FindCompanyByID retrieves a company by ID.
	// Returns ENOTFOUND if the company does not exist.
	FindCompanyByID(ctx context.Context, id string) (*Company, error)

	// FindCompanies retrieves all stored companies.
	FindCompanies(ctx context.Context) ([]*Company, error)

	// DeleteAllCompanies removes every company.
	DeleteAllCompanies(ctx context.Context) error
}
