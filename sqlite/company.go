package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/relgraph"
)

// Compile-time interface verification.
var _ relgraph.CompanyService = (*CompanyService)(nil)

// CompanyService implements relgraph.CompanyService using SQLite.
type CompanyService struct {
	db *DB
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(db *DB) *CompanyService {
	return &CompanyService{db: db}
}

// UpsertCompany creates or wholesale-replaces the company record.
func (s *CompanyService) UpsertCompany(ctx context.Context, company *relgraph.Company) error {
	if err := company.Validate(); err != nil {
		return err
	}
	if company.ScrapedAt.IsZero() {
		company.ScrapedAt = time.Now().UTC()
	}

	employees, err := json.Marshal(company.Employees)
	if err != nil {
		return fmt.Errorf("failed to encode employees: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO companies (id, name, employees, scraped_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			employees = excluded.employees,
			scraped_at = excluded.scraped_at
	`, company.ID, company.Name, string(employees), company.ScrapedAt.Format(time.RFC3339))

	return err
}

// FindCompanyByID retrieves a company by ID.
func (s *CompanyService) FindCompanyByID(ctx context.Context, id string) (*relgraph.Company, error) {
	var company relgraph.Company
	var employees, scrapedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, employees, scraped_at
		FROM companies
		WHERE id = ?
	`, id).Scan(&company.ID, &company.Name, &employees, &scrapedAt)

	if err == sql.ErrNoRows {
		return nil, relgraph.Errorf(relgraph.ENOTFOUND, "company not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(employees), &company.Employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	if company.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
		return nil, err
	}

	return &company, nil
}

// FindCompanies retrieves all stored companies.
func (s *CompanyService) FindCompanies(ctx context.Context) ([]*relgraph.Company, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, employees, scraped_at
		FROM companies
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var companies []*relgraph.Company
	for rows.Next() {
		var company relgraph.Company
		var employees, scrapedAt string

		if err := rows.Scan(&company.ID, &company.Name, &employees, &scrapedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(employees), &company.Employees); err != nil {
			return nil, fmt.Errorf("failed to decode employees: %w", err)
		}
		if company.ScrapedAt, err = parseRFC3339(scrapedAt, "scraped_at"); err != nil {
			return nil, err
		}

		companies = append(companies, &company)
	}

	return companies, rows.Err()
}

// DeleteAllCompanies removes every company.
func (s *CompanyService) DeleteAllCompanies(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM companies")
	return err
}
