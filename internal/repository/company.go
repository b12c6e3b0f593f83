package repository

import (
	"context"

	"companyreg/internal/model"
)

// CompanyRepository defines data access for companies.
type CompanyRepository interface {
	// Create inserts a new company row. Uniqueness violations on the tax
	// identifiers (cnpj, cpf, foreign_id) surface as errors wrapping ErrDuplicate.
	Create(ctx context.Context, c *model.Company) (*model.Company, error)

	// FindByID returns a company by its id, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Company, error)

	// List returns companies ordered by id descending. An empty status
	// returns all; otherwise rows are filtered by approval_status.
	List(ctx context.Context, status model.ApprovalStatus) ([]model.Company, error)

	// Update persists all mutable fields of an existing company.
	Update(ctx context.Context, c *model.Company) (*model.Company, error)
}
