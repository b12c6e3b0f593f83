package repository

import (
	"context"

	"companyreg/internal/model"
)

// DocumentRepository defines data access for company documents using SQL
// queries only. No business logic here — strictly persistence operations.
type DocumentRepository interface {
	// Insert persists a new document record. It fails with an error wrapping
	// ErrDuplicate when the (company_id, content_hash) uniqueness constraint
	// is violated.
	Insert(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns the document with the given id owned by the given
	// company, or sql.ErrNoRows if no such row exists.
	FindByID(ctx context.Context, companyID, id int64) (*model.Document, error)

	// FindByCompanyAndHash returns the document stored for (companyID, hash)
	// regardless of status, or sql.ErrNoRows. This is the dedup lookup.
	FindByCompanyAndHash(ctx context.Context, companyID int64, hash string) (*model.Document, error)

	// Update persists mutable fields (status) of an existing record.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// ListByCompany returns all documents of a company, newest first.
	ListByCompany(ctx context.Context, companyID int64) ([]model.Document, error)
}
