package repository

import (
	"context"

	"companyreg/internal/model"
)

// ResponsibleRepository defines data access for company responsibles.
type ResponsibleRepository interface {
	// DeactivateActive flips the active flag off for the company's current
	// active responsible, if any. Deactivating a company with no active
	// responsible is not an error.
	DeactivateActive(ctx context.Context, companyID int64) error

	// Insert persists a new responsible assignment.
	Insert(ctx context.Context, r *model.Responsible) (*model.Responsible, error)
}
