package postgres

import (
	"context"
	"database/sql"

	"companyreg/internal/model"
	"companyreg/internal/repository"
)

// ResponsiblePostgres is a PostgreSQL implementation of repository.ResponsibleRepository.
type ResponsiblePostgres struct {
	db *sql.DB
}

// NewResponsiblePostgres creates a new ResponsiblePostgres repository.
func NewResponsiblePostgres(db *sql.DB) *ResponsiblePostgres {
	return &ResponsiblePostgres{db: db}
}

var _ repository.ResponsibleRepository = (*ResponsiblePostgres)(nil)

// DeactivateActive flips off the active flag for the company's current
// active responsible. Zero affected rows is fine.
func (r *ResponsiblePostgres) DeactivateActive(ctx context.Context, companyID int64) error {
	const q = `UPDATE company_responsibles SET active = false WHERE company_id = $1 AND active`
	_, err := r.db.ExecContext(ctx, q, companyID)
	return err
}

// Insert persists a new responsible assignment and returns the stored record.
func (r *ResponsiblePostgres) Insert(ctx context.Context, resp *model.Responsible) (*model.Responsible, error) {
	const q = `
		INSERT INTO company_responsibles (company_id, external_user_id, active, assigned_by_user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, company_id, external_user_id, active, assigned_by_user_id, assigned_at
	`
	row := r.db.QueryRowContext(ctx, q, resp.CompanyID, resp.ExternalUserID, resp.Active, resp.AssignedByUserID)
	var out model.Responsible
	if err := row.Scan(
		&out.ID,
		&out.CompanyID,
		&out.ExternalUserID,
		&out.Active,
		&out.AssignedByUserID,
		&out.AssignedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}
