package postgres

import (
	"context"
	"database/sql"

	"companyreg/internal/model"
	"companyreg/internal/repository"
)

// CompanyPostgres is a PostgreSQL implementation of repository.CompanyRepository.
type CompanyPostgres struct {
	db *sql.DB
}

// NewCompanyPostgres creates a new CompanyPostgres repository.
func NewCompanyPostgres(db *sql.DB) *CompanyPostgres {
	return &CompanyPostgres{db: db}
}

var _ repository.CompanyRepository = (*CompanyPostgres)(nil)

const companyColumns = `id, person_type, trade_name, profile_id, direct_billing, legal_name, cnpj,
		person_name, cpf, foreign_legal_name, foreign_id, approval_status, rejection_reason,
		created_by_user_id, approved_by_user_id, approved_at, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*model.Company, error) {
	var c model.Company
	if err := row.Scan(
		&c.ID,
		&c.PersonType,
		&c.TradeName,
		&c.ProfileID,
		&c.DirectBilling,
		&c.LegalName,
		&c.CNPJ,
		&c.PersonName,
		&c.CPF,
		&c.ForeignLegalName,
		&c.ForeignID,
		&c.ApprovalStatus,
		&c.RejectionReason,
		&c.CreatedByUserID,
		&c.ApprovedByUserID,
		&c.ApprovedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new company row and returns the stored record.
func (r *CompanyPostgres) Create(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `
		INSERT INTO companies (person_type, trade_name, profile_id, direct_billing, legal_name, cnpj,
			person_name, cpf, foreign_legal_name, foreign_id, approval_status, created_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, q,
		c.PersonType,
		c.TradeName,
		c.ProfileID,
		c.DirectBilling,
		c.LegalName,
		c.CNPJ,
		c.PersonName,
		c.CPF,
		c.ForeignLegalName,
		c.ForeignID,
		c.ApprovalStatus,
		c.CreatedByUserID,
	)
	out, err := scanCompany(row)
	if err != nil {
		return nil, wrapDuplicate(err)
	}
	return out, nil
}

// FindByID fetches a single company by its ID.
func (r *CompanyPostgres) FindByID(ctx context.Context, id int64) (*model.Company, error) {
	const q = `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE id = $1
	`
	return scanCompany(r.db.QueryRowContext(ctx, q, id))
}

// List returns companies ordered by id descending, optionally filtered by status.
func (r *CompanyPostgres) List(ctx context.Context, status model.ApprovalStatus) ([]model.Company, error) {
	q := `
		SELECT ` + companyColumns + `
		FROM companies
		ORDER BY id DESC
	`
	args := []any{}
	if status != "" {
		q = `
		SELECT ` + companyColumns + `
		FROM companies
		WHERE approval_status = $1
		ORDER BY id DESC
	`
		args = append(args, status)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Update persists all mutable fields and bumps updated_at.
func (r *CompanyPostgres) Update(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `
		UPDATE companies
		SET person_type = $1, trade_name = $2, profile_id = $3, direct_billing = $4, legal_name = $5,
			cnpj = $6, person_name = $7, cpf = $8, foreign_legal_name = $9, foreign_id = $10,
			approval_status = $11, rejection_reason = $12, approved_by_user_id = $13, approved_at = $14,
			updated_at = now()
		WHERE id = $15
		RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, q,
		c.PersonType,
		c.TradeName,
		c.ProfileID,
		c.DirectBilling,
		c.LegalName,
		c.CNPJ,
		c.PersonName,
		c.CPF,
		c.ForeignLegalName,
		c.ForeignID,
		c.ApprovalStatus,
		c.RejectionReason,
		c.ApprovedByUserID,
		c.ApprovedAt,
		c.ID,
	)
	out, err := scanCompany(row)
	if err != nil {
		return nil, wrapDuplicate(err)
	}
	return out, nil
}
