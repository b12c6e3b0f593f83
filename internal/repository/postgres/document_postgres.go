package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"companyreg/internal/model"
	"companyreg/internal/repository"
)

const uniqueViolationCode = "23505"

// wrapDuplicate translates a PostgreSQL unique-violation error into
// repository.ErrDuplicate so services can match it with errors.Is.
func wrapDuplicate(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return fmt.Errorf("%w: %s", repository.ErrDuplicate, pgErr.ConstraintName)
	}
	return err
}

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = `id, company_id, required, description, original_filename, stored_filename,
		mime_type, size_bytes, content_hash, storage_driver, storage_path, status, created_at`

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.CompanyID,
		&d.Required,
		&d.Description,
		&d.OriginalFilename,
		&d.StoredFilename,
		&d.MimeType,
		&d.SizeBytes,
		&d.ContentHash,
		&d.StorageDriver,
		&d.StoragePath,
		&d.Status,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Insert creates a new document row and returns the stored record.
// A hit on uq_company_documents_company_hash comes back wrapping
// repository.ErrDuplicate.
func (r *DocumentPostgres) Insert(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO company_documents (company_id, required, description, original_filename,
			stored_filename, mime_type, size_bytes, content_hash, storage_driver, storage_path, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.CompanyID,
		doc.Required,
		doc.Description,
		doc.OriginalFilename,
		doc.StoredFilename,
		doc.MimeType,
		doc.SizeBytes,
		doc.ContentHash,
		doc.StorageDriver,
		doc.StoragePath,
		doc.Status,
	)
	out, err := scanDocument(row)
	if err != nil {
		return nil, wrapDuplicate(err)
	}
	return out, nil
}

// FindByID fetches a single document scoped by the owning company.
func (r *DocumentPostgres) FindByID(ctx context.Context, companyID, id int64) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM company_documents
		WHERE company_id = $1 AND id = $2
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, companyID, id))
}

// FindByCompanyAndHash performs the dedup lookup. Status is intentionally not
// filtered: the uniqueness constraint is status-blind, so the lookup must be too.
func (r *DocumentPostgres) FindByCompanyAndHash(ctx context.Context, companyID int64, hash string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM company_documents
		WHERE company_id = $1 AND content_hash = $2
	`
	return scanDocument(r.db.QueryRowContext(ctx, q, companyID, hash))
}

// Update persists the document's status and returns the stored record.
func (r *DocumentPostgres) Update(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		UPDATE company_documents
		SET status = $1
		WHERE id = $2 AND company_id = $3
		RETURNING ` + documentColumns
	return scanDocument(r.db.QueryRowContext(ctx, q, doc.Status, doc.ID, doc.CompanyID))
}

// ListByCompany returns all of a company's documents, newest first.
func (r *DocumentPostgres) ListByCompany(ctx context.Context, companyID int64) ([]model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM company_documents
		WHERE company_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
