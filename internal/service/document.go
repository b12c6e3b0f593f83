package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"companyreg/internal/model"
	"companyreg/internal/repository"
	"companyreg/internal/storage"
)

// DocumentConfig carries the upload limits injected into the document service.
// It is an explicit value, not ambient state, so tests can run with different
// limits.
type DocumentConfig struct {
	// MaxUploadBytes is the size ceiling for a single upload.
	MaxUploadBytes int64
	// AllowedMimeTypes is the declared-type allow-list, mapping each accepted
	// MIME type to its canonical extension.
	AllowedMimeTypes map[string]string
}

// DefaultDocumentConfig returns the production allow-list (pdf, png, jpeg)
// with the given byte ceiling.
func DefaultDocumentConfig(maxUploadBytes int64) DocumentConfig {
	allowed := make(map[string]string, len(mimeExtensions))
	for mime, ext := range mimeExtensions {
		allowed[mime] = ext
	}
	return DocumentConfig{
		MaxUploadBytes:   maxUploadBytes,
		AllowedMimeTypes: allowed,
	}
}

// validate checks the declared MIME type first, then the size. Both run
// before any filesystem write.
func (c DocumentConfig) validate(mimeType string, size int64) error {
	if _, ok := c.AllowedMimeTypes[mimeType]; !ok {
		return ErrInvalidMediaType
	}
	if size > c.MaxUploadBytes {
		return fmt.Errorf("%w of %d bytes", ErrPayloadTooLarge, c.MaxUploadBytes)
	}
	return nil
}

// hashContent returns the hex-encoded SHA-256 digest of the buffer.
func hashContent(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// UploadInput is the inbound payload for a document upload.
type UploadInput struct {
	Content          []byte
	OriginalFilename string
	MimeType         string
	// Required defaults to true when nil.
	Required    *bool
	Description *string
}

// DocumentService defines the use cases for company documents.
type DocumentService interface {
	// Upload validates, deduplicates and stores a document under a company.
	// Uploading bytes already stored for the same company returns the
	// existing record unchanged: upload is idempotent under identical content.
	Upload(ctx context.Context, companyID int64, in UploadInput) (*model.Document, error)

	// List returns all of a company's documents, newest first, all statuses.
	// Callers filter for active as needed.
	List(ctx context.Context, companyID int64) ([]model.Document, error)

	// Remove soft-deletes a document: status moves to REMOVED, the physical
	// file is retained. Removing an already removed document is not an error.
	Remove(ctx context.Context, companyID, documentID int64) (*model.Document, error)

	// Download resolves a document to its metadata and a readable stream.
	// Status is not checked: a removed document stays downloadable by id.
	Download(ctx context.Context, companyID, documentID int64) (*model.Document, io.ReadCloser, error)
}

type documentService struct {
	cfg       DocumentConfig
	store     storage.Storage
	companies repository.CompanyRepository
	docs      repository.DocumentRepository
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(cfg DocumentConfig, store storage.Storage, companies repository.CompanyRepository, docs repository.DocumentRepository) DocumentService {
	return &documentService{cfg: cfg, store: store, companies: companies, docs: docs}
}

func (s *documentService) ensureCompany(ctx context.Context, companyID int64) error {
	if _, err := s.companies.FindByID(ctx, companyID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCompanyNotFound
		}
		return fmt.Errorf("look up company: %w", err)
	}
	return nil
}

func (s *documentService) Upload(ctx context.Context, companyID int64, in UploadInput) (*model.Document, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	if len(in.Content) == 0 {
		return nil, ErrMissingFile
	}
	if err := s.cfg.validate(in.MimeType, int64(len(in.Content))); err != nil {
		return nil, err
	}

	hash := hashContent(in.Content)

	// Dedup: identical bytes under the same company resolve to the one
	// record already stored, whatever its status. No new file is written.
	existing, err := s.docs.FindByCompanyAndHash(ctx, companyID, hash)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("dedup lookup: %w", err)
	}

	storedName := newStoredFilename(in.MimeType, in.OriginalFilename)
	key := storageKey(companyID, storedName)

	// Metadata is persisted only after the write fully succeeds, so a row
	// never references a partially written file.
	if _, err := s.store.Put(ctx, key, bytes.NewReader(in.Content)); err != nil {
		return nil, fmt.Errorf("write to storage: %w", err)
	}

	required := true
	if in.Required != nil {
		required = *in.Required
	}

	doc := &model.Document{
		CompanyID:        companyID,
		Required:         required,
		Description:      in.Description,
		OriginalFilename: sanitizeFilename(in.OriginalFilename),
		StoredFilename:   storedName,
		MimeType:         in.MimeType,
		SizeBytes:        int64(len(in.Content)),
		ContentHash:      hash,
		StorageDriver:    model.StorageDriverLocal,
		StoragePath:      key,
		Status:           model.DocumentActive,
	}

	stored, err := s.docs.Insert(ctx, doc)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost the dedup race to a concurrent identical upload. The
			// uniqueness constraint is the arbiter; our freshly written file
			// is unreferenced, so clean it up best-effort and surface the
			// conflict for the caller to re-invoke.
			_ = s.store.Remove(ctx, key)
			return nil, fmt.Errorf("%w: identical document already stored for this company", ErrConflict)
		}
		return nil, fmt.Errorf("persist metadata: %w", err)
	}
	return stored, nil
}

func (s *documentService) List(ctx context.Context, companyID int64) ([]model.Document, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	return s.docs.ListByCompany(ctx, companyID)
}

func (s *documentService) Remove(ctx context.Context, companyID, documentID int64) (*model.Document, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, err
	}
	doc, err := s.docs.FindByID(ctx, companyID, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("look up document: %w", err)
	}

	doc.Status = model.DocumentRemoved
	updated, err := s.docs.Update(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("persist removal: %w", err)
	}
	return updated, nil
}

func (s *documentService) Download(ctx context.Context, companyID, documentID int64) (*model.Document, io.ReadCloser, error) {
	if err := s.ensureCompany(ctx, companyID); err != nil {
		return nil, nil, err
	}
	doc, err := s.docs.FindByID(ctx, companyID, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrDocumentNotFound
		}
		return nil, nil, fmt.Errorf("look up document: %w", err)
	}

	rc, err := s.store.Open(ctx, doc.StoragePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: metadata and storage disagree", ErrStorageInconsistency)
		}
		return nil, nil, fmt.Errorf("open stored content: %w", err)
	}
	return doc, rc, nil
}
