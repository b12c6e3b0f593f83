package model

import "time"

// StorageDriver identifies the backend a document's bytes live on.
// Only local disk has behavior today; s3 and minio are reserved values.
type StorageDriver string

const (
	StorageDriverLocal StorageDriver = "local"
	StorageDriverS3    StorageDriver = "s3"
	StorageDriverMinIO StorageDriver = "minio"
)

// DocumentStatus is the lifecycle state of a document. Removal is logical:
// the metadata row and the physical file are both retained.
type DocumentStatus string

const (
	DocumentActive  DocumentStatus = "ACTIVE"
	DocumentRemoved DocumentStatus = "REMOVED"
)

// Document represents one uploaded file attached to a company.
// This is a pure domain model with no database-specific dependencies or tags.
//
// ContentHash together with CompanyID forms the deduplication key: at most
// one document may exist per (company, hash), enforced by a unique constraint
// at the repository layer.
type Document struct {
	ID               int64          `json:"id"`
	CompanyID        int64          `json:"company_id"`
	Required         bool           `json:"required"`
	Description      *string        `json:"description"`
	OriginalFilename string         `json:"original_filename"`
	StoredFilename   string         `json:"stored_filename"`
	MimeType         string         `json:"mime_type"`
	SizeBytes        int64          `json:"size_bytes"`
	ContentHash      string         `json:"content_hash"`
	StorageDriver    StorageDriver  `json:"storage_driver"`
	StoragePath      string         `json:"storage_path"`
	Status           DocumentStatus `json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
}
