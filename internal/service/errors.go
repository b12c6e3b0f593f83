package service

import "errors"

// Failure kinds surfaced by the services. Handlers map each to a stable HTTP
// status; every kind is a caller-visible condition, not a transient fault.
var (
	// ErrCompanyNotFound means the referenced company does not exist.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrDocumentNotFound means no document with that id exists under the company.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrUserNotFound means a referenced user id does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrMissingFile means an upload arrived without content.
	ErrMissingFile = errors.New("file is required")
	// ErrInvalidMediaType means the declared MIME type is outside the allow-list.
	ErrInvalidMediaType = errors.New("invalid media type: accepted pdf, png, jpeg")
	// ErrPayloadTooLarge means the content exceeds the configured size ceiling.
	ErrPayloadTooLarge = errors.New("file exceeds the upload size limit")
	// ErrConflict means a uniqueness constraint rejected the write, either the
	// document dedup race or a duplicated company identifier.
	ErrConflict = errors.New("resource conflict")
	// ErrStorageInconsistency means metadata references a file that is missing
	// on disk. Fatal for the request, non-retryable.
	ErrStorageInconsistency = errors.New("stored file is unavailable")
	// ErrValidation wraps per-field input validation failures.
	ErrValidation = errors.New("validation failed")
)
