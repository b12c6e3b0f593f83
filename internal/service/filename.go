package service

import (
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// mimeExtensions maps each allowed MIME type to its canonical extension.
var mimeExtensions = map[string]string{
	"application/pdf": ".pdf",
	"image/png":       ".png",
	"image/jpeg":      ".jpg",
}

// sanitizeFilename makes a user-supplied filename safe to record: control
// characters become spaces, path separators become underscores, and the
// result is truncated to 255 runes. It is applied to the original filename
// only; stored filenames are never derived from user input.
func sanitizeFilename(name string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case r < 0x20 || r == 0x7f:
			return ' '
		}
		return r
	}, name)

	runes := []rune(out)
	if len(runes) > 255 {
		runes = runes[:255]
	}
	return string(runes)
}

// resolveExtension picks the stored file's extension: from the validated MIME
// type when known, otherwise from the original filename, otherwise empty.
func resolveExtension(mimeType, originalFilename string) string {
	if ext, ok := mimeExtensions[mimeType]; ok {
		return ext
	}
	return filepath.Ext(originalFilename)
}

// newStoredFilename generates an opaque stored filename: a random token with
// no relation to user input, suffixed with the resolved extension.
func newStoredFilename(mimeType, originalFilename string) string {
	return uuid.NewString() + resolveExtension(mimeType, originalFilename)
}

// storageKey derives the relative storage path for a company's document.
// The path is forward-slash separated and scoped under the owning company;
// joined to the storage root it can never escape it.
func storageKey(companyID int64, storedFilename string) string {
	return path.Join("companies", strconv.FormatInt(companyID, 10), "documents", storedFilename)
}
