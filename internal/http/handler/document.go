package handler

import (
	"io"
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"companyreg/internal/service"
)

// parseIDParam reads a route parameter as a positive integer id.
func parseIDParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

const maxDescriptionLen = 120

// ListCompanyDocuments returns all documents of a company, newest first.
func ListCompanyDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		docs, err := svc.List(c.UserContext(), companyID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(docs)
	}
}

// UploadCompanyDocument accepts a multipart upload (field name: file) with
// optional form fields "required" and "description".
func UploadCompanyDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}

		in := service.UploadInput{}

		if v := c.FormValue("required"); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_REQUIRED", "required must be a boolean")
			}
			in.Required = &b
		}
		if v := c.FormValue("description"); v != "" {
			if len([]rune(v)) > maxDescriptionLen {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DESCRIPTION", "description exceeds 120 characters")
			}
			in.Description = &v
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		content, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		in.Content = content
		in.OriginalFilename = fh.Filename
		in.MimeType = fh.Header.Get("Content-Type")

		doc, err := svc.Upload(c.UserContext(), companyID, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// DownloadCompanyDocument streams the stored content with the document's MIME
// type and an attachment disposition carrying the original filename.
func DownloadCompanyDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		docID, ok := parseIDParam(c, "docId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document id")
		}

		doc, rc, err := svc.Download(c.UserContext(), companyID, docID)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.MimeType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+url.PathEscape(doc.OriginalFilename)+`"`)
		return c.SendStream(rc, int(doc.SizeBytes))
	}
}

// RemoveCompanyDocument soft-deletes a document; the physical file is retained.
func RemoveCompanyDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, ok := parseIDParam(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id")
		}
		docID, ok := parseIDParam(c, "docId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document id")
		}

		doc, err := svc.Remove(c.UserContext(), companyID, docID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}
