package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartsuite/internal/http/middleware"
	"smartsuite/internal/service"
)

// expiryLayouts are the accepted formats for expiry_date values; the UI
// sends bare dates, API clients tend to send RFC 3339.
var expiryLayouts = []string{"2006-01-02", time.RFC3339}

func parseExpiry(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized date %q", raw)
}

// UploadDocument attaches a new document to a register record
// (multipart/form-data: file, title, optional expiry_date).
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}

		parentID := c.Params("id")
		if _, err := uuid.Parse(parentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		expiry, err := parseExpiry(c.FormValue("expiry_date"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid expiry date")
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

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		doc, err := svc.Upload(c.UserContext(), service.UploadInput{
			Module:      c.Params("module"),
			ParentID:    parentID,
			Title:       c.FormValue("title"),
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			ExpiryDate:  expiry,
			UserID:      claims.UserID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// ListDocuments lists the documents attached to a register record.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		parentID := c.Params("id")
		if _, err := uuid.Parse(parentID); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		docs, err := svc.ListByParent(c.UserContext(), c.Params("module"), parentID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": docs})
	}
}

// GetDocument returns a document with its full version history.
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DownloadDocument streams the document's current file. With
// ?presign=true it returns a short-lived storage URL instead, letting
// the client fetch the object directly.
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if c.Query("presign") == "true" {
			url, err := svc.DownloadURL(c.UserContext(), id)
			if err != nil {
				return writeServiceError(c, err)
			}
			return c.JSON(fiber.Map{"url": url})
		}

		rc, doc, err := svc.Download(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.ContentType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.Title))
		return c.SendStream(rc)
	}
}

// DeleteDocument removes a document, its versions, and the stored objects.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// AddVersion appends a new version (multipart/form-data: file, optional
// label and notes). The document's current file repoints at the new object.
func AddVersion(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
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

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		ver, err := svc.AddVersion(c.UserContext(), service.VersionInput{
			DocumentID:  id,
			Label:       c.FormValue("label"),
			Notes:       c.FormValue("notes"),
			Reader:      f,
			Filename:    fh.Filename,
			ContentType: ct,
			Size:        fh.Size,
			UserID:      claims.UserID,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(ver)
	}
}

// ListVersions returns a document's version history, newest first by label.
func ListVersions(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		doc, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": doc.Versions})
	}
}

type assignRequest struct {
	UserID string `json:"user_id"`
}

// AssignDocument sets or clears (empty user_id) the document's assignee and
// restarts its reminder cycle.
func AssignDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req assignRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		if req.UserID != "" {
			if _, err := uuid.Parse(req.UserID); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid user id format")
			}
		}

		doc, err := svc.Assign(c.UserContext(), id, req.UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

type expiryRequest struct {
	ExpiryDate string `json:"expiry_date"`
}

// SetExpiry sets or clears (empty expiry_date) the document's expiry date.
func SetExpiry(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req expiryRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}
		expiry, err := parseExpiry(req.ExpiryDate)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "invalid expiry date")
		}

		doc, err := svc.SetExpiry(c.UserContext(), id, expiry)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}
