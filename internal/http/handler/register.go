package handler

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"smartsuite/internal/http/middleware"
	"smartsuite/internal/model"
	"smartsuite/internal/service"
)

// CreateRecord creates a register record in the module named by the path.
func CreateRecord(svc service.RegisterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}

		var in service.RecordInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		rec, err := svc.Create(c.UserContext(), c.Params("module"), in, claims.UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// ListRecords lists a module's records with limit & offset. Archived rows
// are hidden unless include_archived=true.
func ListRecords(svc service.RegisterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		includeArchived := c.Query("include_archived") == "true"

		res, err := svc.List(c.UserContext(), c.Params("module"), includeArchived, limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetRecord returns one register record by ID.
func GetRecord(svc service.RegisterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		rec, err := svc.Get(c.UserContext(), c.Params("module"), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// UpdateRecord replaces a record's caller-editable fields.
func UpdateRecord(svc service.RegisterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var in service.RecordInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		}

		rec, err := svc.Update(c.UserContext(), c.Params("module"), id, in, claims.UserID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(rec)
	}
}

// ArchiveRecord soft-deletes a record; documents stay attached.
func ArchiveRecord(svc service.RegisterService) fiber.Handler {
	return setArchivedHandler(svc, true)
}

// RestoreRecord reverses an archive.
func RestoreRecord(svc service.RegisterService) fiber.Handler {
	return setArchivedHandler(svc, false)
}

func setArchivedHandler(svc service.RegisterService, archived bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := middleware.ClaimsFromCtx(c)
		if claims == nil {
			return fiber.ErrUnauthorized
		}

		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var err error
		if archived {
			err = svc.Archive(c.UserContext(), c.Params("module"), id, claims.UserID)
		} else {
			err = svc.Restore(c.UserContext(), c.Params("module"), id, claims.UserID)
		}
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeleteRecord hard-deletes a record together with its documents and
// version history.
func DeleteRecord(svc service.RegisterService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), c.Params("module"), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ExportRegister streams the module's active records as a spreadsheet.
func ExportRegister(svc service.ReportService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		module := c.Params("module")
		if !model.ValidModule(module) {
			return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "unknown register module")
		}

		data, filename, err := svc.ExportRegister(c.UserContext(), module)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
		return c.Send(data)
	}
}
