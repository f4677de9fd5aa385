package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docms/internal/service"
)

type createDocumentTypeRequest struct {
	Name             string `json:"name"`
	Description      string `json:"description"`
	SchemaDefinition string `json:"schema_definition"`
}

type updateDocumentTypeRequest struct {
	Name             *string `json:"name"`
	Description      *string `json:"description"`
	SchemaDefinition *string `json:"schema_definition"`
	IsActive         *bool   `json:"is_active"`
}

// ListDocumentTypes returns active document types with limit/offset pagination.
func ListDocumentTypes(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, offset, ok := pageParams(c)
		if !ok {
			return nil
		}
		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CreateDocumentType registers a new document type.
func CreateDocumentType(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createDocumentTypeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		dt, err := svc.Create(c.UserContext(), service.CreateDocumentTypeInput{
			Name:             req.Name,
			Description:      req.Description,
			SchemaDefinition: req.SchemaDefinition,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dt)
	}
}

// GetDocumentType returns a single active document type by ID.
func GetDocumentType(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		dt, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dt)
	}
}

// UpdateDocumentType applies a sparse update to an active document type.
func UpdateDocumentType(svc service.DocumentTypeService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var req updateDocumentTypeRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		dt, err := svc.Update(c.UserContext(), id, service.UpdateDocumentTypeInput{
			Name:             req.Name,
			Description:      req.Description,
			SchemaDefinition: req.SchemaDefinition,
			IsActive:         req.IsActive,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dt)
	}
}

// DeleteDocumentType deactivates a document type (soft delete).
func DeleteDocumentType(svc service.DocumentTypeService) fiber.Handler {
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
