package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"docms/internal/model"
	"docms/internal/service"
)

// ActorIDHeader carries the id of the acting principal. There is no
// authentication layer yet; the header is trusted as-is and threaded through
// the services so the signature is ready for one.
const ActorIDHeader = "X-User-ID"

// updateDocumentRequest decodes document_type_id through a three-state field:
// omitting it leaves the reference unchanged while an explicit null clears it.
type updateDocumentRequest struct {
	Name           *string              `json:"name"`
	DocumentTypeID model.NullableString `json:"document_type_id"`
	IsDeleted      *bool                `json:"is_deleted"`
}

// actorID extracts and validates the acting principal id from the request.
// When the header is missing or malformed the error response has already been
// written and ok is false.
func actorID(c *fiber.Ctx) (id string, ok bool) {
	id = c.Get(ActorIDHeader)
	if id == "" {
		_ = writeError(c, fiber.StatusBadRequest, "ACTOR_REQUIRED", ActorIDHeader+" header is required")
		return "", false
	}
	if _, err := uuid.Parse(id); err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_ACTOR", "invalid "+ActorIDHeader+" format")
		return "", false
	}
	return id, true
}

// ListDocuments returns non-deleted documents with limit/offset pagination.
func ListDocuments(svc service.DocumentService) fiber.Handler {
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

// UploadDocument ingests a document (multipart/form-data).
// Fields: file (required), name (required), file_type (required),
// document_type_id (optional). The acting principal comes from X-User-ID.
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := actorID(c)
		if !ok {
			return nil
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

		var typeID *string
		if v := c.FormValue("document_type_id"); v != "" {
			if _, err := uuid.Parse(v); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document_type_id format")
			}
			typeID = &v
		}

		doc, err := svc.Upload(c.UserContext(), service.UploadDocumentInput{
			Reader:           f,
			OriginalFilename: fh.Filename,
			ContentType:      ct,
			Name:             c.FormValue("name"),
			FileType:         c.FormValue("file_type"),
			DocumentTypeID:   typeID,
			ActorID:          actor,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(doc)
	}
}

// GetDocument returns a single non-deleted document with versions and metadata.
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

// UpdateDocument applies a sparse metadata update on behalf of the acting
// principal.
func UpdateDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		actor, ok := actorID(c)
		if !ok {
			return nil
		}
		var req updateDocumentRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "cannot parse request body")
		}
		if req.DocumentTypeID.Set && req.DocumentTypeID.Value != nil {
			if _, err := uuid.Parse(*req.DocumentTypeID.Value); err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document_type_id format")
			}
		}
		doc, err := svc.Update(c.UserContext(), id, actor, service.UpdateDocumentInput{
			Name:           req.Name,
			DocumentTypeID: req.DocumentTypeID,
			IsDeleted:      req.IsDeleted,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(doc)
	}
}

// DeleteDocument soft-deletes a document on behalf of the acting principal.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if _, err := uuid.Parse(id); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		actor, ok := actorID(c)
		if !ok {
			return nil
		}
		if err := svc.Delete(c.UserContext(), id, actor); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
