package handler

import (
	"database/sql"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docms/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, delegate to the service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, userSvc service.UserService, typeSvc service.DocumentTypeService, docSvc service.DocumentService) {
	// Readiness (checks DB connectivity) and plain liveness probes
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	v1 := app.Group("/api/v1")

	users := v1.Group("/users")
	users.Get("/", ListUsers(userSvc))
	users.Post("/", CreateUser(userSvc))
	users.Get("/:id", GetUser(userSvc))
	users.Put("/:id", UpdateUser(userSvc))
	users.Delete("/:id", DeleteUser(userSvc))

	types := v1.Group("/document-types")
	types.Get("/", ListDocumentTypes(typeSvc))
	types.Post("/", CreateDocumentType(typeSvc))
	types.Get("/:id", GetDocumentType(typeSvc))
	types.Put("/:id", UpdateDocumentType(typeSvc))
	types.Delete("/:id", DeleteDocumentType(typeSvc))

	docs := v1.Group("/documents")
	docs.Get("/", ListDocuments(docSvc))
	docs.Post("/", UploadDocument(docSvc))
	docs.Get("/:id", GetDocument(docSvc))
	docs.Put("/:id", UpdateDocument(docSvc))
	docs.Delete("/:id", DeleteDocument(docSvc))
}

// pageParams parses limit/offset query parameters. When either value is
// malformed the error response has already been written and ok is false.
func pageParams(c *fiber.Ctx) (limit, offset int, ok bool) {
	limit, err := strconv.Atoi(c.Query("limit", "0"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		return 0, 0, false
	}
	offset, err = strconv.Atoi(c.Query("offset", "0"))
	if err != nil {
		_ = writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		return 0, 0, false
	}
	return limit, offset, true
}
