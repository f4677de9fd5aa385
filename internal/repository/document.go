package repository

import (
	"context"

	"docms/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here — strictly persistence operations. Reads exclude
// soft-deleted rows; missing rows surface as sql.ErrNoRows.
type DocumentRepository interface {
	// Create inserts a new document row and returns the stored record.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a non-deleted document with its versions and metadata.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// List returns a page of non-deleted documents plus the total count.
	// Items do not carry versions or metadata.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)

	// Update applies the provided fields of upd, records upd.ModifiedBy and
	// bumps updated_at. An explicitly set nil DocumentTypeID clears the type
	// reference. Returns sql.ErrNoRows if no non-deleted row matches.
	Update(ctx context.Context, id string, upd model.DocumentUpdate) (*model.Document, error)

	// SoftDelete marks a document deleted (is_deleted=true), recording the
	// acting user. Returns sql.ErrNoRows if no non-deleted row matches id.
	SoftDelete(ctx context.Context, id string, modifiedBy string) error
}
