package repository

import (
	"context"

	"docms/internal/model"
)

// DocumentTypeRepository defines data access for document types.
// Same soft-delete contract as UserRepository: reads see active rows only,
// missing rows surface as sql.ErrNoRows.
type DocumentTypeRepository interface {
	Create(ctx context.Context, dt *model.DocumentType) (*model.DocumentType, error)

	FindByID(ctx context.Context, id string) (*model.DocumentType, error)

	List(ctx context.Context, pq PageQuery) (*PageResult[model.DocumentType], error)

	// Update applies the non-nil fields of upd and bumps updated_at.
	Update(ctx context.Context, id string, upd model.DocumentTypeUpdate) (*model.DocumentType, error)

	// Deactivate soft-deletes a document type and bumps updated_at.
	Deactivate(ctx context.Context, id string) error
}
