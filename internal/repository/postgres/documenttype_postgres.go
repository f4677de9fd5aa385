package postgres

import (
	"context"
	"database/sql"
	"time"

	"docms/internal/model"
	"docms/internal/repository"
)

// DocumentTypePostgres is a PostgreSQL implementation of
// repository.DocumentTypeRepository.
type DocumentTypePostgres struct {
	db *sql.DB
}

// NewDocumentTypePostgres creates a new DocumentTypePostgres repository.
func NewDocumentTypePostgres(db *sql.DB) *DocumentTypePostgres {
	return &DocumentTypePostgres{db: db}
}

var _ repository.DocumentTypeRepository = (*DocumentTypePostgres)(nil)

const documentTypeColumns = "id, name, description, schema_definition, is_active, created_at, updated_at"

func scanDocumentType(row interface{ Scan(...any) error }) (*model.DocumentType, error) {
	var dt model.DocumentType
	if err := row.Scan(
		&dt.ID,
		&dt.Name,
		&dt.Description,
		&dt.SchemaDefinition,
		&dt.IsActive,
		&dt.CreatedAt,
		&dt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &dt, nil
}

// Create inserts a new document type row and returns the stored record.
func (r *DocumentTypePostgres) Create(ctx context.Context, dt *model.DocumentType) (*model.DocumentType, error) {
	const q = `
		INSERT INTO document_types (id, name, description, schema_definition, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + documentTypeColumns
	row := r.db.QueryRowContext(ctx, q,
		dt.ID,
		dt.Name,
		dt.Description,
		dt.SchemaDefinition,
		dt.IsActive,
		dt.CreatedAt,
		dt.UpdatedAt,
	)
	return scanDocumentType(row)
}

// FindByID fetches a single active document type by ID.
func (r *DocumentTypePostgres) FindByID(ctx context.Context, id string) (*model.DocumentType, error) {
	const q = `
		SELECT ` + documentTypeColumns + `
		FROM document_types
		WHERE id = $1 AND is_active = TRUE
	`
	return scanDocumentType(r.db.QueryRowContext(ctx, q, id))
}

// List returns active document types using LIMIT/OFFSET pagination and a total count.
func (r *DocumentTypePostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.DocumentType], error) {
	const qCount = `SELECT COUNT(*) FROM document_types WHERE is_active = TRUE`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentTypeColumns + `
		FROM document_types
		WHERE is_active = TRUE
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.DocumentType, 0)
	for rows.Next() {
		dt, err := scanDocumentType(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *dt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.DocumentType]{Items: items, Total: total}, nil
}

// Update applies the non-nil fields of upd and bumps updated_at, in a single
// statement. Returns sql.ErrNoRows when no active row matches.
func (r *DocumentTypePostgres) Update(ctx context.Context, id string, upd model.DocumentTypeUpdate) (*model.DocumentType, error) {
	const q = `
		UPDATE document_types
		SET name              = COALESCE($2, name),
		    description       = COALESCE($3, description),
		    schema_definition = COALESCE($4, schema_definition),
		    is_active         = COALESCE($5, is_active),
		    updated_at        = $6
		WHERE id = $1 AND is_active = TRUE
		RETURNING ` + documentTypeColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		upd.Name,
		upd.Description,
		upd.SchemaDefinition,
		upd.IsActive,
		time.Now().UTC(),
	)
	return scanDocumentType(row)
}

// Deactivate soft-deletes a document type and bumps updated_at.
func (r *DocumentTypePostgres) Deactivate(ctx context.Context, id string) error {
	const q = `
		UPDATE document_types
		SET is_active = FALSE, updated_at = $2
		WHERE id = $1 AND is_active = TRUE
	`
	res, err := r.db.ExecContext(ctx, q, id, time.Now().UTC())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
