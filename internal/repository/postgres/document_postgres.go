package postgres

import (
	"context"
	"database/sql"
	"time"

	"docms/internal/model"
	"docms/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = "id, name, file_type, storage_path, size, content_hash, document_type_id, created_by, modified_by, is_deleted, created_at, updated_at"

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.Name,
		&d.FileType,
		&d.StoragePath,
		&d.Size,
		&d.ContentHash,
		&d.DocumentTypeID,
		&d.CreatedBy,
		&d.ModifiedBy,
		&d.IsDeleted,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, name, file_type, storage_path, size, content_hash, document_type_id, created_by, modified_by, is_deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.Name,
		doc.FileType,
		doc.StoragePath,
		doc.Size,
		doc.ContentHash,
		doc.DocumentTypeID,
		doc.CreatedBy,
		doc.ModifiedBy,
		doc.IsDeleted,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	return scanDocument(row)
}

// FindByID fetches a single non-deleted document along with its versions and
// metadata rows.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE id = $1 AND is_deleted = FALSE
	`
	d, err := scanDocument(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		return nil, err
	}

	if d.Versions, err = r.versionsOf(ctx, id); err != nil {
		return nil, err
	}
	if d.Metadata, err = r.metadataOf(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *DocumentPostgres) versionsOf(ctx context.Context, docID string) ([]model.DocumentVersion, error) {
	const q = `
		SELECT id, document_id, version_number, storage_path, content_hash, created_by, created_at
		FROM document_versions
		WHERE document_id = $1
		ORDER BY version_number ASC
	`
	rows, err := r.db.QueryContext(ctx, q, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	versions := make([]model.DocumentVersion, 0)
	for rows.Next() {
		var v model.DocumentVersion
		if err := rows.Scan(
			&v.ID,
			&v.DocumentID,
			&v.VersionNumber,
			&v.StoragePath,
			&v.ContentHash,
			&v.CreatedBy,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

func (r *DocumentPostgres) metadataOf(ctx context.Context, docID string) ([]model.DocumentMetadata, error) {
	const q = `
		SELECT id, document_id, key, value, data_type, created_at, updated_at
		FROM document_metadata
		WHERE document_id = $1
		ORDER BY key ASC
	`
	rows, err := r.db.QueryContext(ctx, q, docID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	metadata := make([]model.DocumentMetadata, 0)
	for rows.Next() {
		var m model.DocumentMetadata
		if err := rows.Scan(
			&m.ID,
			&m.DocumentID,
			&m.Key,
			&m.Value,
			&m.DataType,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, err
		}
		metadata = append(metadata, m)
	}
	return metadata, rows.Err()
}

// List returns non-deleted documents using LIMIT/OFFSET pagination and a total count.
func (r *DocumentPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	const qCount = `SELECT COUNT(*) FROM documents WHERE is_deleted = FALSE`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + documentColumns + `
		FROM documents
		WHERE is_deleted = FALSE
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// Update applies the provided fields of upd, records the acting user and
// bumps updated_at, all in one statement. document_type_id is nullable, so a
// COALESCE would make an explicit null indistinguishable from "unchanged";
// the presence flag drives a CASE instead. Returns sql.ErrNoRows when no
// non-deleted row matches.
func (r *DocumentPostgres) Update(ctx context.Context, id string, upd model.DocumentUpdate) (*model.Document, error) {
	const q = `
		UPDATE documents
		SET name             = COALESCE($2, name),
		    document_type_id = CASE WHEN $4 THEN $3::uuid ELSE document_type_id END,
		    is_deleted       = COALESCE($5, is_deleted),
		    modified_by      = $6,
		    updated_at       = $7
		WHERE id = $1 AND is_deleted = FALSE
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		id,
		upd.Name,
		upd.DocumentTypeID.Value,
		upd.DocumentTypeID.Set,
		upd.IsDeleted,
		upd.ModifiedBy,
		time.Now().UTC(),
	)
	return scanDocument(row)
}

// SoftDelete marks a document deleted. The row and its stored object are kept.
func (r *DocumentPostgres) SoftDelete(ctx context.Context, id string, modifiedBy string) error {
	const q = `
		UPDATE documents
		SET is_deleted = TRUE, modified_by = $2, updated_at = $3
		WHERE id = $1 AND is_deleted = FALSE
	`
	res, err := r.db.ExecContext(ctx, q, id, modifiedBy, time.Now().UTC())
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
