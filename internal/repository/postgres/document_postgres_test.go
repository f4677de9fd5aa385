package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"docms/internal/model"
	"docms/internal/repository"
)

func documentRows(d *model.Document) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "file_type", "storage_path", "size", "content_hash",
		"document_type_id", "created_by", "modified_by", "is_deleted", "created_at", "updated_at",
	}).AddRow(
		d.ID, d.Name, d.FileType, d.StoragePath, d.Size, d.ContentHash,
		d.DocumentTypeID, d.CreatedBy, d.ModifiedBy, d.IsDeleted, d.CreatedAt, d.UpdatedAt,
	)
}

func emptyVersionRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "document_id", "version_number", "storage_path", "content_hash", "created_by", "created_at"})
}

func emptyMetadataRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "document_id", "key", "value", "data_type", "created_at", "updated_at"})
}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "doc-uuid",
		Name:        "Q3 report",
		FileType:    "pdf",
		StoragePath: "documents/2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824.pdf",
		Size:        123,
		ContentHash: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		CreatedBy:   "actor-uuid",
		ModifiedBy:  "actor-uuid",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Name, doc.FileType, doc.StoragePath, doc.Size, doc.ContentHash,
			nil, doc.CreatedBy, doc.ModifiedBy, doc.IsDeleted, doc.CreatedAt, doc.UpdatedAt).
		WillReturnRows(documentRows(doc))

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ContentHash, result.ContentHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found with versions and metadata", func(t *testing.T) {
		now := time.Now()
		doc := &model.Document{ID: "doc-id", Name: "report", FileType: "pdf", StoragePath: "documents/abc.pdf",
			Size: 100, ContentHash: "abc", CreatedBy: "actor", ModifiedBy: "actor", CreatedAt: now, UpdatedAt: now}

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND is_deleted = FALSE").
			WithArgs("doc-id").
			WillReturnRows(documentRows(doc))
		mock.ExpectQuery("SELECT (.+) FROM document_versions").
			WithArgs("doc-id").
			WillReturnRows(emptyVersionRows().
				AddRow("ver-1", "doc-id", 1, "documents/abc.pdf", "abc", "actor", now))
		mock.ExpectQuery("SELECT (.+) FROM document_metadata").
			WithArgs("doc-id").
			WillReturnRows(emptyMetadataRows().
				AddRow("meta-1", "doc-id", "department", "finance", "string", now, now))

		got, err := repo.FindByID(ctx, "doc-id")

		assert.NoError(t, err)
		assert.Equal(t, "doc-id", got.ID)
		assert.Len(t, got.Versions, 1)
		assert.Equal(t, 1, got.Versions[0].VersionNumber)
		assert.Len(t, got.Metadata, 1)
		assert.Equal(t, "department", got.Metadata[0].Key)
	})

	t.Run("not found or deleted", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = (.+) AND is_deleted = FALSE").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		got, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})
}

func TestDocumentPostgres_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM documents WHERE is_deleted = FALSE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	now := time.Now()
	doc := &model.Document{ID: "doc-id", Name: "report", FileType: "pdf", StoragePath: "documents/abc.pdf",
		Size: 100, ContentHash: "abc", CreatedBy: "actor", ModifiedBy: "actor", CreatedAt: now, UpdatedAt: now}

	mock.ExpectQuery("SELECT (.+) FROM documents WHERE is_deleted = FALSE ORDER BY").
		WithArgs(10, 0).
		WillReturnRows(documentRows(doc))

	res, err := repo.List(ctx, repository.PageQuery{Limit: 10, Offset: 0})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	assert.Len(t, res.Items, 1)
	// Listing does not fan out to versions/metadata.
	assert.Empty(t, res.Items[0].Versions)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("renames and records the actor", func(t *testing.T) {
		name := "renamed"
		now := time.Now()
		doc := &model.Document{ID: "doc-id", Name: name, FileType: "pdf", StoragePath: "documents/abc.pdf",
			Size: 100, ContentHash: "abc", CreatedBy: "creator", ModifiedBy: "editor", CreatedAt: now, UpdatedAt: now}

		mock.ExpectQuery("UPDATE documents SET").
			WithArgs("doc-id", name, nil, false, nil, "editor", sqlmock.AnyArg()).
			WillReturnRows(documentRows(doc))

		got, err := repo.Update(ctx, "doc-id", model.DocumentUpdate{Name: &name, ModifiedBy: "editor"})

		assert.NoError(t, err)
		assert.Equal(t, name, got.Name)
		assert.Equal(t, "editor", got.ModifiedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit null clears the type reference", func(t *testing.T) {
		now := time.Now()
		doc := &model.Document{ID: "doc-id", Name: "report", FileType: "pdf", StoragePath: "documents/abc.pdf",
			Size: 100, ContentHash: "abc", CreatedBy: "creator", ModifiedBy: "editor", CreatedAt: now, UpdatedAt: now}

		// Value nil with the presence flag true: the column is assigned NULL
		// instead of keeping its old value.
		mock.ExpectQuery("UPDATE documents SET").
			WithArgs("doc-id", nil, nil, true, nil, "editor", sqlmock.AnyArg()).
			WillReturnRows(documentRows(doc))

		got, err := repo.Update(ctx, "doc-id", model.DocumentUpdate{
			DocumentTypeID: model.NullableString{Set: true},
			ModifiedBy:     "editor",
		})

		assert.NoError(t, err)
		assert.Nil(t, got.DocumentTypeID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty update leaves fields alone but still bumps updated_at", func(t *testing.T) {
		now := time.Now()
		doc := &model.Document{ID: "doc-id", Name: "report", FileType: "pdf", StoragePath: "documents/abc.pdf",
			Size: 100, ContentHash: "abc", CreatedBy: "creator", ModifiedBy: "editor", CreatedAt: now, UpdatedAt: now}

		// Every optional argument is NULL/false, yet updated_at is bound.
		mock.ExpectQuery("UPDATE documents SET").
			WithArgs("doc-id", nil, nil, false, nil, "editor", sqlmock.AnyArg()).
			WillReturnRows(documentRows(doc))

		got, err := repo.Update(ctx, "doc-id", model.DocumentUpdate{ModifiedBy: "editor"})

		assert.NoError(t, err)
		assert.Equal(t, "editor", got.ModifiedBy)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		name := "renamed"
		mock.ExpectQuery("UPDATE documents SET").
			WithArgs("missing", name, nil, false, nil, "editor", sqlmock.AnyArg()).
			WillReturnError(sql.ErrNoRows)

		got, err := repo.Update(ctx, "missing", model.DocumentUpdate{Name: &name, ModifiedBy: "editor"})

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, got)
	})
}

func TestDocumentPostgres_SoftDelete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents").
			WithArgs("doc-id", "editor", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.SoftDelete(ctx, "doc-id", "editor"))
	})

	t.Run("already deleted", func(t *testing.T) {
		mock.ExpectExec("UPDATE documents").
			WithArgs("doc-id", "editor", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.SoftDelete(ctx, "doc-id", "editor"), sql.ErrNoRows)
	})
}
