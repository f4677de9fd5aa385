package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"docms/internal/model"
	"docms/internal/repository"
	"docms/internal/storage"
)

// storageKeyPrefix is the object-store namespace for ingested documents.
const storageKeyPrefix = "documents"

// UploadDocumentInput carries an upload payload plus its metadata.
// OriginalFilename is used only to extract the extension; the storage key is
// derived from the content digest. ActorID identifies the authenticated
// principal performing the upload.
type UploadDocumentInput struct {
	Reader           io.Reader
	OriginalFilename string
	ContentType      string
	Name             string
	FileType         string
	DocumentTypeID   *string
	ActorID          string
}

// UpdateDocumentInput is a sparse update; nil fields are left unchanged.
// DocumentTypeID is three-state so an explicit null clears the reference
// instead of being dropped as "not provided".
type UpdateDocumentInput struct {
	Name           *string
	DocumentTypeID model.NullableString
	IsDeleted      *bool
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"data"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Upload ingests the content: hashes it, stores it under a
	// content-addressed key, then saves the metadata record. If the record
	// save fails the stored object is deleted again, so ingestion is
	// all-or-nothing.
	Upload(ctx context.Context, in UploadDocumentInput) (*model.Document, error)

	// List returns non-deleted documents using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Get returns a single non-deleted document by its ID, including its
	// versions and metadata.
	Get(ctx context.Context, id string) (*model.Document, error)

	// Update applies the provided fields on behalf of actorID.
	Update(ctx context.Context, id string, actorID string, in UpdateDocumentInput) (*model.Document, error)

	// Delete soft-deletes a document on behalf of actorID. The stored object
	// is kept; only the record is flagged.
	Delete(ctx context.Context, id string, actorID string) error
}

type documentService struct {
	store        storage.Storage
	repo         repository.DocumentRepository
	defaultLimit int
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, defaultLimit int) DocumentService {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &documentService{store: store, repo: repo, defaultLimit: defaultLimit}
}

func (s *documentService) Upload(ctx context.Context, in UploadDocumentInput) (*model.Document, error) {
	if in.Reader == nil {
		return nil, ErrReaderNil
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: document name is required", ErrValidation)
	}
	if in.FileType == "" {
		return nil, fmt.Errorf("%w: file type is required", ErrValidation)
	}
	if in.ActorID == "" {
		return nil, fmt.Errorf("%w: actor id is required", ErrValidation)
	}

	content, err := io.ReadAll(in.Reader)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}

	// Content-addressed key: identical bytes always map to the same object,
	// so concurrent uploads cannot collide on distinct content.
	sum := sha256.Sum256(content)
	digest := hex.EncodeToString(sum[:])
	key := path.Join(storageKeyPrefix, digest+filepath.Ext(in.OriginalFilename))

	_, err = s.store.Put(ctx, key, bytes.NewReader(content), storage.PutObjectOptions{
		Size:        int64(len(content)),
		ContentType: in.ContentType,
		Metadata: map[string]string{
			"original-filename": in.OriginalFilename,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	now := time.Now().UTC()
	doc := &model.Document{
		ID:             uuid.New().String(),
		Name:           in.Name,
		FileType:       in.FileType,
		StoragePath:    key,
		Size:           int64(len(content)),
		ContentHash:    digest,
		DocumentTypeID: in.DocumentTypeID,
		CreatedBy:      in.ActorID,
		ModifiedBy:     in.ActorID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	stored, err := s.repo.Create(ctx, doc)
	if err != nil {
		// Compensating action: without the record the object is an orphan.
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}
	return stored, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &DocumentListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Update(ctx context.Context, id string, actorID string, in UpdateDocumentInput) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	if actorID == "" {
		return nil, fmt.Errorf("%w: actor id is required", ErrValidation)
	}

	doc, err := s.repo.Update(ctx, id, model.DocumentUpdate{
		Name:           in.Name,
		DocumentTypeID: in.DocumentTypeID,
		IsDeleted:      in.IsDeleted,
		ModifiedBy:     actorID,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Delete(ctx context.Context, id string, actorID string) error {
	if id == "" {
		return ErrIDRequired
	}
	if actorID == "" {
		return fmt.Errorf("%w: actor id is required", ErrValidation)
	}
	if err := s.repo.SoftDelete(ctx, id, actorID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
