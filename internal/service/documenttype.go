package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"docms/internal/model"
	"docms/internal/repository"
)

// CreateDocumentTypeInput carries the fields for a new document type.
// Description and SchemaDefinition are optional.
type CreateDocumentTypeInput struct {
	Name             string
	Description      string
	SchemaDefinition string
}

// UpdateDocumentTypeInput is a sparse update; nil fields are left unchanged.
type UpdateDocumentTypeInput struct {
	Name             *string
	Description      *string
	SchemaDefinition *string
	IsActive         *bool
}

// DocumentTypeListResult is the service-level DTO for paginated document types.
type DocumentTypeListResult struct {
	Items []model.DocumentType `json:"data"`
	Total int                  `json:"total"`
}

// DocumentTypeService defines the use cases for managing document types.
type DocumentTypeService interface {
	Create(ctx context.Context, in CreateDocumentTypeInput) (*model.DocumentType, error)
	List(ctx context.Context, limit, offset int) (*DocumentTypeListResult, error)
	Get(ctx context.Context, id string) (*model.DocumentType, error)
	Update(ctx context.Context, id string, in UpdateDocumentTypeInput) (*model.DocumentType, error)
	Delete(ctx context.Context, id string) error
}

type documentTypeService struct {
	repo         repository.DocumentTypeRepository
	defaultLimit int
}

// NewDocumentTypeService constructs a new DocumentTypeService.
func NewDocumentTypeService(repo repository.DocumentTypeRepository, defaultLimit int) DocumentTypeService {
	if defaultLimit <= 0 {
		defaultLimit = 20
	}
	return &documentTypeService{repo: repo, defaultLimit: defaultLimit}
}

func (s *documentTypeService) Create(ctx context.Context, in CreateDocumentTypeInput) (*model.DocumentType, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}

	now := time.Now().UTC()
	dt := &model.DocumentType{
		ID:               uuid.New().String(),
		Name:             in.Name,
		Description:      in.Description,
		SchemaDefinition: in.SchemaDefinition,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	stored, err := s.repo.Create(ctx, dt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: document type name already taken", ErrDuplicate)
		}
		return nil, fmt.Errorf("create document type: %w", err)
	}
	return stored, nil
}

func (s *documentTypeService) List(ctx context.Context, limit, offset int) (*DocumentTypeListResult, error) {
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
	return &DocumentTypeListResult{Items: res.Items, Total: res.Total}, nil
}

func (s *documentTypeService) Get(ctx context.Context, id string) (*model.DocumentType, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	dt, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dt, nil
}

func (s *documentTypeService) Update(ctx context.Context, id string, in UpdateDocumentTypeInput) (*model.DocumentType, error) {
	if id == "" {
		return nil, ErrIDRequired
	}

	dt, err := s.repo.Update(ctx, id, model.DocumentTypeUpdate{
		Name:             in.Name,
		Description:      in.Description,
		SchemaDefinition: in.SchemaDefinition,
		IsActive:         in.IsActive,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: document type name already taken", ErrDuplicate)
		}
		return nil, err
	}
	return dt, nil
}

func (s *documentTypeService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
