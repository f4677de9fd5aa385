package mocks

import (
	"context"

	"docms/internal/model"
	"docms/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentTypeService struct {
	mock.Mock
}

func (m *MockDocumentTypeService) Create(ctx context.Context, in service.CreateDocumentTypeInput) (*model.DocumentType, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeService) List(ctx context.Context, limit, offset int) (*service.DocumentTypeListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentTypeListResult), args.Error(1)
}

func (m *MockDocumentTypeService) Get(ctx context.Context, id string) (*model.DocumentType, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeService) Update(ctx context.Context, id string, in service.UpdateDocumentTypeInput) (*model.DocumentType, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentType), args.Error(1)
}

func (m *MockDocumentTypeService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
