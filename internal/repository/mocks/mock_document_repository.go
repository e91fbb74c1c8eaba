package mocks

import (
	"context"
	"time"

	"smartsuite/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) CreateWithVersion(ctx context.Context, doc *model.Document, v *model.DocumentVersion) (*model.Document, error) {
	args := m.Called(ctx, doc, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByID(ctx context.Context, id string) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentRepository) ListByParent(ctx context.Context, module, parentID string) ([]model.Document, error) {
	args := m.Called(ctx, module, parentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) UpdateCurrentFile(ctx context.Context, id, storageKey, contentType string, size int64) error {
	args := m.Called(ctx, id, storageKey, contentType, size)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateExpiry(ctx context.Context, id string, expiry *time.Time) error {
	args := m.Called(ctx, id, expiry)
	return args.Error(0)
}

func (m *MockDocumentRepository) UpdateAssignee(ctx context.Context, id string, assignee *string) error {
	args := m.Called(ctx, id, assignee)
	return args.Error(0)
}

func (m *MockDocumentRepository) MarkNotified(ctx context.Context, id string, t time.Time) error {
	args := m.Called(ctx, id, t)
	return args.Error(0)
}

func (m *MockDocumentRepository) ListExpiring(ctx context.Context, before time.Time) ([]model.Document, error) {
	args := m.Called(ctx, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) CreateVersion(ctx context.Context, v *model.DocumentVersion) (*model.DocumentVersion, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentVersion), args.Error(1)
}

func (m *MockDocumentRepository) ListVersions(ctx context.Context, documentID string) ([]model.DocumentVersion, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DocumentVersion), args.Error(1)
}
