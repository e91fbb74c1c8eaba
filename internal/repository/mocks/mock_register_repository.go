package mocks

import (
	"context"

	"smartsuite/internal/model"
	"smartsuite/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockRegisterRepository struct {
	mock.Mock
}

func (m *MockRegisterRepository) Create(ctx context.Context, rec *model.RegisterRecord) (*model.RegisterRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegisterRecord), args.Error(1)
}

func (m *MockRegisterRepository) FindByID(ctx context.Context, module, id string) (*model.RegisterRecord, error) {
	args := m.Called(ctx, module, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegisterRecord), args.Error(1)
}

func (m *MockRegisterRepository) List(ctx context.Context, module string, includeArchived bool, pq repository.PageQuery) (*repository.PageResult[model.RegisterRecord], error) {
	args := m.Called(ctx, module, includeArchived, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.RegisterRecord]), args.Error(1)
}

func (m *MockRegisterRepository) ListAll(ctx context.Context, module string) ([]model.RegisterRecord, error) {
	args := m.Called(ctx, module)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RegisterRecord), args.Error(1)
}

func (m *MockRegisterRepository) Update(ctx context.Context, rec *model.RegisterRecord) (*model.RegisterRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegisterRecord), args.Error(1)
}

func (m *MockRegisterRepository) SetArchived(ctx context.Context, module, id string, archived bool, userID string) error {
	args := m.Called(ctx, module, id, archived, userID)
	return args.Error(0)
}

func (m *MockRegisterRepository) DeleteCascade(ctx context.Context, module, id string) ([]string, error) {
	args := m.Called(ctx, module, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
