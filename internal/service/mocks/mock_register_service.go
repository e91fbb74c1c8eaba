package mocks

import (
	"context"

	"smartsuite/internal/model"
	"smartsuite/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockRegisterService struct {
	mock.Mock
}

func (m *MockRegisterService) Create(ctx context.Context, module string, in service.RecordInput, userID string) (*model.RegisterRecord, error) {
	args := m.Called(ctx, module, in, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegisterRecord), args.Error(1)
}

func (m *MockRegisterService) Get(ctx context.Context, module, id string) (*model.RegisterRecord, error) {
	args := m.Called(ctx, module, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegisterRecord), args.Error(1)
}

func (m *MockRegisterService) List(ctx context.Context, module string, includeArchived bool, limit, offset int) (*service.RecordListResult, error) {
	args := m.Called(ctx, module, includeArchived, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecordListResult), args.Error(1)
}

func (m *MockRegisterService) Update(ctx context.Context, module, id string, in service.RecordInput, userID string) (*model.RegisterRecord, error) {
	args := m.Called(ctx, module, id, in, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RegisterRecord), args.Error(1)
}

func (m *MockRegisterService) Archive(ctx context.Context, module, id, userID string) error {
	args := m.Called(ctx, module, id, userID)
	return args.Error(0)
}

func (m *MockRegisterService) Restore(ctx context.Context, module, id, userID string) error {
	args := m.Called(ctx, module, id, userID)
	return args.Error(0)
}

func (m *MockRegisterService) Delete(ctx context.Context, module, id string) error {
	args := m.Called(ctx, module, id)
	return args.Error(0)
}

type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, userID string) (model.NotificationSettings, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(model.NotificationSettings), args.Error(1)
}

func (m *MockSettingsService) Update(ctx context.Context, userID string, in service.SettingsUpdate) (model.NotificationSettings, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(model.NotificationSettings), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) ExportRegister(ctx context.Context, module string) ([]byte, string, error) {
	args := m.Called(ctx, module)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.String(1), args.Error(2)
}

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) Run(ctx context.Context) (service.SweepResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(service.SweepResult), args.Error(1)
}
