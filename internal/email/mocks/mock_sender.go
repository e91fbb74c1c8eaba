package mocks

import (
	"context"

	"smartsuite/internal/email"

	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, r email.Reminder) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}
