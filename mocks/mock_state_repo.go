package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockStateRepo is a mock implementation of port.StateRepository.
type MockStateRepo struct {
	mock.Mock
}

func (m *MockStateRepo) GetByID(ctx context.Context, id int) (*domain.State, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.State), args.Error(1)
}

func (m *MockStateRepo) List(ctx context.Context) ([]domain.State, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.State), args.Error(1)
}
