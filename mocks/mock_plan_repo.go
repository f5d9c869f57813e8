package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockPlanRepo is a mock implementation of port.ServicePlanRepository.
type MockPlanRepo struct {
	mock.Mock
}

func (m *MockPlanRepo) Create(ctx context.Context, plan *domain.ServicePlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepo) GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.ServicePlan, error) {
	args := m.Called(ctx, tenantID, planID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServicePlan), args.Error(1)
}

func (m *MockPlanRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.ServicePlan, int, error) {
	args := m.Called(ctx, tenantID, activeOnly, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ServicePlan), args.Int(1), args.Error(2)
}

func (m *MockPlanRepo) Update(ctx context.Context, plan *domain.ServicePlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepo) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	args := m.Called(ctx, tenantID, planID)
	return args.Error(0)
}
