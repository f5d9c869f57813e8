package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockJobCardRepo is a mock implementation of port.JobCardRepository.
type MockJobCardRepo struct {
	mock.Mock
}

func (m *MockJobCardRepo) Create(ctx context.Context, job *domain.JobCard, plans []domain.JobCardPlan) error {
	args := m.Called(ctx, job, plans)
	return args.Error(0)
}

func (m *MockJobCardRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.JobCard, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobCard), args.Error(1)
}

func (m *MockJobCardRepo) GetPlans(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.JobCardPlan, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobCardPlan), args.Error(1)
}

func (m *MockJobCardRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status domain.JobCardStatus, offset, limit int) ([]domain.JobCard, int, error) {
	args := m.Called(ctx, tenantID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobCard), args.Int(1), args.Error(2)
}

func (m *MockJobCardRepo) Update(ctx context.Context, job *domain.JobCard) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobCardRepo) SetPlans(ctx context.Context, tenantID, jobID uuid.UUID, plans []domain.JobCardPlan) error {
	args := m.Called(ctx, tenantID, jobID, plans)
	return args.Error(0)
}

func (m *MockJobCardRepo) NextJobNumber(ctx context.Context, tenantID uuid.UUID) (int, error) {
	args := m.Called(ctx, tenantID)
	return args.Int(0), args.Error(1)
}

func (m *MockJobCardRepo) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	args := m.Called(ctx, tenantID, jobID)
	return args.Error(0)
}
