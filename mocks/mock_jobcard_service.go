package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
	"detos/internal/service"
)

// MockJobCardService is a mock implementation of service.JobCardService.
type MockJobCardService struct {
	mock.Mock
}

func (m *MockJobCardService) Create(ctx context.Context, tenantID, userID uuid.UUID, input service.CreateJobCardInput) (*service.JobCardDetail, error) {
	args := m.Called(ctx, tenantID, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JobCardDetail), args.Error(1)
}

func (m *MockJobCardService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*service.JobCardDetail, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JobCardDetail), args.Error(1)
}

func (m *MockJobCardService) List(ctx context.Context, tenantID uuid.UUID, status domain.JobCardStatus, offset, limit int) ([]domain.JobCard, int, error) {
	args := m.Called(ctx, tenantID, status, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.JobCard), args.Int(1), args.Error(2)
}

func (m *MockJobCardService) Update(ctx context.Context, tenantID, jobID uuid.UUID, input service.UpdateJobCardInput) (*service.JobCardDetail, error) {
	args := m.Called(ctx, tenantID, jobID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.JobCardDetail), args.Error(1)
}

func (m *MockJobCardService) ChangeStatus(ctx context.Context, tenantID, jobID uuid.UUID, status domain.JobCardStatus) (*domain.JobCard, error) {
	args := m.Called(ctx, tenantID, jobID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobCard), args.Error(1)
}

func (m *MockJobCardService) GenerateInvoice(ctx context.Context, tenantID, userID, jobID uuid.UUID) (*service.InvoiceDetail, error) {
	args := m.Called(ctx, tenantID, userID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.InvoiceDetail), args.Error(1)
}

func (m *MockJobCardService) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	args := m.Called(ctx, tenantID, jobID)
	return args.Error(0)
}
