package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockVehicleRepo is a mock implementation of port.VehicleRepository.
type MockVehicleRepo struct {
	mock.Mock
}

func (m *MockVehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepo) GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, tenantID, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) GetByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNo string) (*domain.Vehicle, error) {
	args := m.Called(ctx, tenantID, registrationNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]domain.Vehicle, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vehicle, int, error) {
	args := m.Called(ctx, tenantID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Vehicle), args.Int(1), args.Error(2)
}

func (m *MockVehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepo) Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	args := m.Called(ctx, tenantID, vehicleID)
	return args.Error(0)
}
