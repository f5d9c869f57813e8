package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockAppointmentRepo is a mock implementation of port.AppointmentRepository.
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(ctx context.Context, appt *domain.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepo) GetByID(ctx context.Context, tenantID, apptID uuid.UUID) (*domain.Appointment, error) {
	args := m.Called(ctx, tenantID, apptID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Appointment), args.Error(1)
}

func (m *MockAppointmentRepo) ListByRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, offset, limit int) ([]domain.Appointment, int, error) {
	args := m.Called(ctx, tenantID, from, to, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Appointment), args.Int(1), args.Error(2)
}

func (m *MockAppointmentRepo) Update(ctx context.Context, appt *domain.Appointment) error {
	args := m.Called(ctx, appt)
	return args.Error(0)
}

func (m *MockAppointmentRepo) Delete(ctx context.Context, tenantID, apptID uuid.UUID) error {
	args := m.Called(ctx, tenantID, apptID)
	return args.Error(0)
}

func (m *MockAppointmentRepo) ClaimDueReminders(ctx context.Context, leadHours, limit int) ([]domain.Appointment, error) {
	args := m.Called(ctx, leadHours, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Appointment), args.Error(1)
}
