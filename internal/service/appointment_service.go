package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/port"
)

// CreateAppointmentInput is the DTO for booking an appointment.
type CreateAppointmentInput struct {
	CustomerID   uuid.UUID  `json:"customer_id" binding:"required"`
	VehicleID    *uuid.UUID `json:"vehicle_id"`
	ScheduledAt  time.Time  `json:"scheduled_at" binding:"required"`
	DurationMins int        `json:"duration_mins" binding:"required,min=15"`
	Notes        string     `json:"notes"`
}

// UpdateAppointmentInput is the DTO for rescheduling or annotating an
// appointment.
type UpdateAppointmentInput struct {
	ScheduledAt  *time.Time                `json:"scheduled_at"`
	DurationMins *int                      `json:"duration_mins"`
	Status       *domain.AppointmentStatus `json:"status"`
	Notes        *string                   `json:"notes"`
}

// AppointmentService defines the scheduling contract.
type AppointmentService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateAppointmentInput) (*domain.Appointment, error)
	GetByID(ctx context.Context, tenantID, apptID uuid.UUID) (*domain.Appointment, error)
	ListByRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, offset, limit int) ([]domain.Appointment, int, error)
	Update(ctx context.Context, tenantID, apptID uuid.UUID, input UpdateAppointmentInput) (*domain.Appointment, error)
	Delete(ctx context.Context, tenantID, apptID uuid.UUID) error
}

type appointmentService struct {
	repo         port.AppointmentRepository
	customerRepo port.CustomerRepository
}

// NewAppointmentService creates a new AppointmentService implementation.
func NewAppointmentService(repo port.AppointmentRepository, customerRepo port.CustomerRepository) AppointmentService {
	return &appointmentService{repo: repo, customerRepo: customerRepo}
}

func (s *appointmentService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateAppointmentInput) (*domain.Appointment, error) {
	if input.ScheduledAt.Before(time.Now()) {
		return nil, domain.ErrAppointmentInPast
	}
	if _, err := s.customerRepo.GetByID(ctx, tenantID, input.CustomerID); err != nil {
		return nil, err
	}

	appt := &domain.Appointment{
		TenantID:     tenantID,
		CustomerID:   input.CustomerID,
		VehicleID:    input.VehicleID,
		ScheduledAt:  input.ScheduledAt.UTC(),
		DurationMins: input.DurationMins,
		Status:       domain.AppointmentStatusScheduled,
		Notes:        input.Notes,
		CreatedBy:    userID,
	}
	if err := s.repo.Create(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) GetByID(ctx context.Context, tenantID, apptID uuid.UUID) (*domain.Appointment, error) {
	return s.repo.GetByID(ctx, tenantID, apptID)
}

func (s *appointmentService) ListByRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, offset, limit int) ([]domain.Appointment, int, error) {
	return s.repo.ListByRange(ctx, tenantID, from, to, offset, limit)
}

func (s *appointmentService) Update(ctx context.Context, tenantID, apptID uuid.UUID, input UpdateAppointmentInput) (*domain.Appointment, error) {
	appt, err := s.repo.GetByID(ctx, tenantID, apptID)
	if err != nil {
		return nil, err
	}

	if input.ScheduledAt != nil {
		if input.ScheduledAt.Before(time.Now()) {
			return nil, domain.ErrAppointmentInPast
		}
		appt.ScheduledAt = input.ScheduledAt.UTC()
		// A rescheduled appointment gets a fresh reminder.
		appt.ReminderSent = false
	}
	if input.DurationMins != nil {
		appt.DurationMins = *input.DurationMins
	}
	if input.Status != nil {
		appt.Status = *input.Status
	}
	if input.Notes != nil {
		appt.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

func (s *appointmentService) Delete(ctx context.Context, tenantID, apptID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, apptID)
}
