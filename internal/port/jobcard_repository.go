package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"detos/internal/domain"
)

// JobCardRepository defines the contract for job card persistence.
type JobCardRepository interface {
	Create(ctx context.Context, job *domain.JobCard, plans []domain.JobCardPlan) error
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.JobCard, error)
	GetPlans(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.JobCardPlan, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, status domain.JobCardStatus, offset, limit int) ([]domain.JobCard, int, error)
	Update(ctx context.Context, job *domain.JobCard) error
	SetPlans(ctx context.Context, tenantID, jobID uuid.UUID, plans []domain.JobCardPlan) error
	NextJobNumber(ctx context.Context, tenantID uuid.UUID) (int, error)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

// AppointmentRepository defines the contract for appointment persistence.
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) error
	GetByID(ctx context.Context, tenantID, apptID uuid.UUID) (*domain.Appointment, error)
	ListByRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, offset, limit int) ([]domain.Appointment, int, error)
	Update(ctx context.Context, appt *domain.Appointment) error
	Delete(ctx context.Context, tenantID, apptID uuid.UUID) error
	// ClaimDueReminders atomically marks up to limit appointments whose
	// reminder window has opened as sent, returning the claimed rows. Safe to
	// call from a polling worker.
	ClaimDueReminders(ctx context.Context, leadHours, limit int) ([]domain.Appointment, error)
}
