package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"detos/internal/domain"
	"detos/internal/port"
)

type appointmentRepo struct {
	db *sqlx.DB
}

// NewAppointmentRepo creates a new PostgreSQL-backed AppointmentRepository.
func NewAppointmentRepo(db *sqlx.DB) port.AppointmentRepository {
	return &appointmentRepo{db: db}
}

func (r *appointmentRepo) Create(ctx context.Context, appt *domain.Appointment) error {
	appt.ID = uuid.New()
	now := time.Now().UTC()
	appt.CreatedAt = now
	appt.UpdatedAt = now

	query := `INSERT INTO appointments
		(id, tenant_id, customer_id, vehicle_id, scheduled_at, duration_mins, status,
		 notes, reminder_sent, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		appt.ID, appt.TenantID, appt.CustomerID, appt.VehicleID, appt.ScheduledAt,
		appt.DurationMins, appt.Status, appt.Notes, appt.ReminderSent,
		appt.CreatedBy, appt.CreatedAt, appt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("appointmentRepo.Create: %w", err)
	}
	return nil
}

func (r *appointmentRepo) GetByID(ctx context.Context, tenantID, apptID uuid.UUID) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := r.db.GetContext(ctx, &appt,
		"SELECT * FROM appointments WHERE id = $1 AND tenant_id = $2", apptID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("appointmentRepo.GetByID: %w", err)
	}
	return &appt, nil
}

func (r *appointmentRepo) ListByRange(ctx context.Context, tenantID uuid.UUID, from, to time.Time, offset, limit int) ([]domain.Appointment, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM appointments WHERE tenant_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3",
		tenantID, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("appointmentRepo.ListByRange count: %w", err)
	}

	var appts []domain.Appointment
	err = r.db.SelectContext(ctx, &appts,
		`SELECT * FROM appointments
		 WHERE tenant_id = $1 AND scheduled_at >= $2 AND scheduled_at < $3
		 ORDER BY scheduled_at LIMIT $4 OFFSET $5`,
		tenantID, from, to, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("appointmentRepo.ListByRange: %w", err)
	}
	return appts, total, nil
}

func (r *appointmentRepo) Update(ctx context.Context, appt *domain.Appointment) error {
	appt.UpdatedAt = time.Now().UTC()

	query := `UPDATE appointments SET scheduled_at = $1, duration_mins = $2, status = $3,
		notes = $4, reminder_sent = $5, updated_at = $6 WHERE id = $7 AND tenant_id = $8`

	result, err := r.db.ExecContext(ctx, query,
		appt.ScheduledAt, appt.DurationMins, appt.Status, appt.Notes,
		appt.ReminderSent, appt.UpdatedAt, appt.ID, appt.TenantID)
	if err != nil {
		return fmt.Errorf("appointmentRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

func (r *appointmentRepo) Delete(ctx context.Context, tenantID, apptID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM appointments WHERE id = $1 AND tenant_id = $2", apptID, tenantID)
	if err != nil {
		return fmt.Errorf("appointmentRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrAppointmentNotFound
	}
	return nil
}

// ClaimDueReminders flips reminder_sent on up to limit appointments entering
// their reminder window. The SKIP LOCKED subselect keeps concurrent workers
// from claiming the same rows.
func (r *appointmentRepo) ClaimDueReminders(ctx context.Context, leadHours, limit int) ([]domain.Appointment, error) {
	now := time.Now().UTC()
	windowEnd := now.Add(time.Duration(leadHours) * time.Hour)

	query := `UPDATE appointments SET reminder_sent = TRUE, updated_at = $1
		WHERE id IN (
			SELECT id FROM appointments
			WHERE reminder_sent = FALSE
			  AND status IN ($2, $3)
			  AND scheduled_at > $1
			  AND scheduled_at <= $4
			ORDER BY scheduled_at
			LIMIT $5
			FOR UPDATE SKIP LOCKED
		)
		RETURNING *`

	var appts []domain.Appointment
	err := r.db.SelectContext(ctx, &appts, query,
		now, domain.AppointmentStatusScheduled, domain.AppointmentStatusConfirmed,
		windowEnd, limit)
	if err != nil {
		return nil, fmt.Errorf("appointmentRepo.ClaimDueReminders: %w", err)
	}
	return appts, nil
}
