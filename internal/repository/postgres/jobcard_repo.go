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

type jobCardRepo struct {
	db *sqlx.DB
}

// NewJobCardRepo creates a new PostgreSQL-backed JobCardRepository.
func NewJobCardRepo(db *sqlx.DB) port.JobCardRepository {
	return &jobCardRepo{db: db}
}

func insertJobCardPlans(ctx context.Context, tx *sqlx.Tx, job *domain.JobCard, plans []domain.JobCardPlan) error {
	now := time.Now().UTC()
	for i := range plans {
		plan := &plans[i]
		plan.JobCardID = job.ID
		plan.TenantID = job.TenantID
		plan.AddedAt = now

		_, err := tx.ExecContext(ctx,
			`INSERT INTO job_card_plans (job_card_id, service_plan_id, tenant_id, quantity, added_at)
			 VALUES ($1, $2, $3, $4, $5)`,
			plan.JobCardID, plan.ServicePlanID, plan.TenantID, plan.Quantity, plan.AddedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *jobCardRepo) Create(ctx context.Context, job *domain.JobCard, plans []domain.JobCardPlan) error {
	job.ID = uuid.New()
	now := time.Now().UTC()
	job.CreatedAt = now
	job.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("jobCardRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO job_cards
		(id, tenant_id, job_number, customer_id, vehicle_id, status, notes, assigned_to,
		 invoice_id, opened_at, completed_at, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err = tx.ExecContext(ctx, query,
		job.ID, job.TenantID, job.JobNumber, job.CustomerID, job.VehicleID,
		job.Status, job.Notes, job.AssignedTo, job.InvoiceID, job.OpenedAt,
		job.CompletedAt, job.CreatedBy, job.CreatedAt, job.UpdatedAt)
	if err != nil {
		return fmt.Errorf("jobCardRepo.Create: %w", err)
	}

	if err := insertJobCardPlans(ctx, tx, job, plans); err != nil {
		return fmt.Errorf("jobCardRepo.Create plans: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("jobCardRepo.Create commit: %w", err)
	}
	return nil
}

func (r *jobCardRepo) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*domain.JobCard, error) {
	var job domain.JobCard
	err := r.db.GetContext(ctx, &job,
		"SELECT * FROM job_cards WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobCardNotFound
		}
		return nil, fmt.Errorf("jobCardRepo.GetByID: %w", err)
	}
	return &job, nil
}

func (r *jobCardRepo) GetPlans(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.JobCardPlan, error) {
	var plans []domain.JobCardPlan
	err := r.db.SelectContext(ctx, &plans,
		"SELECT * FROM job_card_plans WHERE job_card_id = $1 AND tenant_id = $2 ORDER BY added_at",
		jobID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("jobCardRepo.GetPlans: %w", err)
	}
	return plans, nil
}

func (r *jobCardRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, status domain.JobCardStatus, offset, limit int) ([]domain.JobCard, int, error) {
	where := "WHERE tenant_id = $1"
	args := []interface{}{tenantID}
	if status != "" {
		where += " AND status = $2"
		args = append(args, status)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM job_cards "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("jobCardRepo.ListByTenant count: %w", err)
	}

	argN := len(args) + 1
	query := fmt.Sprintf("SELECT * FROM job_cards %s ORDER BY opened_at DESC LIMIT $%d OFFSET $%d",
		where, argN, argN+1)
	args = append(args, limit, offset)

	var jobs []domain.JobCard
	err = r.db.SelectContext(ctx, &jobs, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("jobCardRepo.ListByTenant: %w", err)
	}
	return jobs, total, nil
}

func (r *jobCardRepo) Update(ctx context.Context, job *domain.JobCard) error {
	job.UpdatedAt = time.Now().UTC()

	query := `UPDATE job_cards SET status = $1, notes = $2, assigned_to = $3,
		invoice_id = $4, completed_at = $5, updated_at = $6 WHERE id = $7 AND tenant_id = $8`

	result, err := r.db.ExecContext(ctx, query,
		job.Status, job.Notes, job.AssignedTo, job.InvoiceID, job.CompletedAt,
		job.UpdatedAt, job.ID, job.TenantID)
	if err != nil {
		return fmt.Errorf("jobCardRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobCardNotFound
	}
	return nil
}

func (r *jobCardRepo) SetPlans(ctx context.Context, tenantID, jobID uuid.UUID, plans []domain.JobCardPlan) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("jobCardRepo.SetPlans begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM job_card_plans WHERE job_card_id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		return fmt.Errorf("jobCardRepo.SetPlans delete: %w", err)
	}

	job := &domain.JobCard{ID: jobID, TenantID: tenantID}
	if err := insertJobCardPlans(ctx, tx, job, plans); err != nil {
		return fmt.Errorf("jobCardRepo.SetPlans insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("jobCardRepo.SetPlans commit: %w", err)
	}
	return nil
}

// NextJobNumber increments the tenant's job counter atomically and returns
// the new sequence value.
func (r *jobCardRepo) NextJobNumber(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var next int
	err := r.db.GetContext(ctx, &next,
		`INSERT INTO job_counters (tenant_id, value) VALUES ($1, 1)
		 ON CONFLICT (tenant_id) DO UPDATE SET value = job_counters.value + 1
		 RETURNING value`, tenantID)
	if err != nil {
		return 0, fmt.Errorf("jobCardRepo.NextJobNumber: %w", err)
	}
	return next, nil
}

func (r *jobCardRepo) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM job_cards WHERE id = $1 AND tenant_id = $2", jobID, tenantID)
	if err != nil {
		return fmt.Errorf("jobCardRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrJobCardNotFound
	}
	return nil
}
