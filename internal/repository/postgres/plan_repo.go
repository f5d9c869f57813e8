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

type planRepo struct {
	db *sqlx.DB
}

// NewPlanRepo creates a new PostgreSQL-backed ServicePlanRepository.
func NewPlanRepo(db *sqlx.DB) port.ServicePlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) Create(ctx context.Context, plan *domain.ServicePlan) error {
	plan.ID = uuid.New()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	query := `INSERT INTO service_plans (id, tenant_id, plan_name, sac_code, price, gst_rate, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		plan.ID, plan.TenantID, plan.PlanName, plan.SACCode, plan.Price,
		plan.GSTRate, plan.IsActive, plan.CreatedAt, plan.UpdatedAt)
	if err != nil {
		return fmt.Errorf("planRepo.Create: %w", err)
	}
	return nil
}

func (r *planRepo) GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.ServicePlan, error) {
	var plan domain.ServicePlan
	err := r.db.GetContext(ctx, &plan,
		"SELECT * FROM service_plans WHERE id = $1 AND tenant_id = $2", planID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, fmt.Errorf("planRepo.GetByID: %w", err)
	}
	return &plan, nil
}

func (r *planRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.ServicePlan, int, error) {
	where := "WHERE tenant_id = $1"
	args := []interface{}{tenantID}
	if activeOnly {
		where += " AND is_active = TRUE"
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM service_plans "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("planRepo.ListByTenant count: %w", err)
	}

	query := fmt.Sprintf("SELECT * FROM service_plans %s ORDER BY plan_name LIMIT $2 OFFSET $3", where)
	args = append(args, limit, offset)

	var plans []domain.ServicePlan
	err = r.db.SelectContext(ctx, &plans, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("planRepo.ListByTenant: %w", err)
	}
	return plans, total, nil
}

func (r *planRepo) Update(ctx context.Context, plan *domain.ServicePlan) error {
	plan.UpdatedAt = time.Now().UTC()

	query := `UPDATE service_plans SET plan_name = $1, sac_code = $2, price = $3,
		gst_rate = $4, is_active = $5, updated_at = $6 WHERE id = $7 AND tenant_id = $8`

	result, err := r.db.ExecContext(ctx, query,
		plan.PlanName, plan.SACCode, plan.Price, plan.GSTRate, plan.IsActive,
		plan.UpdatedAt, plan.ID, plan.TenantID)
	if err != nil {
		return fmt.Errorf("planRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func (r *planRepo) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	// Plans referenced by invoice lines are deactivated, not removed.
	result, err := r.db.ExecContext(ctx,
		"UPDATE service_plans SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND tenant_id = $3",
		time.Now().UTC(), planID, tenantID)
	if err != nil {
		return fmt.Errorf("planRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}
