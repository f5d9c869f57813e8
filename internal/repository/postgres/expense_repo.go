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

type expenseRepo struct {
	db *sqlx.DB
}

// NewExpenseRepo creates a new PostgreSQL-backed ExpenseRepository.
func NewExpenseRepo(db *sqlx.DB) port.ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	expense.ID = uuid.New()
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	query := `INSERT INTO expenses (id, tenant_id, category, description, amount, spent_on, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		expense.ID, expense.TenantID, expense.Category, expense.Description,
		expense.Amount, expense.SpentOn, expense.CreatedBy, expense.CreatedAt, expense.UpdatedAt)
	if err != nil {
		return fmt.Errorf("expenseRepo.Create: %w", err)
	}
	return nil
}

func (r *expenseRepo) GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*domain.Expense, error) {
	var expense domain.Expense
	err := r.db.GetContext(ctx, &expense,
		"SELECT * FROM expenses WHERE id = $1 AND tenant_id = $2", expenseID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, fmt.Errorf("expenseRepo.GetByID: %w", err)
	}
	return &expense, nil
}

func (r *expenseRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, category domain.ExpenseCategory, offset, limit int) ([]domain.Expense, int, error) {
	where := "WHERE tenant_id = $1"
	args := []interface{}{tenantID}
	if category != "" {
		where += " AND category = $2"
		args = append(args, category)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM expenses "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByTenant count: %w", err)
	}

	argN := len(args) + 1
	query := fmt.Sprintf("SELECT * FROM expenses %s ORDER BY spent_on DESC LIMIT $%d OFFSET $%d",
		where, argN, argN+1)
	args = append(args, limit, offset)

	var expenses []domain.Expense
	err = r.db.SelectContext(ctx, &expenses, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("expenseRepo.ListByTenant: %w", err)
	}
	return expenses, total, nil
}

func (r *expenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	expense.UpdatedAt = time.Now().UTC()

	query := `UPDATE expenses SET category = $1, description = $2, amount = $3,
		spent_on = $4, updated_at = $5 WHERE id = $6 AND tenant_id = $7`

	result, err := r.db.ExecContext(ctx, query,
		expense.Category, expense.Description, expense.Amount, expense.SpentOn,
		expense.UpdatedAt, expense.ID, expense.TenantID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepo) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = $1 AND tenant_id = $2", expenseID, tenantID)
	if err != nil {
		return fmt.Errorf("expenseRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

func (r *expenseRepo) MonthlySummary(ctx context.Context, tenantID uuid.UUID, year int) ([]domain.ExpenseMonthRow, error) {
	query := `SELECT TO_CHAR(spent_on, 'YYYY-MM') AS month, category, COALESCE(SUM(amount), 0) AS total
		FROM expenses
		WHERE tenant_id = $1 AND EXTRACT(YEAR FROM spent_on) = $2
		GROUP BY month, category
		ORDER BY month, category`

	var rows []domain.ExpenseMonthRow
	err := r.db.SelectContext(ctx, &rows, query, tenantID, year)
	if err != nil {
		return nil, fmt.Errorf("expenseRepo.MonthlySummary: %w", err)
	}
	return rows, nil
}
