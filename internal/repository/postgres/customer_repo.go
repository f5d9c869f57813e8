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

type customerRepo struct {
	db *sqlx.DB
}

// NewCustomerRepo creates a new PostgreSQL-backed CustomerRepository.
func NewCustomerRepo(db *sqlx.DB) port.CustomerRepository {
	return &customerRepo{db: db}
}

func (r *customerRepo) Create(ctx context.Context, customer *domain.Customer) error {
	customer.ID = uuid.New()
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	query := `INSERT INTO customers (id, tenant_id, name, phone, email, gstin, state_id, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID, customer.TenantID, customer.Name, customer.Phone, customer.Email,
		customer.GSTIN, customer.StateID, customer.Address, customer.CreatedAt, customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("customerRepo.Create: %w", err)
	}
	return nil
}

func (r *customerRepo) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error) {
	var customer domain.Customer
	err := r.db.GetContext(ctx, &customer,
		"SELECT * FROM customers WHERE id = $1 AND tenant_id = $2", customerID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("customerRepo.GetByID: %w", err)
	}
	return &customer, nil
}

func (r *customerRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	where := "WHERE tenant_id = $1"
	args := []interface{}{tenantID}
	if search != "" {
		where += " AND (name ILIKE $2 OR phone ILIKE $2 OR email ILIKE $2)"
		args = append(args, "%"+search+"%")
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM customers "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.ListByTenant count: %w", err)
	}

	argN := len(args) + 1
	query := fmt.Sprintf("SELECT * FROM customers %s ORDER BY name LIMIT $%d OFFSET $%d",
		where, argN, argN+1)
	args = append(args, limit, offset)

	var customers []domain.Customer
	err = r.db.SelectContext(ctx, &customers, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("customerRepo.ListByTenant: %w", err)
	}
	return customers, total, nil
}

func (r *customerRepo) Update(ctx context.Context, customer *domain.Customer) error {
	customer.UpdatedAt = time.Now().UTC()

	query := `UPDATE customers SET name = $1, phone = $2, email = $3, gstin = $4,
		state_id = $5, address = $6, updated_at = $7 WHERE id = $8 AND tenant_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		customer.Name, customer.Phone, customer.Email, customer.GSTIN,
		customer.StateID, customer.Address, customer.UpdatedAt, customer.ID, customer.TenantID)
	if err != nil {
		return fmt.Errorf("customerRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepo) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM customers WHERE id = $1 AND tenant_id = $2", customerID, tenantID)
	if err != nil {
		return fmt.Errorf("customerRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrCustomerNotFound
	}
	return nil
}
