package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"detos/internal/domain"
	"detos/internal/port"
)

type vehicleRepo struct {
	db *sqlx.DB
}

// NewVehicleRepo creates a new PostgreSQL-backed VehicleRepository.
func NewVehicleRepo(db *sqlx.DB) port.VehicleRepository {
	return &vehicleRepo{db: db}
}

func (r *vehicleRepo) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	vehicle.ID = uuid.New()
	now := time.Now().UTC()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now

	query := `INSERT INTO vehicles (id, tenant_id, customer_id, registration_no, make, model, year, color, odometer_km, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		vehicle.ID, vehicle.TenantID, vehicle.CustomerID, vehicle.RegistrationNo,
		vehicle.Make, vehicle.Model, vehicle.Year, vehicle.Color, vehicle.OdometerKM,
		vehicle.CreatedAt, vehicle.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "registration_no") {
			return domain.ErrDuplicateRegistration
		}
		return fmt.Errorf("vehicleRepo.Create: %w", err)
	}
	return nil
}

func (r *vehicleRepo) GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.GetContext(ctx, &vehicle,
		"SELECT * FROM vehicles WHERE id = $1 AND tenant_id = $2", vehicleID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("vehicleRepo.GetByID: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepo) GetByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNo string) (*domain.Vehicle, error) {
	var vehicle domain.Vehicle
	err := r.db.GetContext(ctx, &vehicle,
		"SELECT * FROM vehicles WHERE tenant_id = $1 AND UPPER(registration_no) = UPPER($2)",
		tenantID, registrationNo)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("vehicleRepo.GetByRegistration: %w", err)
	}
	return &vehicle, nil
}

func (r *vehicleRepo) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]domain.Vehicle, error) {
	var vehicles []domain.Vehicle
	err := r.db.SelectContext(ctx, &vehicles,
		"SELECT * FROM vehicles WHERE tenant_id = $1 AND customer_id = $2 ORDER BY created_at DESC",
		tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("vehicleRepo.ListByCustomer: %w", err)
	}
	return vehicles, nil
}

func (r *vehicleRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vehicle, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM vehicles WHERE tenant_id = $1", tenantID)
	if err != nil {
		return nil, 0, fmt.Errorf("vehicleRepo.ListByTenant count: %w", err)
	}

	var vehicles []domain.Vehicle
	err = r.db.SelectContext(ctx, &vehicles,
		"SELECT * FROM vehicles WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3",
		tenantID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("vehicleRepo.ListByTenant: %w", err)
	}
	return vehicles, total, nil
}

func (r *vehicleRepo) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	vehicle.UpdatedAt = time.Now().UTC()

	query := `UPDATE vehicles SET registration_no = $1, make = $2, model = $3, year = $4,
		color = $5, odometer_km = $6, updated_at = $7 WHERE id = $8 AND tenant_id = $9`

	result, err := r.db.ExecContext(ctx, query,
		vehicle.RegistrationNo, vehicle.Make, vehicle.Model, vehicle.Year,
		vehicle.Color, vehicle.OdometerKM, vehicle.UpdatedAt, vehicle.ID, vehicle.TenantID)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "registration_no") {
			return domain.ErrDuplicateRegistration
		}
		return fmt.Errorf("vehicleRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}

func (r *vehicleRepo) Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM vehicles WHERE id = $1 AND tenant_id = $2", vehicleID, tenantID)
	if err != nil {
		return fmt.Errorf("vehicleRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}
