package port

import (
	"context"

	"github.com/google/uuid"

	"detos/internal/domain"
)

// CustomerRepository defines the contract for customer persistence.
type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, customer *domain.Customer) error
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}

// VehicleRepository defines the contract for vehicle persistence.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *domain.Vehicle) error
	GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*domain.Vehicle, error)
	GetByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNo string) (*domain.Vehicle, error)
	ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]domain.Vehicle, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vehicle, int, error)
	Update(ctx context.Context, vehicle *domain.Vehicle) error
	Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error
}
