package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/port"
)

// CreateVehicleInput is the DTO for registering a vehicle.
type CreateVehicleInput struct {
	CustomerID     uuid.UUID `json:"customer_id" binding:"required"`
	RegistrationNo string    `json:"registration_no" binding:"required"`
	Make           string    `json:"make" binding:"required"`
	Model          string    `json:"model" binding:"required"`
	Year           int       `json:"year"`
	Color          string    `json:"color"`
	OdometerKM     int       `json:"odometer_km"`
}

// UpdateVehicleInput is the DTO for updating a vehicle.
type UpdateVehicleInput struct {
	RegistrationNo *string `json:"registration_no"`
	Make           *string `json:"make"`
	Model          *string `json:"model"`
	Year           *int    `json:"year"`
	Color          *string `json:"color"`
	OdometerKM     *int    `json:"odometer_km"`
}

// VehicleService defines the vehicle management contract.
type VehicleService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateVehicleInput) (*domain.Vehicle, error)
	GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*domain.Vehicle, error)
	GetByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNo string) (*domain.Vehicle, error)
	ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]domain.Vehicle, error)
	List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vehicle, int, error)
	Update(ctx context.Context, tenantID, vehicleID uuid.UUID, input UpdateVehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error
}

type vehicleService struct {
	repo         port.VehicleRepository
	customerRepo port.CustomerRepository
}

// NewVehicleService creates a new VehicleService implementation.
func NewVehicleService(repo port.VehicleRepository, customerRepo port.CustomerRepository) VehicleService {
	return &vehicleService{repo: repo, customerRepo: customerRepo}
}

func (s *vehicleService) Create(ctx context.Context, tenantID uuid.UUID, input CreateVehicleInput) (*domain.Vehicle, error) {
	if _, err := s.customerRepo.GetByID(ctx, tenantID, input.CustomerID); err != nil {
		return nil, err
	}

	vehicle := &domain.Vehicle{
		TenantID:       tenantID,
		CustomerID:     input.CustomerID,
		RegistrationNo: strings.ToUpper(strings.TrimSpace(input.RegistrationNo)),
		Make:           input.Make,
		Model:          input.Model,
		Year:           input.Year,
		Color:          input.Color,
		OdometerKM:     input.OdometerKM,
	}
	if err := s.repo.Create(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*domain.Vehicle, error) {
	return s.repo.GetByID(ctx, tenantID, vehicleID)
}

func (s *vehicleService) GetByRegistration(ctx context.Context, tenantID uuid.UUID, registrationNo string) (*domain.Vehicle, error) {
	return s.repo.GetByRegistration(ctx, tenantID, strings.TrimSpace(registrationNo))
}

func (s *vehicleService) ListByCustomer(ctx context.Context, tenantID, customerID uuid.UUID) ([]domain.Vehicle, error) {
	return s.repo.ListByCustomer(ctx, tenantID, customerID)
}

func (s *vehicleService) List(ctx context.Context, tenantID uuid.UUID, offset, limit int) ([]domain.Vehicle, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, offset, limit)
}

func (s *vehicleService) Update(ctx context.Context, tenantID, vehicleID uuid.UUID, input UpdateVehicleInput) (*domain.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	if input.RegistrationNo != nil {
		vehicle.RegistrationNo = strings.ToUpper(strings.TrimSpace(*input.RegistrationNo))
	}
	if input.Make != nil {
		vehicle.Make = *input.Make
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.OdometerKM != nil {
		vehicle.OdometerKM = *input.OdometerKM
	}

	if err := s.repo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

func (s *vehicleService) Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, vehicleID)
}
