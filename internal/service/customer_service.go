package service

import (
	"context"

	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/port"
)

// CreateCustomerInput is the DTO for creating a customer.
type CreateCustomerInput struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	GSTIN   string `json:"gstin"`
	StateID *int   `json:"state_id"`
	Address string `json:"address"`
}

// UpdateCustomerInput is the DTO for updating a customer.
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	GSTIN   *string `json:"gstin"`
	StateID *int    `json:"state_id"`
	Address *string `json:"address"`
}

// CustomerService defines the customer management contract.
type CustomerService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreateCustomerInput) (*domain.Customer, error)
	GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error)
	Update(ctx context.Context, tenantID, customerID uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, tenantID, customerID uuid.UUID) error
}

type customerService struct {
	repo      port.CustomerRepository
	stateRepo port.StateRepository
}

// NewCustomerService creates a new CustomerService implementation.
func NewCustomerService(repo port.CustomerRepository, stateRepo port.StateRepository) CustomerService {
	return &customerService{repo: repo, stateRepo: stateRepo}
}

func (s *customerService) Create(ctx context.Context, tenantID uuid.UUID, input CreateCustomerInput) (*domain.Customer, error) {
	if input.StateID != nil {
		if _, err := s.stateRepo.GetByID(ctx, *input.StateID); err != nil {
			return nil, err
		}
	}

	customer := &domain.Customer{
		TenantID: tenantID,
		Name:     input.Name,
		Phone:    input.Phone,
		Email:    input.Email,
		GSTIN:    input.GSTIN,
		StateID:  input.StateID,
		Address:  input.Address,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) GetByID(ctx context.Context, tenantID, customerID uuid.UUID) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, tenantID, customerID)
}

func (s *customerService) List(ctx context.Context, tenantID uuid.UUID, search string, offset, limit int) ([]domain.Customer, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, search, offset, limit)
}

func (s *customerService) Update(ctx context.Context, tenantID, customerID uuid.UUID, input UpdateCustomerInput) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = *input.Phone
	}
	if input.Email != nil {
		customer.Email = *input.Email
	}
	if input.GSTIN != nil {
		customer.GSTIN = *input.GSTIN
	}
	if input.StateID != nil {
		if _, err := s.stateRepo.GetByID(ctx, *input.StateID); err != nil {
			return nil, err
		}
		customer.StateID = input.StateID
	}
	if input.Address != nil {
		customer.Address = *input.Address
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) Delete(ctx context.Context, tenantID, customerID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, customerID)
}
