package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"detos/internal/billing"
	"detos/internal/domain"
	"detos/internal/port"
)

// CreatePlanInput is the DTO for adding a catalogue entry. Price and GST rate
// arrive as strings and are validated by the billing normalizer.
type CreatePlanInput struct {
	PlanName string `json:"plan_name" binding:"required"`
	SACCode  string `json:"sac_code" binding:"required"`
	Price    string `json:"price" binding:"required"`
	GSTRate  string `json:"gst_rate" binding:"required"`
}

// UpdatePlanInput is the DTO for updating a catalogue entry.
type UpdatePlanInput struct {
	PlanName *string `json:"plan_name"`
	SACCode  *string `json:"sac_code"`
	Price    *string `json:"price"`
	GSTRate  *string `json:"gst_rate"`
	IsActive *bool   `json:"is_active"`
}

// PlanService defines the service catalogue contract.
type PlanService interface {
	Create(ctx context.Context, tenantID uuid.UUID, input CreatePlanInput) (*domain.ServicePlan, error)
	GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.ServicePlan, error)
	List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.ServicePlan, int, error)
	Update(ctx context.Context, tenantID, planID uuid.UUID, input UpdatePlanInput) (*domain.ServicePlan, error)
	Delete(ctx context.Context, tenantID, planID uuid.UUID) error
}

type planService struct {
	repo port.ServicePlanRepository
}

// NewPlanService creates a new PlanService implementation.
func NewPlanService(repo port.ServicePlanRepository) PlanService {
	return &planService{repo: repo}
}

func parsePrice(raw string) (decimal.Decimal, error) {
	if _, ok := billing.NormalizeAmount(raw); !ok || raw == "" {
		return decimal.Zero, &domain.ValidationError{Fields: map[string]string{
			"price": "must be a non-negative amount with up to 2 decimal places",
		}}
	}
	return billing.CommitAmount(raw), nil
}

func parseGSTRate(raw string) (decimal.Decimal, error) {
	if _, ok := billing.NormalizePercent(raw); !ok || raw == "" {
		return decimal.Zero, &domain.ValidationError{Fields: map[string]string{
			"gst_rate": "must be a percentage between 0 and 100",
		}}
	}
	return billing.CommitPercent(raw), nil
}

func (s *planService) Create(ctx context.Context, tenantID uuid.UUID, input CreatePlanInput) (*domain.ServicePlan, error) {
	price, err := parsePrice(input.Price)
	if err != nil {
		return nil, err
	}
	rate, err := parseGSTRate(input.GSTRate)
	if err != nil {
		return nil, err
	}

	plan := &domain.ServicePlan{
		TenantID: tenantID,
		PlanName: input.PlanName,
		SACCode:  input.SACCode,
		Price:    price,
		GSTRate:  rate,
		IsActive: true,
	}
	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.ServicePlan, error) {
	return s.repo.GetByID(ctx, tenantID, planID)
}

func (s *planService) List(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.ServicePlan, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, activeOnly, offset, limit)
}

func (s *planService) Update(ctx context.Context, tenantID, planID uuid.UUID, input UpdatePlanInput) (*domain.ServicePlan, error) {
	plan, err := s.repo.GetByID(ctx, tenantID, planID)
	if err != nil {
		return nil, err
	}

	if input.PlanName != nil {
		plan.PlanName = *input.PlanName
	}
	if input.SACCode != nil {
		plan.SACCode = *input.SACCode
	}
	if input.Price != nil {
		price, err := parsePrice(*input.Price)
		if err != nil {
			return nil, err
		}
		plan.Price = price
	}
	if input.GSTRate != nil {
		rate, err := parseGSTRate(*input.GSTRate)
		if err != nil {
			return nil, err
		}
		plan.GSTRate = rate
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *planService) Delete(ctx context.Context, tenantID, planID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, planID)
}
