package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"detos/internal/billing"
	"detos/internal/domain"
	"detos/internal/port"
)

// CreateExpenseInput is the DTO for recording an expense.
type CreateExpenseInput struct {
	Category    domain.ExpenseCategory `json:"category" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Amount      string                 `json:"amount" binding:"required"`
	SpentOn     time.Time              `json:"spent_on" binding:"required"`
}

// UpdateExpenseInput is the DTO for correcting an expense entry.
type UpdateExpenseInput struct {
	Category    *domain.ExpenseCategory `json:"category"`
	Description *string                 `json:"description"`
	Amount      *string                 `json:"amount"`
	SpentOn     *time.Time              `json:"spent_on"`
}

// ExpenseService defines the expense tracking contract.
type ExpenseService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateExpenseInput) (*domain.Expense, error)
	GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*domain.Expense, error)
	List(ctx context.Context, tenantID uuid.UUID, category domain.ExpenseCategory, offset, limit int) ([]domain.Expense, int, error)
	Update(ctx context.Context, tenantID, expenseID uuid.UUID, input UpdateExpenseInput) (*domain.Expense, error)
	Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error
}

type expenseService struct {
	repo port.ExpenseRepository
}

// NewExpenseService creates a new ExpenseService implementation.
func NewExpenseService(repo port.ExpenseRepository) ExpenseService {
	return &expenseService{repo: repo}
}

func parseExpenseAmount(raw string) (decimal.Decimal, error) {
	if _, ok := billing.NormalizeAmount(raw); !ok || raw == "" {
		return decimal.Zero, &domain.ValidationError{Fields: map[string]string{
			"amount": "must be a non-negative amount with up to 2 decimal places",
		}}
	}
	return billing.CommitAmount(raw), nil
}

func (s *expenseService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateExpenseInput) (*domain.Expense, error) {
	if !domain.ValidExpenseCategories[input.Category] {
		return nil, &domain.ValidationError{Fields: map[string]string{
			"category": "unknown expense category",
		}}
	}
	amount, err := parseExpenseAmount(input.Amount)
	if err != nil {
		return nil, err
	}

	expense := &domain.Expense{
		TenantID:    tenantID,
		Category:    input.Category,
		Description: input.Description,
		Amount:      amount,
		SpentOn:     input.SpentOn,
		CreatedBy:   userID,
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*domain.Expense, error) {
	return s.repo.GetByID(ctx, tenantID, expenseID)
}

func (s *expenseService) List(ctx context.Context, tenantID uuid.UUID, category domain.ExpenseCategory, offset, limit int) ([]domain.Expense, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, category, offset, limit)
}

func (s *expenseService) Update(ctx context.Context, tenantID, expenseID uuid.UUID, input UpdateExpenseInput) (*domain.Expense, error) {
	expense, err := s.repo.GetByID(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}

	if input.Category != nil {
		if !domain.ValidExpenseCategories[*input.Category] {
			return nil, &domain.ValidationError{Fields: map[string]string{
				"category": "unknown expense category",
			}}
		}
		expense.Category = *input.Category
	}
	if input.Description != nil {
		expense.Description = *input.Description
	}
	if input.Amount != nil {
		amount, err := parseExpenseAmount(*input.Amount)
		if err != nil {
			return nil, err
		}
		expense.Amount = amount
	}
	if input.SpentOn != nil {
		expense.SpentOn = *input.SpentOn
	}

	if err := s.repo.Update(ctx, expense); err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *expenseService) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, expenseID)
}
