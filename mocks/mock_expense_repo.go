package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockExpenseRepo is a mock implementation of port.ExpenseRepository.
type MockExpenseRepo struct {
	mock.Mock
}

func (m *MockExpenseRepo) Create(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepo) GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*domain.Expense, error) {
	args := m.Called(ctx, tenantID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Expense), args.Error(1)
}

func (m *MockExpenseRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, category domain.ExpenseCategory, offset, limit int) ([]domain.Expense, int, error) {
	args := m.Called(ctx, tenantID, category, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Expense), args.Int(1), args.Error(2)
}

func (m *MockExpenseRepo) Update(ctx context.Context, expense *domain.Expense) error {
	args := m.Called(ctx, expense)
	return args.Error(0)
}

func (m *MockExpenseRepo) Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error {
	args := m.Called(ctx, tenantID, expenseID)
	return args.Error(0)
}

func (m *MockExpenseRepo) MonthlySummary(ctx context.Context, tenantID uuid.UUID, year int) ([]domain.ExpenseMonthRow, error) {
	args := m.Called(ctx, tenantID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseMonthRow), args.Error(1)
}
