package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) ([]domain.RevenueMonthRow, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueMonthRow), args.Error(1)
}

func (m *MockReportRepo) TaxSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.TaxSummaryRow, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSummaryRow), args.Error(1)
}

func (m *MockReportRepo) TopPlans(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, limit int) ([]domain.PlanRevenueRow, error) {
	args := m.Called(ctx, tenantID, filters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanRevenueRow), args.Error(1)
}

func (m *MockReportRepo) DashboardCounts(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardCounts, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}
