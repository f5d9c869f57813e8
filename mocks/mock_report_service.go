package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
	"detos/internal/port"
)

// MockReportService is a mock implementation of service.ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) ([]domain.RevenueMonthRow, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RevenueMonthRow), args.Error(1)
}

func (m *MockReportService) TaxSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.TaxSummaryRow, error) {
	args := m.Called(ctx, tenantID, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxSummaryRow), args.Error(1)
}

func (m *MockReportService) TopPlans(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, limit int) ([]domain.PlanRevenueRow, error) {
	args := m.Called(ctx, tenantID, filters, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlanRevenueRow), args.Error(1)
}

func (m *MockReportService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardCounts, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}

func (m *MockReportService) ExpenseSummary(ctx context.Context, tenantID uuid.UUID, year int) ([]domain.ExpenseMonthRow, error) {
	args := m.Called(ctx, tenantID, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseMonthRow), args.Error(1)
}

func (m *MockReportService) ExportInvoicesCSV(ctx context.Context, tenantID uuid.UUID, filters *port.InvoiceFilters, w io.Writer) error {
	args := m.Called(ctx, tenantID, filters, w)
	return args.Error(0)
}
