package port

import (
	"context"

	"github.com/google/uuid"

	"detos/internal/domain"
)

// ReportRepository provides aggregated financial projections for dashboards
// and exports.
type ReportRepository interface {
	RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) ([]domain.RevenueMonthRow, error)
	TaxSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.TaxSummaryRow, error)
	TopPlans(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, limit int) ([]domain.PlanRevenueRow, error)
	DashboardCounts(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardCounts, error)
}
