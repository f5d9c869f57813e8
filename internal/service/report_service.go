package service

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"detos/internal/csvexport"
	"detos/internal/domain"
	"detos/internal/port"
)

// ReportService provides financial reporting over issued invoices and
// expenses.
type ReportService interface {
	RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) ([]domain.RevenueMonthRow, error)
	TaxSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.TaxSummaryRow, error)
	TopPlans(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, limit int) ([]domain.PlanRevenueRow, error)
	Dashboard(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardCounts, error)
	ExpenseSummary(ctx context.Context, tenantID uuid.UUID, year int) ([]domain.ExpenseMonthRow, error)
	// ExportInvoicesCSV streams the invoice register as CSV (with BOM) to w.
	ExportInvoicesCSV(ctx context.Context, tenantID uuid.UUID, filters *port.InvoiceFilters, w io.Writer) error
}

type reportService struct {
	reportRepo  port.ReportRepository
	invoiceRepo port.InvoiceRepository
	expenseRepo port.ExpenseRepository
}

// NewReportService creates a new ReportService implementation.
func NewReportService(
	reportRepo port.ReportRepository,
	invoiceRepo port.InvoiceRepository,
	expenseRepo port.ExpenseRepository,
) ReportService {
	return &reportService{
		reportRepo:  reportRepo,
		invoiceRepo: invoiceRepo,
		expenseRepo: expenseRepo,
	}
}

func (s *reportService) RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) ([]domain.RevenueMonthRow, error) {
	return s.reportRepo.RevenueSummary(ctx, tenantID, filters)
}

func (s *reportService) TaxSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.TaxSummaryRow, error) {
	return s.reportRepo.TaxSummary(ctx, tenantID, filters)
}

func (s *reportService) TopPlans(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, limit int) ([]domain.PlanRevenueRow, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	return s.reportRepo.TopPlans(ctx, tenantID, filters, limit)
}

func (s *reportService) Dashboard(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardCounts, error) {
	return s.reportRepo.DashboardCounts(ctx, tenantID)
}

func (s *reportService) ExpenseSummary(ctx context.Context, tenantID uuid.UUID, year int) ([]domain.ExpenseMonthRow, error) {
	return s.expenseRepo.MonthlySummary(ctx, tenantID, year)
}

func (s *reportService) ExportInvoicesCSV(ctx context.Context, tenantID uuid.UUID, filters *port.InvoiceFilters, w io.Writer) error {
	invoices, err := s.invoiceRepo.ListForExport(ctx, tenantID, filters)
	if err != nil {
		return err
	}

	if _, err := w.Write(csvexport.BOM); err != nil {
		return fmt.Errorf("writing BOM: %w", err)
	}

	cw := csvexport.NewWriter(w)
	if err := cw.WriteHeader(); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteInvoices(invoices); err != nil {
		return fmt.Errorf("writing rows: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
