package service_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"detos/internal/domain"
	"detos/internal/port"
	"detos/internal/service"
	"detos/mocks"
)

func newReportService() (service.ReportService, *mocks.MockReportRepo, *mocks.MockInvoiceRepo, *mocks.MockExpenseRepo) {
	reportRepo := new(mocks.MockReportRepo)
	invoiceRepo := new(mocks.MockInvoiceRepo)
	expenseRepo := new(mocks.MockExpenseRepo)
	svc := service.NewReportService(reportRepo, invoiceRepo, expenseRepo)
	return svc, reportRepo, invoiceRepo, expenseRepo
}

func TestReportService_TopPlans_ClampsLimit(t *testing.T) {
	svc, reportRepo, _, _ := newReportService()
	tenantID := uuid.New()

	reportRepo.On("TopPlans", mock.Anything, tenantID, (*domain.ReportFilters)(nil), 10).
		Return([]domain.PlanRevenueRow{}, nil)

	_, err := svc.TopPlans(context.Background(), tenantID, nil, 0)
	require.NoError(t, err)

	_, err = svc.TopPlans(context.Background(), tenantID, nil, 500)
	require.NoError(t, err)

	reportRepo.AssertNumberOfCalls(t, "TopPlans", 2)
}

func TestReportService_ExpenseSummary(t *testing.T) {
	svc, _, _, expenseRepo := newReportService()
	tenantID := uuid.New()

	rows := []domain.ExpenseMonthRow{
		{Month: "2026-01", Total: decimal.RequireFromString("15000.00")},
	}
	expenseRepo.On("MonthlySummary", mock.Anything, tenantID, 2026).Return(rows, nil)

	got, err := svc.ExpenseSummary(context.Background(), tenantID, 2026)

	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestReportService_ExportInvoicesCSV(t *testing.T) {
	svc, _, invoiceRepo, _ := newReportService()
	tenantID := uuid.New()
	issued := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	invoiceRepo.On("ListForExport", mock.Anything, tenantID, (*port.InvoiceFilters)(nil)).
		Return([]domain.Invoice{
			{
				InvoiceNumber:  "INV-00001",
				CustomerID:     uuid.New(),
				Status:         domain.InvoiceStatusIssued,
				BillingStateID: 7,
				SellerStateID:  29,
				TotalItems:     1,
				SubTotal:       decimal.RequireFromString("500"),
				DiscountTotal:  decimal.Zero,
				CGSTTotal:      decimal.Zero,
				SGSTTotal:      decimal.Zero,
				IGSTTotal:      decimal.RequireFromString("90"),
				GrandTotal:     decimal.RequireFromString("590"),
				IssuedAt:       &issued,
			},
		}, nil)

	var buf bytes.Buffer
	err := svc.ExportInvoicesCSV(context.Background(), tenantID, nil, &buf)
	require.NoError(t, err)

	out := buf.Bytes()
	// Excel needs the UTF-8 BOM up front.
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Invoice Number", records[0][0])
	assert.Equal(t, "INV-00001", records[1][0])
	assert.Equal(t, "90.00", records[1][10])
	assert.Equal(t, "590.00", records[1][11])
}

func TestReportService_ExportInvoicesCSV_RepoError(t *testing.T) {
	svc, _, invoiceRepo, _ := newReportService()
	tenantID := uuid.New()

	invoiceRepo.On("ListForExport", mock.Anything, tenantID, (*port.InvoiceFilters)(nil)).
		Return(nil, domain.ErrNotFound)

	var buf bytes.Buffer
	err := svc.ExportInvoicesCSV(context.Background(), tenantID, nil, &buf)

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, buf.Len())
}
