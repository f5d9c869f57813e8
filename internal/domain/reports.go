package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilters narrows report queries by time window and invoice status.
type ReportFilters struct {
	From   *time.Time
	To     *time.Time
	Status InvoiceStatus
}

// RevenueMonthRow is one month of issued-invoice revenue.
type RevenueMonthRow struct {
	Month         string          `db:"month" json:"month"`
	InvoiceCount  int             `db:"invoice_count" json:"invoice_count"`
	SubTotal      decimal.Decimal `db:"sub_total" json:"sub_total"`
	DiscountTotal decimal.Decimal `db:"discount_total" json:"discount_total"`
	TaxTotal      decimal.Decimal `db:"tax_total" json:"tax_total"`
	GrandTotal    decimal.Decimal `db:"grand_total" json:"grand_total"`
}

// TaxSummaryRow aggregates tax collected per component over a window.
type TaxSummaryRow struct {
	CGST  decimal.Decimal `db:"cgst" json:"cgst"`
	SGST  decimal.Decimal `db:"sgst" json:"sgst"`
	IGST  decimal.Decimal `db:"igst" json:"igst"`
	Total decimal.Decimal `db:"total" json:"total"`
}

// PlanRevenueRow is revenue attributed to one service plan.
type PlanRevenueRow struct {
	PlanName string          `db:"plan_name" json:"plan_name"`
	SACCode  string          `db:"sac_code" json:"sac_code"`
	Quantity int             `db:"quantity" json:"quantity"`
	Revenue  decimal.Decimal `db:"revenue" json:"revenue"`
}

// DashboardCounts holds the headline numbers for the home dashboard.
type DashboardCounts struct {
	OpenJobCards      int `db:"open_job_cards" json:"open_job_cards"`
	TodayAppointments int `db:"today_appointments" json:"today_appointments"`
	DraftInvoices     int `db:"draft_invoices" json:"draft_invoices"`
	UnpaidInvoices    int `db:"unpaid_invoices" json:"unpaid_invoices"`
}

// ExpenseMonthRow is one month of expenses for one category.
type ExpenseMonthRow struct {
	Month    string          `db:"month" json:"month"`
	Category ExpenseCategory `db:"category" json:"category"`
	Total    decimal.Decimal `db:"total" json:"total"`
}
