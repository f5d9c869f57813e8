package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"detos/internal/domain"
	"detos/internal/port"
)

type reportRepo struct {
	db *sqlx.DB
}

// NewReportRepo creates a new PostgreSQL-backed ReportRepository.
func NewReportRepo(db *sqlx.DB) port.ReportRepository {
	return &reportRepo{db: db}
}

// buildReportWhere constructs the WHERE clause shared by the report queries.
// Draft invoices never count towards revenue; absent a status filter the
// window covers issued and paid invoices.
func buildReportWhere(tenantID uuid.UUID, filters *domain.ReportFilters) (clause string, args []interface{}) {
	clause = "WHERE i.tenant_id = $1"
	args = []interface{}{tenantID}
	argN := 2

	if filters != nil && filters.Status != "" {
		clause += fmt.Sprintf(" AND i.status = $%d", argN)
		args = append(args, filters.Status)
		argN++
	} else {
		clause += fmt.Sprintf(" AND i.status IN ($%d, $%d)", argN, argN+1)
		args = append(args, domain.InvoiceStatusIssued, domain.InvoiceStatusPaid)
		argN += 2
	}
	if filters != nil && filters.From != nil {
		clause += fmt.Sprintf(" AND i.issued_at >= $%d", argN)
		args = append(args, *filters.From)
		argN++
	}
	if filters != nil && filters.To != nil {
		clause += fmt.Sprintf(" AND i.issued_at <= $%d", argN)
		args = append(args, *filters.To)
		argN++
	}
	return clause, args
}

func (r *reportRepo) RevenueSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) ([]domain.RevenueMonthRow, error) {
	where, args := buildReportWhere(tenantID, filters)

	query := fmt.Sprintf(`SELECT
			TO_CHAR(i.issued_at, 'YYYY-MM') AS month,
			COUNT(*) AS invoice_count,
			COALESCE(SUM(i.sub_total), 0) AS sub_total,
			COALESCE(SUM(i.discount_total), 0) AS discount_total,
			COALESCE(SUM(i.cgst_total + i.sgst_total + i.igst_total), 0) AS tax_total,
			COALESCE(SUM(i.grand_total), 0) AS grand_total
		FROM invoices i
		%s
		GROUP BY month
		ORDER BY month`, where)

	var rows []domain.RevenueMonthRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.RevenueSummary: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) TaxSummary(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters) (*domain.TaxSummaryRow, error) {
	where, args := buildReportWhere(tenantID, filters)

	query := fmt.Sprintf(`SELECT
			COALESCE(SUM(i.cgst_total), 0) AS cgst,
			COALESCE(SUM(i.sgst_total), 0) AS sgst,
			COALESCE(SUM(i.igst_total), 0) AS igst,
			COALESCE(SUM(i.cgst_total + i.sgst_total + i.igst_total), 0) AS total
		FROM invoices i
		%s`, where)

	var row domain.TaxSummaryRow
	err := r.db.GetContext(ctx, &row, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.TaxSummary: %w", err)
	}
	return &row, nil
}

func (r *reportRepo) TopPlans(ctx context.Context, tenantID uuid.UUID, filters *domain.ReportFilters, limit int) ([]domain.PlanRevenueRow, error) {
	where, args := buildReportWhere(tenantID, filters)
	argN := len(args) + 1

	query := fmt.Sprintf(`SELECT
			l.plan_name,
			l.sac_code,
			COALESCE(SUM(l.quantity), 0) AS quantity,
			COALESCE(SUM(l.total_amount), 0) AS revenue
		FROM invoice_lines l
		JOIN invoices i ON i.id = l.invoice_id
		%s
		GROUP BY l.plan_name, l.sac_code
		ORDER BY revenue DESC
		LIMIT $%d`, where, argN)
	args = append(args, limit)

	var rows []domain.PlanRevenueRow
	err := r.db.SelectContext(ctx, &rows, query, args...)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.TopPlans: %w", err)
	}
	return rows, nil
}

func (r *reportRepo) DashboardCounts(ctx context.Context, tenantID uuid.UUID) (*domain.DashboardCounts, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM job_cards WHERE tenant_id = $1 AND status IN ($2, $3)) AS open_job_cards,
		(SELECT COUNT(*) FROM appointments WHERE tenant_id = $1
			AND scheduled_at >= CURRENT_DATE AND scheduled_at < CURRENT_DATE + INTERVAL '1 day'
			AND status NOT IN ($4, $5)) AS today_appointments,
		(SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND status = $6) AS draft_invoices,
		(SELECT COUNT(*) FROM invoices WHERE tenant_id = $1 AND status = $7) AS unpaid_invoices`

	var counts domain.DashboardCounts
	err := r.db.GetContext(ctx, &counts, query,
		tenantID, domain.JobCardStatusOpen, domain.JobCardStatusInProgress,
		domain.AppointmentStatusCancelled, domain.AppointmentStatusNoShow,
		domain.InvoiceStatusDraft, domain.InvoiceStatusIssued)
	if err != nil {
		return nil, fmt.Errorf("reportRepo.DashboardCounts: %w", err)
	}
	return &counts, nil
}
