package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"detos/internal/domain"
	"detos/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

const insertLineQuery = `INSERT INTO invoice_lines
	(id, invoice_id, tenant_id, service_plan_id, position, plan_name, sac_code,
	 unit_price, quantity, discount_percent, discount_amount, discount_source,
	 sub_amount, discounted_amount, cgst_rate, cgst_amount, sgst_rate, sgst_amount,
	 igst_rate, igst_amount, total_amount, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`

func insertLines(ctx context.Context, tx *sqlx.Tx, invoice *domain.Invoice, lines []domain.InvoiceLine) error {
	now := time.Now().UTC()
	for i := range lines {
		line := &lines[i]
		if line.ID == uuid.Nil {
			line.ID = uuid.New()
		}
		line.InvoiceID = invoice.ID
		line.TenantID = invoice.TenantID
		line.Position = i
		line.CreatedAt = now

		_, err := tx.ExecContext(ctx, insertLineQuery,
			line.ID, line.InvoiceID, line.TenantID, line.ServicePlanID, line.Position,
			line.PlanName, line.SACCode, line.UnitPrice, line.Quantity,
			line.DiscountPercent, line.DiscountAmount, line.DiscountSource,
			line.SubAmount, line.DiscountedAmount, line.CGSTRate, line.CGSTAmount,
			line.SGSTRate, line.SGSTAmount, line.IGSTRate, line.IGSTAmount,
			line.TotalAmount, line.CreatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error {
	invoice.ID = uuid.New()
	now := time.Now().UTC()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO invoices
		(id, tenant_id, invoice_number, customer_id, vehicle_id, job_card_id, status,
		 billing_state_id, seller_state_id, total_items, sub_total, discount_total,
		 cgst_total, sgst_total, igst_total, grand_total, issued_at, paid_at,
		 created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`

	_, err = tx.ExecContext(ctx, query,
		invoice.ID, invoice.TenantID, invoice.InvoiceNumber, invoice.CustomerID,
		invoice.VehicleID, invoice.JobCardID, invoice.Status, invoice.BillingStateID,
		invoice.SellerStateID, invoice.TotalItems, invoice.SubTotal, invoice.DiscountTotal,
		invoice.CGSTTotal, invoice.SGSTTotal, invoice.IGSTTotal, invoice.GrandTotal,
		invoice.IssuedAt, invoice.PaidAt, invoice.CreatedBy, invoice.CreatedAt, invoice.UpdatedAt)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}

	if err := insertLines(ctx, tx, invoice, lines); err != nil {
		return fmt.Errorf("invoiceRepo.Create lines: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.Create commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	var invoice domain.Invoice
	err := r.db.GetContext(ctx, &invoice,
		"SELECT * FROM invoices WHERE id = $1 AND tenant_id = $2", invoiceID, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepo) GetLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error) {
	var lines []domain.InvoiceLine
	err := r.db.SelectContext(ctx, &lines,
		"SELECT * FROM invoice_lines WHERE invoice_id = $1 AND tenant_id = $2 ORDER BY position",
		invoiceID, tenantID)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.GetLines: %w", err)
	}
	return lines, nil
}

// buildInvoiceWhere constructs the WHERE clause shared by listing queries.
func buildInvoiceWhere(tenantID uuid.UUID, filters *port.InvoiceFilters) (clause string, args []interface{}) {
	clause = "WHERE tenant_id = $1"
	args = []interface{}{tenantID}
	argN := 2

	if filters == nil {
		return clause, args
	}
	if filters.Status != "" {
		clause += fmt.Sprintf(" AND status = $%d", argN)
		args = append(args, filters.Status)
		argN++
	}
	if filters.CustomerID != nil {
		clause += fmt.Sprintf(" AND customer_id = $%d", argN)
		args = append(args, *filters.CustomerID)
		argN++
	}
	if filters.From != nil {
		clause += fmt.Sprintf(" AND created_at >= $%d", argN)
		args = append(args, *filters.From)
		argN++
	}
	if filters.To != nil {
		clause += fmt.Sprintf(" AND created_at <= $%d", argN)
		args = append(args, *filters.To)
		argN++
	}
	return clause, args
}

func (r *invoiceRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, filters *port.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error) {
	where, args := buildInvoiceWhere(tenantID, filters)

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant count: %w", err)
	}

	argN := len(args) + 1
	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		where, argN, argN+1)
	args = append(args, limit, offset)

	var invoices []domain.Invoice
	err = r.db.SelectContext(ctx, &invoices, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByTenant: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListForExport(ctx context.Context, tenantID uuid.UUID, filters *port.InvoiceFilters) ([]domain.Invoice, error) {
	where, args := buildInvoiceWhere(tenantID, filters)

	var invoices []domain.Invoice
	err := r.db.SelectContext(ctx, &invoices,
		"SELECT * FROM invoices "+where+" ORDER BY created_at", args...)
	if err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListForExport: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) ReplaceLines(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error {
	invoice.UpdatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("invoiceRepo.ReplaceLines begin: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE invoices SET customer_id = $1, vehicle_id = $2, billing_state_id = $3,
		total_items = $4, sub_total = $5, discount_total = $6, cgst_total = $7,
		sgst_total = $8, igst_total = $9, grand_total = $10, updated_at = $11
		WHERE id = $12 AND tenant_id = $13 AND status = $14`

	result, err := tx.ExecContext(ctx, query,
		invoice.CustomerID, invoice.VehicleID, invoice.BillingStateID,
		invoice.TotalItems, invoice.SubTotal, invoice.DiscountTotal,
		invoice.CGSTTotal, invoice.SGSTTotal, invoice.IGSTTotal, invoice.GrandTotal,
		invoice.UpdatedAt, invoice.ID, invoice.TenantID, domain.InvoiceStatusDraft)
	if err != nil {
		return fmt.Errorf("invoiceRepo.ReplaceLines: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotDraft
	}

	_, err = tx.ExecContext(ctx,
		"DELETE FROM invoice_lines WHERE invoice_id = $1 AND tenant_id = $2",
		invoice.ID, invoice.TenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.ReplaceLines delete: %w", err)
	}

	if err := insertLines(ctx, tx, invoice, lines); err != nil {
		return fmt.Errorf("invoiceRepo.ReplaceLines insert: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("invoiceRepo.ReplaceLines commit: %w", err)
	}
	return nil
}

func (r *invoiceRepo) UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus, at time.Time) error {
	var query string
	switch status {
	case domain.InvoiceStatusIssued:
		query = "UPDATE invoices SET status = $1, issued_at = $2, updated_at = $2 WHERE id = $3 AND tenant_id = $4"
	case domain.InvoiceStatusPaid:
		query = "UPDATE invoices SET status = $1, paid_at = $2, updated_at = $2 WHERE id = $3 AND tenant_id = $4"
	default:
		query = "UPDATE invoices SET status = $1, updated_at = $2 WHERE id = $3 AND tenant_id = $4"
	}

	result, err := r.db.ExecContext(ctx, query, status, at, invoiceID, tenantID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.UpdateStatus: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}

// NextInvoiceNumber increments the tenant's invoice counter atomically and
// returns the new sequence value.
func (r *invoiceRepo) NextInvoiceNumber(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var next int
	err := r.db.GetContext(ctx, &next,
		`INSERT INTO invoice_counters (tenant_id, value) VALUES ($1, 1)
		 ON CONFLICT (tenant_id) DO UPDATE SET value = invoice_counters.value + 1
		 RETURNING value`, tenantID)
	if err != nil {
		return 0, fmt.Errorf("invoiceRepo.NextInvoiceNumber: %w", err)
	}
	return next, nil
}

func (r *invoiceRepo) Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	// Lines go with the invoice via ON DELETE CASCADE.
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE id = $1 AND tenant_id = $2 AND status = $3",
		invoiceID, tenantID, domain.InvoiceStatusDraft)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotDraft
	}
	return nil
}
