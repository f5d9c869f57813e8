package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"detos/internal/domain"
)

// InvoiceFilters narrows invoice listings.
type InvoiceFilters struct {
	Status     domain.InvoiceStatus
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
}

// InvoiceRepository defines the contract for invoice persistence. An invoice
// and its lines are written atomically; lines never outlive their invoice.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	GetLines(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]domain.InvoiceLine, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, filters *InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error)
	ListForExport(ctx context.Context, tenantID uuid.UUID, filters *InvoiceFilters) ([]domain.Invoice, error)
	// ReplaceLines rewrites a draft invoice's header totals and full line set
	// in one transaction.
	ReplaceLines(ctx context.Context, invoice *domain.Invoice, lines []domain.InvoiceLine) error
	UpdateStatus(ctx context.Context, tenantID, invoiceID uuid.UUID, status domain.InvoiceStatus, at time.Time) error
	NextInvoiceNumber(ctx context.Context, tenantID uuid.UUID) (int, error)
	Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error
}

// ServicePlanRepository defines the contract for the service catalogue.
type ServicePlanRepository interface {
	Create(ctx context.Context, plan *domain.ServicePlan) error
	GetByID(ctx context.Context, tenantID, planID uuid.UUID) (*domain.ServicePlan, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool, offset, limit int) ([]domain.ServicePlan, int, error)
	Update(ctx context.Context, plan *domain.ServicePlan) error
	Delete(ctx context.Context, tenantID, planID uuid.UUID) error
}
