package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"detos/internal/billing"
	"detos/internal/config"
	"detos/internal/domain"
	"detos/internal/port"
)

// InvoiceItemInput is one line of an invoice submission. Numeric fields
// arrive as raw strings and go through the billing normalizer so the server
// never trusts client arithmetic.
type InvoiceItemInput struct {
	ServicePlanID   uuid.UUID `json:"service_plan_id" binding:"required"`
	Quantity        string    `json:"quantity"`
	DiscountPercent string    `json:"discount_percent"`
	DiscountAmount  string    `json:"discount_amount"`
	DiscountSource  string    `json:"discount_source"`
}

// CreateInvoiceInput is the DTO for creating a draft invoice.
type CreateInvoiceInput struct {
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	VehicleID  *uuid.UUID         `json:"vehicle_id"`
	JobCardID  *uuid.UUID         `json:"-"`
	Items      []InvoiceItemInput `json:"items" binding:"required,min=1"`
}

// UpdateInvoiceInput is the DTO for replacing a draft invoice's lines.
type UpdateInvoiceInput struct {
	VehicleID *uuid.UUID         `json:"vehicle_id"`
	Items     []InvoiceItemInput `json:"items" binding:"required,min=1"`
}

// PreviewInput is the DTO for a stateless cost computation.
type PreviewInput struct {
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	Items      []InvoiceItemInput `json:"items" binding:"required,min=1"`
}

// InvoicePreview is the engine's view of a submission before anything is
// persisted.
type InvoicePreview struct {
	Lines   []billing.LineItem  `json:"lines"`
	Summary billing.CostSummary `json:"summary"`
	Regime  billing.Regime      `json:"regime"`
}

// InvoiceDetail bundles an invoice with its lines.
type InvoiceDetail struct {
	Invoice *domain.Invoice      `json:"invoice"`
	Lines   []domain.InvoiceLine `json:"lines"`
}

// InvoiceService defines the invoicing contract.
type InvoiceService interface {
	Preview(ctx context.Context, tenantID uuid.UUID, input PreviewInput) (*InvoicePreview, error)
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateInvoiceInput) (*InvoiceDetail, error)
	GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceDetail, error)
	List(ctx context.Context, tenantID uuid.UUID, filters *port.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error)
	UpdateDraft(ctx context.Context, tenantID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*InvoiceDetail, error)
	Issue(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	Void(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error)
	Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error
}

type invoiceService struct {
	invoiceRepo  port.InvoiceRepository
	planRepo     port.ServicePlanRepository
	customerRepo port.CustomerRepository
	tenantRepo   port.TenantRepository
	email        port.EmailSender
	cfg          config.InvoiceConfig
}

// NewInvoiceService creates a new InvoiceService implementation.
func NewInvoiceService(
	invoiceRepo port.InvoiceRepository,
	planRepo port.ServicePlanRepository,
	customerRepo port.CustomerRepository,
	tenantRepo port.TenantRepository,
	email port.EmailSender,
	cfg config.InvoiceConfig,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		planRepo:     planRepo,
		customerRepo: customerRepo,
		tenantRepo:   tenantRepo,
		email:        email,
		cfg:          cfg,
	}
}

// buildSession recomputes a full submission through the billing engine. All
// numeric inputs pass through the normalizer; anything malformed becomes a
// field error keyed items.<rowIndex>.<fieldName>.
func (s *invoiceService) buildSession(ctx context.Context, tenantID, customerID uuid.UUID, items []InvoiceItemInput) (*billing.Session, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	customer, err := s.customerRepo.GetByID(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}

	session := billing.NewSession(tenant.SellerStateID)
	if customer.StateID != nil {
		session.SetBillingState(*customer.StateID)
	}

	fields := map[string]string{}
	for i, item := range items {
		plan, err := s.planRepo.GetByID(ctx, tenantID, item.ServicePlanID)
		if err != nil {
			fields[billing.FieldErrorKey(i, "service_plan_id")] = "unknown service plan"
			continue
		}
		if !plan.IsActive {
			fields[billing.FieldErrorKey(i, "service_plan_id")] = "service plan is inactive"
			continue
		}

		if _, ok := billing.NormalizePercent(item.DiscountPercent); !ok {
			fields[billing.FieldErrorKey(i, "discount_percent")] = "must be a percentage between 0 and 100 with up to 4 decimal places"
		}
		if _, ok := billing.NormalizeAmount(item.DiscountAmount); !ok {
			fields[billing.FieldErrorKey(i, "discount_amount")] = "must be a non-negative amount with up to 2 decimal places"
		}

		qty := billing.CommitQuantity(billing.NormalizeQuantity(item.Quantity))
		pct := billing.CommitPercent(item.DiscountPercent)
		amt := billing.CommitAmount(item.DiscountAmount)

		source := billing.SourcePercent
		if item.DiscountSource == string(billing.SourceAmount) {
			source = billing.SourceAmount
		}

		line := session.RestoreLine(billing.PlanRef{
			ServicePlanID: plan.ID,
			Name:          plan.PlanName,
			SACCode:       plan.SACCode,
			Price:         plan.Price,
			GSTRate:       plan.GSTRate,
		}, qty, pct, amt, source)

		if line.Inconsistent {
			fields[billing.FieldErrorKey(i, "discount_amount")] = "discount exceeds line amount"
		}
	}

	if len(fields) > 0 {
		return nil, &domain.ValidationError{Fields: fields}
	}
	return session, nil
}

// linesFromSession flattens engine output into persistable invoice lines.
func linesFromSession(session *billing.Session) []domain.InvoiceLine {
	src := session.Lines()
	lines := make([]domain.InvoiceLine, len(src))
	for i, l := range src {
		line := domain.InvoiceLine{
			ServicePlanID:    l.ServicePlanID,
			Position:         i,
			PlanName:         l.Name,
			SACCode:          l.SACCode,
			UnitPrice:        l.UnitPrice,
			Quantity:         l.Quantity,
			DiscountPercent:  l.DiscountPercent,
			DiscountAmount:   l.DiscountAmount,
			DiscountSource:   string(l.DiscountSource),
			SubAmount:        l.SubAmount,
			DiscountedAmount: l.DiscountedAmount,
			CGSTRate:         decimal.Zero,
			CGSTAmount:       decimal.Zero,
			SGSTRate:         decimal.Zero,
			SGSTAmount:       decimal.Zero,
			IGSTRate:         decimal.Zero,
			IGSTAmount:       decimal.Zero,
			TotalAmount:      l.TotalAmount,
		}
		for _, c := range l.TaxComponents {
			switch c.Label {
			case billing.ComponentCGST:
				line.CGSTRate = c.Percent
				line.CGSTAmount = c.Amount
			case billing.ComponentSGST:
				line.SGSTRate = c.Percent
				line.SGSTAmount = c.Amount
			case billing.ComponentIGST:
				line.IGSTRate = c.Percent
				line.IGSTAmount = c.Amount
			}
		}
		lines[i] = line
	}
	return lines
}

func applySummary(inv *domain.Invoice, summary billing.CostSummary) {
	inv.TotalItems = summary.TotalItems
	inv.SubTotal = summary.SubTotal
	inv.DiscountTotal = summary.DiscountTotal
	inv.CGSTTotal = summary.CGSTTotal
	inv.SGSTTotal = summary.SGSTTotal
	inv.IGSTTotal = summary.IGSTTotal
	inv.GrandTotal = summary.GrandTotal
}

func (s *invoiceService) Preview(ctx context.Context, tenantID uuid.UUID, input PreviewInput) (*InvoicePreview, error) {
	session, err := s.buildSession(ctx, tenantID, input.CustomerID, input.Items)
	if err != nil {
		return nil, err
	}

	regime, _ := session.Regime()
	return &InvoicePreview{
		Lines:   session.Lines(),
		Summary: session.Summary(),
		Regime:  regime,
	}, nil
}

func (s *invoiceService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateInvoiceInput) (*InvoiceDetail, error) {
	session, err := s.buildSession(ctx, tenantID, input.CustomerID, input.Items)
	if err != nil {
		return nil, err
	}

	seq, err := s.invoiceRepo.NextInvoiceNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	invoice := &domain.Invoice{
		TenantID:       tenantID,
		InvoiceNumber:  fmt.Sprintf("%s-%05d", s.cfg.NumberPrefix, seq),
		CustomerID:     input.CustomerID,
		VehicleID:      input.VehicleID,
		JobCardID:      input.JobCardID,
		Status:         domain.InvoiceStatusDraft,
		BillingStateID: session.BillingStateID(),
		SellerStateID:  session.SellerStateID(),
		CreatedBy:      userID,
	}
	applySummary(invoice, session.Summary())

	lines := linesFromSession(session)
	if err := s.invoiceRepo.Create(ctx, invoice, lines); err != nil {
		return nil, err
	}

	log.Printf("invoiceService.Create: created draft %s for tenant %s (%d lines, grand total %s)",
		invoice.InvoiceNumber, tenantID, len(lines), invoice.GrandTotal)
	return &InvoiceDetail{Invoice: invoice, Lines: lines}, nil
}

func (s *invoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	lines, err := s.invoiceRepo.GetLines(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	return &InvoiceDetail{Invoice: invoice, Lines: lines}, nil
}

func (s *invoiceService) List(ctx context.Context, tenantID uuid.UUID, filters *port.InvoiceFilters, offset, limit int) ([]domain.Invoice, int, error) {
	return s.invoiceRepo.ListByTenant(ctx, tenantID, filters, offset, limit)
}

func (s *invoiceService) UpdateDraft(ctx context.Context, tenantID, invoiceID uuid.UUID, input UpdateInvoiceInput) (*InvoiceDetail, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}

	session, err := s.buildSession(ctx, tenantID, invoice.CustomerID, input.Items)
	if err != nil {
		return nil, err
	}

	if input.VehicleID != nil {
		invoice.VehicleID = input.VehicleID
	}
	invoice.BillingStateID = session.BillingStateID()
	applySummary(invoice, session.Summary())

	lines := linesFromSession(session)
	if err := s.invoiceRepo.ReplaceLines(ctx, invoice, lines); err != nil {
		return nil, err
	}
	return &InvoiceDetail{Invoice: invoice, Lines: lines}, nil
}

func (s *invoiceService) Issue(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusDraft {
		return nil, domain.ErrInvoiceNotDraft
	}
	// An invoice computed without a billing state carries no tax columns and
	// must not be issued.
	if invoice.BillingStateID <= 0 {
		return nil, domain.ErrBillingStateUnset
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateStatus(ctx, tenantID, invoiceID, domain.InvoiceStatusIssued, now); err != nil {
		return nil, err
	}
	invoice.Status = domain.InvoiceStatusIssued
	invoice.IssuedAt = &now

	// Best-effort notification; issuing never fails on email problems.
	if customer, cErr := s.customerRepo.GetByID(ctx, tenantID, invoice.CustomerID); cErr == nil && customer.Email != "" {
		if mailErr := s.email.SendInvoiceIssued(ctx, customer.Email, customer.Name, invoice); mailErr != nil {
			log.Printf("invoiceService.Issue: failed to email invoice %s: %v", invoice.InvoiceNumber, mailErr)
		}
	}

	log.Printf("invoiceService.Issue: issued %s for tenant %s", invoice.InvoiceNumber, tenantID)
	return invoice, nil
}

func (s *invoiceService) MarkPaid(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusIssued {
		return nil, domain.ErrInvalidStatusChange
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateStatus(ctx, tenantID, invoiceID, domain.InvoiceStatusPaid, now); err != nil {
		return nil, err
	}
	invoice.Status = domain.InvoiceStatusPaid
	invoice.PaidAt = &now
	return invoice, nil
}

func (s *invoiceService) Void(ctx context.Context, tenantID, invoiceID uuid.UUID) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice.Status != domain.InvoiceStatusDraft && invoice.Status != domain.InvoiceStatusIssued {
		return nil, domain.ErrInvalidStatusChange
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, tenantID, invoiceID, domain.InvoiceStatusVoid, time.Now().UTC()); err != nil {
		return nil, err
	}
	invoice.Status = domain.InvoiceStatusVoid
	return invoice, nil
}

func (s *invoiceService) Delete(ctx context.Context, tenantID, invoiceID uuid.UUID) error {
	return s.invoiceRepo.Delete(ctx, tenantID, invoiceID)
}
