package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"detos/internal/billing"
	"detos/internal/config"
	"detos/internal/domain"
	"detos/internal/service"
	"detos/mocks"
)

type invoiceServiceFixture struct {
	invoiceRepo  *mocks.MockInvoiceRepo
	planRepo     *mocks.MockPlanRepo
	customerRepo *mocks.MockCustomerRepo
	tenantRepo   *mocks.MockTenantRepo
	email        *mocks.MockEmailSender
	svc          service.InvoiceService

	tenantID   uuid.UUID
	userID     uuid.UUID
	customerID uuid.UUID
	planID     uuid.UUID
}

func newInvoiceServiceFixture() *invoiceServiceFixture {
	f := &invoiceServiceFixture{
		invoiceRepo:  new(mocks.MockInvoiceRepo),
		planRepo:     new(mocks.MockPlanRepo),
		customerRepo: new(mocks.MockCustomerRepo),
		tenantRepo:   new(mocks.MockTenantRepo),
		email:        new(mocks.MockEmailSender),
		tenantID:     uuid.New(),
		userID:       uuid.New(),
		customerID:   uuid.New(),
		planID:       uuid.New(),
	}
	f.svc = service.NewInvoiceService(
		f.invoiceRepo, f.planRepo, f.customerRepo, f.tenantRepo, f.email,
		config.InvoiceConfig{NumberPrefix: "INV"},
	)
	return f
}

// stubParties sets up the seller tenant and a customer in the given state.
// Pass nil for an unregistered walk-in customer.
func (f *invoiceServiceFixture) stubParties(sellerStateID int, customerStateID *int) {
	f.tenantRepo.On("GetByID", mock.Anything, f.tenantID).Return(&domain.Tenant{
		ID:            f.tenantID,
		Name:          "Shine Auto Studio",
		Slug:          "shine-auto",
		SellerStateID: sellerStateID,
		IsActive:      true,
	}, nil)
	f.customerRepo.On("GetByID", mock.Anything, f.tenantID, f.customerID).Return(&domain.Customer{
		ID:       f.customerID,
		TenantID: f.tenantID,
		Name:     "Ravi Kumar",
		Email:    "ravi@example.com",
		StateID:  customerStateID,
	}, nil)
}

func (f *invoiceServiceFixture) stubPlan(price, gstRate string) {
	f.planRepo.On("GetByID", mock.Anything, f.tenantID, f.planID).Return(&domain.ServicePlan{
		ID:       f.planID,
		TenantID: f.tenantID,
		PlanName: "Ceramic Coating",
		SACCode:  "998714",
		Price:    decimal.RequireFromString(price),
		GSTRate:  decimal.RequireFromString(gstRate),
		IsActive: true,
	}, nil)
}

func intPtr(v int) *int { return &v }

func TestInvoiceService_Preview_SplitRegime(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, intPtr(7))
	f.stubPlan("1000.00", "18")

	preview, err := f.svc.Preview(context.Background(), f.tenantID, service.PreviewInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "2"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, billing.RegimeSplit, preview.Regime)
	require.Len(t, preview.Lines, 1)

	line := preview.Lines[0]
	assert.Equal(t, "2000", line.SubAmount.String())
	require.Len(t, line.TaxComponents, 2)
	// 18% splits into 9 + 9.
	assert.Equal(t, "9", line.TaxComponents[0].Percent.String())
	assert.Equal(t, "180", line.TaxComponents[0].Amount.String())

	assert.Equal(t, "2000", preview.Summary.SubTotal.String())
	assert.Equal(t, "180", preview.Summary.CGSTTotal.String())
	assert.Equal(t, "180", preview.Summary.SGSTTotal.String())
	assert.True(t, preview.Summary.IGSTTotal.IsZero())
	assert.Equal(t, "2360", preview.Summary.GrandTotal.String())
}

func TestInvoiceService_Preview_SingleRegime(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, intPtr(29))
	f.stubPlan("500.00", "18")

	preview, err := f.svc.Preview(context.Background(), f.tenantID, service.PreviewInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "1"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, billing.RegimeSingle, preview.Regime)
	assert.True(t, preview.Summary.CGSTTotal.IsZero())
	assert.True(t, preview.Summary.SGSTTotal.IsZero())
	assert.Equal(t, "90", preview.Summary.IGSTTotal.String())
	assert.Equal(t, "590", preview.Summary.GrandTotal.String())
}

func TestInvoiceService_Preview_UnknownBillingState_WithholdsTax(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, nil)
	f.stubPlan("1000.00", "18")

	preview, err := f.svc.Preview(context.Background(), f.tenantID, service.PreviewInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "1"},
		},
	})

	require.NoError(t, err)
	assert.True(t, preview.Summary.CGSTTotal.IsZero())
	assert.True(t, preview.Summary.SGSTTotal.IsZero())
	assert.True(t, preview.Summary.IGSTTotal.IsZero())
	// Grand total carries only the discounted amount until the state resolves.
	assert.Equal(t, "1000", preview.Summary.GrandTotal.String())
}

func TestInvoiceService_Preview_FieldErrors(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, intPtr(7))
	f.stubPlan("1000.00", "18")

	badPlanID := uuid.New()
	f.planRepo.On("GetByID", mock.Anything, f.tenantID, badPlanID).Return(nil, domain.ErrNotFound)

	preview, err := f.svc.Preview(context.Background(), f.tenantID, service.PreviewInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "1", DiscountPercent: "150"},
			{ServicePlanID: badPlanID, Quantity: "1"},
		},
	})

	assert.Nil(t, preview)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "items.0.discount_percent")
	assert.Contains(t, vErr.Fields, "items.1.service_plan_id")
}

func TestInvoiceService_Preview_InactivePlanRejected(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, intPtr(7))
	f.planRepo.On("GetByID", mock.Anything, f.tenantID, f.planID).Return(&domain.ServicePlan{
		ID:       f.planID,
		TenantID: f.tenantID,
		PlanName: "Retired Wash",
		Price:    decimal.RequireFromString("300.00"),
		GSTRate:  decimal.RequireFromString("18"),
		IsActive: false,
	}, nil)

	_, err := f.svc.Preview(context.Background(), f.tenantID, service.PreviewInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "1"},
		},
	})

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "items.0.service_plan_id")
}

func TestInvoiceService_Preview_DiscountExceedsLine(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, intPtr(7))
	f.stubPlan("100.00", "18")

	_, err := f.svc.Preview(context.Background(), f.tenantID, service.PreviewInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "1", DiscountAmount: "250.00", DiscountSource: "amount"},
		},
	})

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "items.0.discount_amount")
}

func TestInvoiceService_Create_Success(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, intPtr(7))
	f.stubPlan("1000.00", "18")

	f.invoiceRepo.On("NextInvoiceNumber", mock.Anything, f.tenantID).Return(42, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.MatchedBy(func(inv *domain.Invoice) bool {
		return inv.InvoiceNumber == "INV-00042" &&
			inv.Status == domain.InvoiceStatusDraft &&
			inv.BillingStateID == 7 &&
			inv.SellerStateID == 7 &&
			inv.GrandTotal.Equal(decimal.RequireFromString("1180"))
	}), mock.AnythingOfType("[]domain.InvoiceLine")).Return(nil)

	detail, err := f.svc.Create(context.Background(), f.tenantID, f.userID, service.CreateInvoiceInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "1"},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-00042", detail.Invoice.InvoiceNumber)
	require.Len(t, detail.Lines, 1)
	assert.Equal(t, "90", detail.Lines[0].CGSTAmount.String())
	assert.Equal(t, "90", detail.Lines[0].SGSTAmount.String())
	assert.True(t, detail.Lines[0].IGSTAmount.IsZero())
	f.invoiceRepo.AssertExpectations(t)
}

func TestInvoiceService_Create_DiscountReconciliation(t *testing.T) {
	f := newInvoiceServiceFixture()
	f.stubParties(7, intPtr(7))
	f.stubPlan("1000.00", "18")

	f.invoiceRepo.On("NextInvoiceNumber", mock.Anything, f.tenantID).Return(1, nil)
	f.invoiceRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Invoice"), mock.AnythingOfType("[]domain.InvoiceLine")).Return(nil)

	detail, err := f.svc.Create(context.Background(), f.tenantID, f.userID, service.CreateInvoiceInput{
		CustomerID: f.customerID,
		Items: []service.InvoiceItemInput{
			{ServicePlanID: f.planID, Quantity: "1", DiscountPercent: "10", DiscountSource: "percent"},
		},
	})

	require.NoError(t, err)
	line := detail.Lines[0]
	assert.Equal(t, "10", line.DiscountPercent.String())
	assert.Equal(t, "100", line.DiscountAmount.String())
	assert.Equal(t, "900", line.DiscountedAmount.String())
	// Tax applies to the discounted amount: 900 * 18% = 162, split 81/81.
	assert.Equal(t, "81", line.CGSTAmount.String())
	assert.Equal(t, "1062", line.TotalAmount.String())
}

func TestInvoiceService_UpdateDraft_NonDraftRejected(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:       invoiceID,
		TenantID: f.tenantID,
		Status:   domain.InvoiceStatusIssued,
	}, nil)

	detail, err := f.svc.UpdateDraft(context.Background(), f.tenantID, invoiceID, service.UpdateInvoiceInput{
		Items: []service.InvoiceItemInput{{ServicePlanID: f.planID, Quantity: "1"}},
	})

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrInvoiceNotDraft)
}

func TestInvoiceService_Issue_Success_SendsEmail(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:             invoiceID,
		TenantID:       f.tenantID,
		InvoiceNumber:  "INV-00007",
		CustomerID:     f.customerID,
		Status:         domain.InvoiceStatusDraft,
		BillingStateID: 7,
	}, nil)
	f.invoiceRepo.On("UpdateStatus", mock.Anything, f.tenantID, invoiceID, domain.InvoiceStatusIssued, mock.AnythingOfType("time.Time")).Return(nil)
	f.customerRepo.On("GetByID", mock.Anything, f.tenantID, f.customerID).Return(&domain.Customer{
		ID:    f.customerID,
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
	}, nil)
	f.email.On("SendInvoiceIssued", mock.Anything, "ravi@example.com", "Ravi Kumar", mock.AnythingOfType("*domain.Invoice")).Return(nil)

	invoice, err := f.svc.Issue(context.Background(), f.tenantID, invoiceID)

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusIssued, invoice.Status)
	assert.NotNil(t, invoice.IssuedAt)
	f.email.AssertExpectations(t)
}

func TestInvoiceService_Issue_EmailFailureDoesNotBlock(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:             invoiceID,
		TenantID:       f.tenantID,
		CustomerID:     f.customerID,
		Status:         domain.InvoiceStatusDraft,
		BillingStateID: 7,
	}, nil)
	f.invoiceRepo.On("UpdateStatus", mock.Anything, f.tenantID, invoiceID, domain.InvoiceStatusIssued, mock.AnythingOfType("time.Time")).Return(nil)
	f.customerRepo.On("GetByID", mock.Anything, f.tenantID, f.customerID).Return(&domain.Customer{
		ID:    f.customerID,
		Name:  "Ravi Kumar",
		Email: "ravi@example.com",
	}, nil)
	f.email.On("SendInvoiceIssued", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp down"))

	invoice, err := f.svc.Issue(context.Background(), f.tenantID, invoiceID)

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusIssued, invoice.Status)
}

func TestInvoiceService_Issue_BillingStateUnset(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:             invoiceID,
		TenantID:       f.tenantID,
		Status:         domain.InvoiceStatusDraft,
		BillingStateID: 0,
	}, nil)

	invoice, err := f.svc.Issue(context.Background(), f.tenantID, invoiceID)

	assert.Nil(t, invoice)
	assert.ErrorIs(t, err, domain.ErrBillingStateUnset)
}

func TestInvoiceService_Issue_NonDraftRejected(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:             invoiceID,
		TenantID:       f.tenantID,
		Status:         domain.InvoiceStatusPaid,
		BillingStateID: 7,
	}, nil)

	_, err := f.svc.Issue(context.Background(), f.tenantID, invoiceID)

	assert.ErrorIs(t, err, domain.ErrInvoiceNotDraft)
}

func TestInvoiceService_MarkPaid_Success(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:       invoiceID,
		TenantID: f.tenantID,
		Status:   domain.InvoiceStatusIssued,
	}, nil)
	f.invoiceRepo.On("UpdateStatus", mock.Anything, f.tenantID, invoiceID, domain.InvoiceStatusPaid, mock.AnythingOfType("time.Time")).Return(nil)

	invoice, err := f.svc.MarkPaid(context.Background(), f.tenantID, invoiceID)

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusPaid, invoice.Status)
	assert.NotNil(t, invoice.PaidAt)
}

func TestInvoiceService_MarkPaid_DraftRejected(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:       invoiceID,
		TenantID: f.tenantID,
		Status:   domain.InvoiceStatusDraft,
	}, nil)

	_, err := f.svc.MarkPaid(context.Background(), f.tenantID, invoiceID)

	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
}

func TestInvoiceService_Void_PaidRejected(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:       invoiceID,
		TenantID: f.tenantID,
		Status:   domain.InvoiceStatusPaid,
	}, nil)

	_, err := f.svc.Void(context.Background(), f.tenantID, invoiceID)

	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
}

func TestInvoiceService_Void_IssuedAllowed(t *testing.T) {
	f := newInvoiceServiceFixture()
	invoiceID := uuid.New()

	f.invoiceRepo.On("GetByID", mock.Anything, f.tenantID, invoiceID).Return(&domain.Invoice{
		ID:       invoiceID,
		TenantID: f.tenantID,
		Status:   domain.InvoiceStatusIssued,
	}, nil)
	f.invoiceRepo.On("UpdateStatus", mock.Anything, f.tenantID, invoiceID, domain.InvoiceStatusVoid, mock.AnythingOfType("time.Time")).Return(nil)

	invoice, err := f.svc.Void(context.Background(), f.tenantID, invoiceID)

	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusVoid, invoice.Status)
}
