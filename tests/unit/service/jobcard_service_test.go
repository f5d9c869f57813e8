package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"detos/internal/domain"
	"detos/internal/service"
	"detos/mocks"
)

type jobCardServiceFixture struct {
	repo         *mocks.MockJobCardRepo
	customerRepo *mocks.MockCustomerRepo
	vehicleRepo  *mocks.MockVehicleRepo
	invoiceSvc   *mocks.MockInvoiceService
	svc          service.JobCardService

	tenantID   uuid.UUID
	userID     uuid.UUID
	customerID uuid.UUID
	vehicleID  uuid.UUID
	jobID      uuid.UUID
}

func newJobCardServiceFixture() *jobCardServiceFixture {
	f := &jobCardServiceFixture{
		repo:         new(mocks.MockJobCardRepo),
		customerRepo: new(mocks.MockCustomerRepo),
		vehicleRepo:  new(mocks.MockVehicleRepo),
		invoiceSvc:   new(mocks.MockInvoiceService),
		tenantID:     uuid.New(),
		userID:       uuid.New(),
		customerID:   uuid.New(),
		vehicleID:    uuid.New(),
		jobID:        uuid.New(),
	}
	f.svc = service.NewJobCardService(f.repo, f.customerRepo, f.vehicleRepo, f.invoiceSvc)
	return f
}

func TestJobCardService_Create_Success(t *testing.T) {
	f := newJobCardServiceFixture()
	planID := uuid.New()

	f.customerRepo.On("GetByID", mock.Anything, f.tenantID, f.customerID).Return(&domain.Customer{
		ID: f.customerID, TenantID: f.tenantID, Name: "Ravi Kumar",
	}, nil)
	f.vehicleRepo.On("GetByID", mock.Anything, f.tenantID, f.vehicleID).Return(&domain.Vehicle{
		ID: f.vehicleID, TenantID: f.tenantID, CustomerID: f.customerID, RegistrationNo: "DL01AB1234",
	}, nil)
	f.repo.On("NextJobNumber", mock.Anything, f.tenantID).Return(7, nil)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(job *domain.JobCard) bool {
		return job.JobNumber == "JOB-00007" && job.Status == domain.JobCardStatusOpen
	}), mock.AnythingOfType("[]domain.JobCardPlan")).Return(nil)

	detail, err := f.svc.Create(context.Background(), f.tenantID, f.userID, service.CreateJobCardInput{
		CustomerID: f.customerID,
		VehicleID:  f.vehicleID,
		Notes:      "full interior detail",
		Plans:      []service.JobCardPlanInput{{ServicePlanID: planID, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, "JOB-00007", detail.JobCard.JobNumber)
	assert.Equal(t, domain.JobCardStatusOpen, detail.JobCard.Status)
	require.Len(t, detail.Plans, 1)
	assert.Equal(t, planID, detail.Plans[0].ServicePlanID)
	f.repo.AssertExpectations(t)
}

func TestJobCardService_Create_VehicleBelongsToOtherCustomer(t *testing.T) {
	f := newJobCardServiceFixture()

	f.customerRepo.On("GetByID", mock.Anything, f.tenantID, f.customerID).Return(&domain.Customer{
		ID: f.customerID, TenantID: f.tenantID,
	}, nil)
	f.vehicleRepo.On("GetByID", mock.Anything, f.tenantID, f.vehicleID).Return(&domain.Vehicle{
		ID: f.vehicleID, TenantID: f.tenantID, CustomerID: uuid.New(),
	}, nil)

	detail, err := f.svc.Create(context.Background(), f.tenantID, f.userID, service.CreateJobCardInput{
		CustomerID: f.customerID,
		VehicleID:  f.vehicleID,
		Plans:      []service.JobCardPlanInput{{ServicePlanID: uuid.New(), Quantity: 1}},
	})

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestJobCardService_ChangeStatus_AllowedTransition(t *testing.T) {
	f := newJobCardServiceFixture()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID: f.jobID, TenantID: f.tenantID, Status: domain.JobCardStatusInProgress,
	}, nil)
	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(job *domain.JobCard) bool {
		return job.Status == domain.JobCardStatusCompleted && job.CompletedAt != nil
	})).Return(nil)

	job, err := f.svc.ChangeStatus(context.Background(), f.tenantID, f.jobID, domain.JobCardStatusCompleted)

	require.NoError(t, err)
	assert.Equal(t, domain.JobCardStatusCompleted, job.Status)
	assert.NotNil(t, job.CompletedAt)
}

func TestJobCardService_ChangeStatus_SkippingStagesRejected(t *testing.T) {
	f := newJobCardServiceFixture()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID: f.jobID, TenantID: f.tenantID, Status: domain.JobCardStatusOpen,
	}, nil)

	job, err := f.svc.ChangeStatus(context.Background(), f.tenantID, f.jobID, domain.JobCardStatusCompleted)

	assert.Nil(t, job)
	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
}

func TestJobCardService_ChangeStatus_CancelledIsTerminal(t *testing.T) {
	f := newJobCardServiceFixture()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID: f.jobID, TenantID: f.tenantID, Status: domain.JobCardStatusCancelled,
	}, nil)

	_, err := f.svc.ChangeStatus(context.Background(), f.tenantID, f.jobID, domain.JobCardStatusOpen)

	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
}

func TestJobCardService_GenerateInvoice_Success(t *testing.T) {
	f := newJobCardServiceFixture()
	planID := uuid.New()
	invoiceID := uuid.New()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID:         f.jobID,
		TenantID:   f.tenantID,
		JobNumber:  "JOB-00003",
		CustomerID: f.customerID,
		VehicleID:  f.vehicleID,
		Status:     domain.JobCardStatusCompleted,
	}, nil)
	f.repo.On("GetPlans", mock.Anything, f.tenantID, f.jobID).Return([]domain.JobCardPlan{
		{JobCardID: f.jobID, ServicePlanID: planID, Quantity: 2},
	}, nil)

	f.invoiceSvc.On("Create", mock.Anything, f.tenantID, f.userID, mock.MatchedBy(func(input service.CreateInvoiceInput) bool {
		return input.CustomerID == f.customerID &&
			input.JobCardID != nil && *input.JobCardID == f.jobID &&
			len(input.Items) == 1 && input.Items[0].Quantity == "2"
	})).Return(&service.InvoiceDetail{
		Invoice: &domain.Invoice{ID: invoiceID, InvoiceNumber: "INV-00009", Status: domain.InvoiceStatusDraft},
	}, nil)

	f.repo.On("Update", mock.Anything, mock.MatchedBy(func(job *domain.JobCard) bool {
		return job.Status == domain.JobCardStatusInvoiced &&
			job.InvoiceID != nil && *job.InvoiceID == invoiceID
	})).Return(nil)

	detail, err := f.svc.GenerateInvoice(context.Background(), f.tenantID, f.userID, f.jobID)

	require.NoError(t, err)
	assert.Equal(t, "INV-00009", detail.Invoice.InvoiceNumber)
	f.repo.AssertExpectations(t)
	f.invoiceSvc.AssertExpectations(t)
}

func TestJobCardService_GenerateInvoice_NotCompleted(t *testing.T) {
	f := newJobCardServiceFixture()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID: f.jobID, TenantID: f.tenantID, Status: domain.JobCardStatusInProgress,
	}, nil)

	detail, err := f.svc.GenerateInvoice(context.Background(), f.tenantID, f.userID, f.jobID)

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrJobCardNotCompleted)
}

func TestJobCardService_GenerateInvoice_AlreadyBilled(t *testing.T) {
	f := newJobCardServiceFixture()
	existingInvoice := uuid.New()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID: f.jobID, TenantID: f.tenantID, Status: domain.JobCardStatusInvoiced, InvoiceID: &existingInvoice,
	}, nil)

	_, err := f.svc.GenerateInvoice(context.Background(), f.tenantID, f.userID, f.jobID)

	assert.ErrorIs(t, err, domain.ErrJobCardAlreadyBilled)
}

func TestJobCardService_Update_InvoicedRejected(t *testing.T) {
	f := newJobCardServiceFixture()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID: f.jobID, TenantID: f.tenantID, Status: domain.JobCardStatusInvoiced,
	}, nil)

	notes := "late edit"
	_, err := f.svc.Update(context.Background(), f.tenantID, f.jobID, service.UpdateJobCardInput{Notes: &notes})

	assert.ErrorIs(t, err, domain.ErrInvalidStatusChange)
}

func TestJobCardService_Delete_InvoicedRejected(t *testing.T) {
	f := newJobCardServiceFixture()

	f.repo.On("GetByID", mock.Anything, f.tenantID, f.jobID).Return(&domain.JobCard{
		ID: f.jobID, TenantID: f.tenantID, Status: domain.JobCardStatusInvoiced,
	}, nil)

	err := f.svc.Delete(context.Background(), f.tenantID, f.jobID)

	assert.ErrorIs(t, err, domain.ErrJobCardAlreadyBilled)
}
