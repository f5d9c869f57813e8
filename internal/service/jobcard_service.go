package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/port"
)

// JobCardPlanInput is one service sold on a job card.
type JobCardPlanInput struct {
	ServicePlanID uuid.UUID `json:"service_plan_id" binding:"required"`
	Quantity      int       `json:"quantity" binding:"required,min=1"`
}

// CreateJobCardInput is the DTO for opening a job card.
type CreateJobCardInput struct {
	CustomerID uuid.UUID          `json:"customer_id" binding:"required"`
	VehicleID  uuid.UUID          `json:"vehicle_id" binding:"required"`
	Notes      string             `json:"notes"`
	AssignedTo *uuid.UUID         `json:"assigned_to"`
	Plans      []JobCardPlanInput `json:"plans" binding:"required,min=1"`
}

// UpdateJobCardInput is the DTO for updating an open job card.
type UpdateJobCardInput struct {
	Notes      *string            `json:"notes"`
	AssignedTo *uuid.UUID         `json:"assigned_to"`
	Plans      []JobCardPlanInput `json:"plans"`
}

// JobCardDetail bundles a job card with its sold plans.
type JobCardDetail struct {
	JobCard *domain.JobCard      `json:"job_card"`
	Plans   []domain.JobCardPlan `json:"plans"`
}

// jobCardTransitions is the set of allowed status changes.
var jobCardTransitions = map[domain.JobCardStatus][]domain.JobCardStatus{
	domain.JobCardStatusOpen:       {domain.JobCardStatusInProgress, domain.JobCardStatusCancelled},
	domain.JobCardStatusInProgress: {domain.JobCardStatusCompleted, domain.JobCardStatusCancelled},
	domain.JobCardStatusCompleted:  {domain.JobCardStatusInvoiced},
}

// JobCardService defines the workshop job contract.
type JobCardService interface {
	Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateJobCardInput) (*JobCardDetail, error)
	GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*JobCardDetail, error)
	List(ctx context.Context, tenantID uuid.UUID, status domain.JobCardStatus, offset, limit int) ([]domain.JobCard, int, error)
	Update(ctx context.Context, tenantID, jobID uuid.UUID, input UpdateJobCardInput) (*JobCardDetail, error)
	ChangeStatus(ctx context.Context, tenantID, jobID uuid.UUID, status domain.JobCardStatus) (*domain.JobCard, error)
	// GenerateInvoice turns a completed job card into a draft invoice carrying
	// one line per sold plan, then marks the job invoiced.
	GenerateInvoice(ctx context.Context, tenantID, userID, jobID uuid.UUID) (*InvoiceDetail, error)
	Delete(ctx context.Context, tenantID, jobID uuid.UUID) error
}

type jobCardService struct {
	repo           port.JobCardRepository
	customerRepo   port.CustomerRepository
	vehicleRepo    port.VehicleRepository
	invoiceService InvoiceService
}

// NewJobCardService creates a new JobCardService implementation.
func NewJobCardService(
	repo port.JobCardRepository,
	customerRepo port.CustomerRepository,
	vehicleRepo port.VehicleRepository,
	invoiceService InvoiceService,
) JobCardService {
	return &jobCardService{
		repo:           repo,
		customerRepo:   customerRepo,
		vehicleRepo:    vehicleRepo,
		invoiceService: invoiceService,
	}
}

func (s *jobCardService) Create(ctx context.Context, tenantID, userID uuid.UUID, input CreateJobCardInput) (*JobCardDetail, error) {
	if _, err := s.customerRepo.GetByID(ctx, tenantID, input.CustomerID); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicleRepo.GetByID(ctx, tenantID, input.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.CustomerID != input.CustomerID {
		return nil, domain.ErrVehicleNotFound
	}

	seq, err := s.repo.NextJobNumber(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	job := &domain.JobCard{
		TenantID:   tenantID,
		JobNumber:  fmt.Sprintf("JOB-%05d", seq),
		CustomerID: input.CustomerID,
		VehicleID:  input.VehicleID,
		Status:     domain.JobCardStatusOpen,
		Notes:      input.Notes,
		AssignedTo: input.AssignedTo,
		OpenedAt:   time.Now().UTC(),
		CreatedBy:  userID,
	}
	plans := make([]domain.JobCardPlan, len(input.Plans))
	for i, p := range input.Plans {
		plans[i] = domain.JobCardPlan{ServicePlanID: p.ServicePlanID, Quantity: p.Quantity}
	}

	if err := s.repo.Create(ctx, job, plans); err != nil {
		return nil, err
	}
	return &JobCardDetail{JobCard: job, Plans: plans}, nil
}

func (s *jobCardService) GetByID(ctx context.Context, tenantID, jobID uuid.UUID) (*JobCardDetail, error) {
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	plans, err := s.repo.GetPlans(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	return &JobCardDetail{JobCard: job, Plans: plans}, nil
}

func (s *jobCardService) List(ctx context.Context, tenantID uuid.UUID, status domain.JobCardStatus, offset, limit int) ([]domain.JobCard, int, error) {
	return s.repo.ListByTenant(ctx, tenantID, status, offset, limit)
}

func (s *jobCardService) Update(ctx context.Context, tenantID, jobID uuid.UUID, input UpdateJobCardInput) (*JobCardDetail, error) {
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobCardStatusInvoiced || job.Status == domain.JobCardStatusCancelled {
		return nil, domain.ErrInvalidStatusChange
	}

	if input.Notes != nil {
		job.Notes = *input.Notes
	}
	if input.AssignedTo != nil {
		job.AssignedTo = input.AssignedTo
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	if input.Plans != nil {
		plans := make([]domain.JobCardPlan, len(input.Plans))
		for i, p := range input.Plans {
			plans[i] = domain.JobCardPlan{ServicePlanID: p.ServicePlanID, Quantity: p.Quantity}
		}
		if err := s.repo.SetPlans(ctx, tenantID, jobID, plans); err != nil {
			return nil, err
		}
	}

	return s.GetByID(ctx, tenantID, jobID)
}

func (s *jobCardService) ChangeStatus(ctx context.Context, tenantID, jobID uuid.UUID, status domain.JobCardStatus) (*domain.JobCard, error) {
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, next := range jobCardTransitions[job.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, domain.ErrInvalidStatusChange
	}

	job.Status = status
	if status == domain.JobCardStatusCompleted {
		now := time.Now().UTC()
		job.CompletedAt = &now
	}
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *jobCardService) GenerateInvoice(ctx context.Context, tenantID, userID, jobID uuid.UUID) (*InvoiceDetail, error) {
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}
	if job.InvoiceID != nil {
		return nil, domain.ErrJobCardAlreadyBilled
	}
	if job.Status != domain.JobCardStatusCompleted {
		return nil, domain.ErrJobCardNotCompleted
	}

	plans, err := s.repo.GetPlans(ctx, tenantID, jobID)
	if err != nil {
		return nil, err
	}

	items := make([]InvoiceItemInput, len(plans))
	for i, p := range plans {
		items[i] = InvoiceItemInput{
			ServicePlanID: p.ServicePlanID,
			Quantity:      strconv.Itoa(p.Quantity),
		}
	}

	detail, err := s.invoiceService.Create(ctx, tenantID, userID, CreateInvoiceInput{
		CustomerID: job.CustomerID,
		VehicleID:  &job.VehicleID,
		JobCardID:  &job.ID,
		Items:      items,
	})
	if err != nil {
		return nil, err
	}

	job.Status = domain.JobCardStatusInvoiced
	job.InvoiceID = &detail.Invoice.ID
	if err := s.repo.Update(ctx, job); err != nil {
		return nil, err
	}

	log.Printf("jobCardService.GenerateInvoice: job %s -> invoice %s (tenant %s)",
		job.JobNumber, detail.Invoice.InvoiceNumber, tenantID)
	return detail, nil
}

func (s *jobCardService) Delete(ctx context.Context, tenantID, jobID uuid.UUID) error {
	job, err := s.repo.GetByID(ctx, tenantID, jobID)
	if err != nil {
		return err
	}
	if job.Status == domain.JobCardStatusInvoiced {
		return domain.ErrJobCardAlreadyBilled
	}
	return s.repo.Delete(ctx, tenantID, jobID)
}
