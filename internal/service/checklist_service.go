package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"detos/internal/domain"
	"detos/internal/port"
)

// TemplateItemInput is one step of an SOP template.
type TemplateItemInput struct {
	Label         string `json:"label" binding:"required"`
	PhotoRequired bool   `json:"photo_required"`
}

// CreateTemplateInput is the DTO for defining an SOP template.
type CreateTemplateInput struct {
	Name  string              `json:"name" binding:"required"`
	Items []TemplateItemInput `json:"items" binding:"required,min=1"`
}

// CompleteItemInput is the DTO for finishing a checklist step. Photo uploads
// happen through the file service first; the resulting file ID is attached
// here.
type CompleteItemInput struct {
	Status      domain.ChecklistItemStatus `json:"status" binding:"required"`
	PhotoFileID *uuid.UUID                 `json:"photo_file_id"`
}

// TemplateDetail bundles a template with its steps.
type TemplateDetail struct {
	Template *domain.SOPTemplate      `json:"template"`
	Items    []domain.SOPTemplateItem `json:"items"`
}

// ChecklistDetail bundles a checklist instance with its steps.
type ChecklistDetail struct {
	Checklist *domain.Checklist      `json:"checklist"`
	Items     []domain.ChecklistItem `json:"items"`
}

// ChecklistService defines the SOP checklist contract.
type ChecklistService interface {
	CreateTemplate(ctx context.Context, tenantID uuid.UUID, input CreateTemplateInput) (*TemplateDetail, error)
	GetTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateDetail, error)
	ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]domain.SOPTemplate, error)
	// Instantiate copies a template's steps onto a job card as a fresh
	// checklist with every item pending.
	Instantiate(ctx context.Context, tenantID, jobID, templateID uuid.UUID) (*ChecklistDetail, error)
	GetChecklist(ctx context.Context, tenantID, checklistID uuid.UUID) (*ChecklistDetail, error)
	ListByJobCard(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Checklist, error)
	CompleteItem(ctx context.Context, tenantID, userID, itemID uuid.UUID, input CompleteItemInput) (*domain.ChecklistItem, error)
}

type checklistService struct {
	repo        port.ChecklistRepository
	jobCardRepo port.JobCardRepository
	fileRepo    port.FileMetaRepository
}

// NewChecklistService creates a new ChecklistService implementation.
func NewChecklistService(
	repo port.ChecklistRepository,
	jobCardRepo port.JobCardRepository,
	fileRepo port.FileMetaRepository,
) ChecklistService {
	return &checklistService{
		repo:        repo,
		jobCardRepo: jobCardRepo,
		fileRepo:    fileRepo,
	}
}

func (s *checklistService) CreateTemplate(ctx context.Context, tenantID uuid.UUID, input CreateTemplateInput) (*TemplateDetail, error) {
	tpl := &domain.SOPTemplate{
		TenantID: tenantID,
		Name:     input.Name,
		IsActive: true,
	}
	items := make([]domain.SOPTemplateItem, len(input.Items))
	for i, it := range input.Items {
		items[i] = domain.SOPTemplateItem{
			Label:         it.Label,
			PhotoRequired: it.PhotoRequired,
		}
	}

	if err := s.repo.CreateTemplate(ctx, tpl, items); err != nil {
		return nil, err
	}
	return &TemplateDetail{Template: tpl, Items: items}, nil
}

func (s *checklistService) GetTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateDetail, error) {
	tpl, items, err := s.repo.GetTemplate(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}
	return &TemplateDetail{Template: tpl, Items: items}, nil
}

func (s *checklistService) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]domain.SOPTemplate, error) {
	return s.repo.ListTemplates(ctx, tenantID)
}

func (s *checklistService) Instantiate(ctx context.Context, tenantID, jobID, templateID uuid.UUID) (*ChecklistDetail, error) {
	if _, err := s.jobCardRepo.GetByID(ctx, tenantID, jobID); err != nil {
		return nil, err
	}
	tpl, tplItems, err := s.repo.GetTemplate(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}

	cl := &domain.Checklist{
		TenantID:   tenantID,
		JobCardID:  jobID,
		TemplateID: tpl.ID,
		Name:       tpl.Name,
	}
	items := make([]domain.ChecklistItem, len(tplItems))
	for i, ti := range tplItems {
		items[i] = domain.ChecklistItem{
			Label:         ti.Label,
			PhotoRequired: ti.PhotoRequired,
			Status:        domain.ChecklistItemPending,
		}
	}

	if err := s.repo.CreateChecklist(ctx, cl, items); err != nil {
		return nil, err
	}
	return &ChecklistDetail{Checklist: cl, Items: items}, nil
}

func (s *checklistService) GetChecklist(ctx context.Context, tenantID, checklistID uuid.UUID) (*ChecklistDetail, error) {
	cl, items, err := s.repo.GetChecklist(ctx, tenantID, checklistID)
	if err != nil {
		return nil, err
	}
	return &ChecklistDetail{Checklist: cl, Items: items}, nil
}

func (s *checklistService) ListByJobCard(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Checklist, error) {
	return s.repo.ListByJobCard(ctx, tenantID, jobID)
}

func (s *checklistService) CompleteItem(ctx context.Context, tenantID, userID, itemID uuid.UUID, input CompleteItemInput) (*domain.ChecklistItem, error) {
	item, err := s.repo.GetItem(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Status == domain.ChecklistItemDone {
		// A step that mandates photo evidence cannot be marked done without an
		// uploaded photo.
		if input.PhotoFileID == nil && item.PhotoRequired {
			return nil, &domain.ValidationError{Fields: map[string]string{
				"photo_file_id": "photo evidence is required for this step",
			}}
		}
		if input.PhotoFileID != nil {
			meta, err := s.fileRepo.GetByID(ctx, tenantID, *input.PhotoFileID)
			if err != nil {
				return nil, err
			}
			if meta.Status != domain.FileStatusUploaded {
				return nil, domain.ErrUploadFailed
			}
			item.PhotoFileID = input.PhotoFileID
		}
	}

	item.Status = input.Status
	now := time.Now().UTC()
	item.CompletedBy = &userID
	item.CompletedAt = &now

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}
