package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"detos/internal/domain"
	"detos/internal/service"
	"detos/mocks"
)

type checklistServiceFixture struct {
	repo        *mocks.MockChecklistRepo
	jobCardRepo *mocks.MockJobCardRepo
	fileRepo    *mocks.MockFileMetaRepo
	svc         service.ChecklistService

	tenantID uuid.UUID
	userID   uuid.UUID
}

func newChecklistServiceFixture() *checklistServiceFixture {
	f := &checklistServiceFixture{
		repo:        new(mocks.MockChecklistRepo),
		jobCardRepo: new(mocks.MockJobCardRepo),
		fileRepo:    new(mocks.MockFileMetaRepo),
		tenantID:    uuid.New(),
		userID:      uuid.New(),
	}
	f.svc = service.NewChecklistService(f.repo, f.jobCardRepo, f.fileRepo)
	return f
}

func TestChecklistService_CreateTemplate_Success(t *testing.T) {
	f := newChecklistServiceFixture()

	f.repo.On("CreateTemplate", mock.Anything, mock.MatchedBy(func(tpl *domain.SOPTemplate) bool {
		return tpl.Name == "Exterior Detail SOP" && tpl.IsActive
	}), mock.AnythingOfType("[]domain.SOPTemplateItem")).Return(nil)

	detail, err := f.svc.CreateTemplate(context.Background(), f.tenantID, service.CreateTemplateInput{
		Name: "Exterior Detail SOP",
		Items: []service.TemplateItemInput{
			{Label: "Foam wash", PhotoRequired: false},
			{Label: "Paint correction pass", PhotoRequired: true},
		},
	})

	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.True(t, detail.Items[1].PhotoRequired)
	f.repo.AssertExpectations(t)
}

func TestChecklistService_Instantiate_CopiesTemplateSteps(t *testing.T) {
	f := newChecklistServiceFixture()
	jobID := uuid.New()
	templateID := uuid.New()

	f.jobCardRepo.On("GetByID", mock.Anything, f.tenantID, jobID).Return(&domain.JobCard{
		ID: jobID, TenantID: f.tenantID, Status: domain.JobCardStatusInProgress,
	}, nil)
	f.repo.On("GetTemplate", mock.Anything, f.tenantID, templateID).Return(
		&domain.SOPTemplate{ID: templateID, TenantID: f.tenantID, Name: "Interior SOP", IsActive: true},
		[]domain.SOPTemplateItem{
			{TemplateID: templateID, Label: "Vacuum cabin", PhotoRequired: false},
			{TemplateID: templateID, Label: "Leather treatment", PhotoRequired: true},
		}, nil)
	f.repo.On("CreateChecklist", mock.Anything, mock.MatchedBy(func(cl *domain.Checklist) bool {
		return cl.JobCardID == jobID && cl.TemplateID == templateID && cl.Name == "Interior SOP"
	}), mock.MatchedBy(func(items []domain.ChecklistItem) bool {
		if len(items) != 2 {
			return false
		}
		for _, it := range items {
			if it.Status != domain.ChecklistItemPending {
				return false
			}
		}
		return true
	})).Return(nil)

	detail, err := f.svc.Instantiate(context.Background(), f.tenantID, jobID, templateID)

	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, domain.ChecklistItemPending, detail.Items[0].Status)
	f.repo.AssertExpectations(t)
}

func TestChecklistService_Instantiate_UnknownJobCard(t *testing.T) {
	f := newChecklistServiceFixture()
	jobID := uuid.New()

	f.jobCardRepo.On("GetByID", mock.Anything, f.tenantID, jobID).Return(nil, domain.ErrNotFound)

	detail, err := f.svc.Instantiate(context.Background(), f.tenantID, jobID, uuid.New())

	assert.Nil(t, detail)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChecklistService_CompleteItem_PhotoRequiredMissing(t *testing.T) {
	f := newChecklistServiceFixture()
	itemID := uuid.New()

	f.repo.On("GetItem", mock.Anything, f.tenantID, itemID).Return(&domain.ChecklistItem{
		ID:            itemID,
		TenantID:      f.tenantID,
		Label:         "Paint correction pass",
		PhotoRequired: true,
		Status:        domain.ChecklistItemPending,
	}, nil)

	item, err := f.svc.CompleteItem(context.Background(), f.tenantID, f.userID, itemID, service.CompleteItemInput{
		Status: domain.ChecklistItemDone,
	})

	assert.Nil(t, item)
	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.Fields, "photo_file_id")
	f.repo.AssertNotCalled(t, "UpdateItem")
}

func TestChecklistService_CompleteItem_WithPhoto(t *testing.T) {
	f := newChecklistServiceFixture()
	itemID := uuid.New()
	photoID := uuid.New()

	f.repo.On("GetItem", mock.Anything, f.tenantID, itemID).Return(&domain.ChecklistItem{
		ID:            itemID,
		TenantID:      f.tenantID,
		PhotoRequired: true,
		Status:        domain.ChecklistItemPending,
	}, nil)
	f.fileRepo.On("GetByID", mock.Anything, f.tenantID, photoID).Return(&domain.FileMeta{
		ID:     photoID,
		Status: domain.FileStatusUploaded,
	}, nil)
	f.repo.On("UpdateItem", mock.Anything, mock.MatchedBy(func(item *domain.ChecklistItem) bool {
		return item.Status == domain.ChecklistItemDone &&
			item.PhotoFileID != nil && *item.PhotoFileID == photoID &&
			item.CompletedBy != nil && item.CompletedAt != nil
	})).Return(nil)

	item, err := f.svc.CompleteItem(context.Background(), f.tenantID, f.userID, itemID, service.CompleteItemInput{
		Status:      domain.ChecklistItemDone,
		PhotoFileID: &photoID,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ChecklistItemDone, item.Status)
	f.repo.AssertExpectations(t)
}

func TestChecklistService_CompleteItem_PendingPhotoRejected(t *testing.T) {
	f := newChecklistServiceFixture()
	itemID := uuid.New()
	photoID := uuid.New()

	f.repo.On("GetItem", mock.Anything, f.tenantID, itemID).Return(&domain.ChecklistItem{
		ID:            itemID,
		TenantID:      f.tenantID,
		PhotoRequired: true,
		Status:        domain.ChecklistItemPending,
	}, nil)
	f.fileRepo.On("GetByID", mock.Anything, f.tenantID, photoID).Return(&domain.FileMeta{
		ID:     photoID,
		Status: domain.FileStatusPending,
	}, nil)

	item, err := f.svc.CompleteItem(context.Background(), f.tenantID, f.userID, itemID, service.CompleteItemInput{
		Status:      domain.ChecklistItemDone,
		PhotoFileID: &photoID,
	})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, domain.ErrUploadFailed)
}

func TestChecklistService_CompleteItem_SkipNeedsNoPhoto(t *testing.T) {
	f := newChecklistServiceFixture()
	itemID := uuid.New()

	f.repo.On("GetItem", mock.Anything, f.tenantID, itemID).Return(&domain.ChecklistItem{
		ID:            itemID,
		TenantID:      f.tenantID,
		PhotoRequired: true,
		Status:        domain.ChecklistItemPending,
	}, nil)
	f.repo.On("UpdateItem", mock.Anything, mock.MatchedBy(func(item *domain.ChecklistItem) bool {
		return item.Status == domain.ChecklistItemSkipped
	})).Return(nil)

	item, err := f.svc.CompleteItem(context.Background(), f.tenantID, f.userID, itemID, service.CompleteItemInput{
		Status: domain.ChecklistItemSkipped,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ChecklistItemSkipped, item.Status)
}
