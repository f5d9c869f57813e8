package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"detos/internal/domain"
)

// MockChecklistRepo is a mock implementation of port.ChecklistRepository.
type MockChecklistRepo struct {
	mock.Mock
}

func (m *MockChecklistRepo) CreateTemplate(ctx context.Context, tpl *domain.SOPTemplate, items []domain.SOPTemplateItem) error {
	args := m.Called(ctx, tpl, items)
	return args.Error(0)
}

func (m *MockChecklistRepo) GetTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*domain.SOPTemplate, []domain.SOPTemplateItem, error) {
	args := m.Called(ctx, tenantID, templateID)
	var tpl *domain.SOPTemplate
	if args.Get(0) != nil {
		tpl = args.Get(0).(*domain.SOPTemplate)
	}
	var items []domain.SOPTemplateItem
	if args.Get(1) != nil {
		items = args.Get(1).([]domain.SOPTemplateItem)
	}
	return tpl, items, args.Error(2)
}

func (m *MockChecklistRepo) ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]domain.SOPTemplate, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SOPTemplate), args.Error(1)
}

func (m *MockChecklistRepo) CreateChecklist(ctx context.Context, cl *domain.Checklist, items []domain.ChecklistItem) error {
	args := m.Called(ctx, cl, items)
	return args.Error(0)
}

func (m *MockChecklistRepo) GetChecklist(ctx context.Context, tenantID, checklistID uuid.UUID) (*domain.Checklist, []domain.ChecklistItem, error) {
	args := m.Called(ctx, tenantID, checklistID)
	var cl *domain.Checklist
	if args.Get(0) != nil {
		cl = args.Get(0).(*domain.Checklist)
	}
	var items []domain.ChecklistItem
	if args.Get(1) != nil {
		items = args.Get(1).([]domain.ChecklistItem)
	}
	return cl, items, args.Error(2)
}

func (m *MockChecklistRepo) ListByJobCard(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Checklist, error) {
	args := m.Called(ctx, tenantID, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Checklist), args.Error(1)
}

func (m *MockChecklistRepo) UpdateItem(ctx context.Context, item *domain.ChecklistItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockChecklistRepo) GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.ChecklistItem, error) {
	args := m.Called(ctx, tenantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ChecklistItem), args.Error(1)
}
