package port

import (
	"context"

	"github.com/google/uuid"

	"detos/internal/domain"
)

// ChecklistRepository defines the contract for SOP templates and checklist
// instances.
type ChecklistRepository interface {
	CreateTemplate(ctx context.Context, tpl *domain.SOPTemplate, items []domain.SOPTemplateItem) error
	GetTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*domain.SOPTemplate, []domain.SOPTemplateItem, error)
	ListTemplates(ctx context.Context, tenantID uuid.UUID) ([]domain.SOPTemplate, error)

	CreateChecklist(ctx context.Context, cl *domain.Checklist, items []domain.ChecklistItem) error
	GetChecklist(ctx context.Context, tenantID, checklistID uuid.UUID) (*domain.Checklist, []domain.ChecklistItem, error)
	ListByJobCard(ctx context.Context, tenantID, jobID uuid.UUID) ([]domain.Checklist, error)
	UpdateItem(ctx context.Context, item *domain.ChecklistItem) error
	GetItem(ctx context.Context, tenantID, itemID uuid.UUID) (*domain.ChecklistItem, error)
}

// ExpenseRepository defines the contract for expense persistence.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *domain.Expense) error
	GetByID(ctx context.Context, tenantID, expenseID uuid.UUID) (*domain.Expense, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID, category domain.ExpenseCategory, offset, limit int) ([]domain.Expense, int, error)
	Update(ctx context.Context, expense *domain.Expense) error
	Delete(ctx context.Context, tenantID, expenseID uuid.UUID) error
	MonthlySummary(ctx context.Context, tenantID uuid.UUID, year int) ([]domain.ExpenseMonthRow, error)
}
